package types

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperator(t *testing.T) {
	tests := []struct {
		input    string
		expected Operator
		wantErr  bool
	}{
		{input: "Equal", expected: Equal},
		{input: "equal", expected: Equal},
		{input: " GREATERTHAN ", expected: GreaterThan},
		{input: "containsonvalue", expected: ContainsOnValue},
		{input: "=", expected: Equal},
		{input: "==", expected: Equal},
		{input: "!=", expected: NotEqual},
		{input: "<>", expected: NotEqual},
		{input: "<", expected: LessThan},
		{input: "<=", expected: LessThanOrEqual},
		{input: ">", expected: GreaterThan},
		{input: ">=", expected: GreaterThanOrEqual},
		{input: "like", wantErr: true},
		{input: "", wantErr: true},
		{input: "=>", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			op, err := ParseOperator(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, op)
		})
	}
}

func TestOperatorsAreValid(t *testing.T) {
	operators := Operators()
	assert.Len(t, operators, 10)

	seen := map[Operator]bool{}
	for _, op := range operators {
		assert.True(t, op.IsValid(), op.String())
		assert.False(t, seen[op], "duplicate operator %s", op)
		seen[op] = true

		parsed, err := ParseOperator(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
	}

	assert.False(t, Operator("Between").IsValid())
}

func TestIsOrdering(t *testing.T) {
	ordering := map[Operator]bool{
		LessThan:           true,
		LessThanOrEqual:    true,
		GreaterThan:        true,
		GreaterThanOrEqual: true,
	}
	for _, op := range Operators() {
		assert.Equal(t, ordering[op], op.IsOrdering(), op.String())
	}
}

func TestConditionUnmarshal(t *testing.T) {
	var conditions []Condition
	err := json.Unmarshal([]byte(`[
		{"path": "Age", "operator": ">=", "value": 30},
		{"path": "Name", "operator": "startswith", "value": "al"},
		{"path": "Nickname", "operator": "Equal"}
	]`), &conditions)
	require.NoError(t, err)
	require.Len(t, conditions, 3)

	assert.Equal(t, GreaterThanOrEqual, conditions[0].Operator)
	assert.Equal(t, StartsWith, conditions[1].Operator)
	assert.Equal(t, Equal, conditions[2].Operator)
	assert.Nil(t, conditions[2].Value)

	err = json.Unmarshal([]byte(`{"path": "Age", "operator": "~"}`), &Condition{})
	assert.Error(t, err)
}
