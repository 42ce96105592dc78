package protocol

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datazip-inc/sieve/types"
)

type employee struct {
	Name    string   `json:"name"`
	Age     int      `json:"age"`
	Salary  int64    `json:"salary"`
	Manager *string  `json:"manager,omitempty"`
	Skills  []string `json:"skills,omitempty"`
}

func init() {
	RegisterShape("Employee", &employee{})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShapes(t *testing.T) {
	shape, err := lookupShape("EMPLOYEE")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(employee{}), shape)
	assert.Contains(t, ShapeNames(), "employee")

	_, err = lookupShape("robot")
	assert.ErrorContains(t, err, "invalid shape [robot]")

	_, err = lookupShape("")
	assert.ErrorContains(t, err, "no shape provided")

	assert.Panics(t, func() { RegisterShape("number", 42) })
}

func TestLoadConditions(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "conditions.json", `{
			"conditions": [
				{"path": "age", "operator": ">", "value": 30},
				{"path": "salary", "operator": "Equal", "value": 9007199254740993},
				{"path": "manager", "operator": "equal", "value": null}
			]
		}`)

		conditions, err := LoadConditions(path)
		require.NoError(t, err)
		require.Len(t, conditions, 3)
		assert.Equal(t, types.GreaterThan, conditions[0].Operator)
		assert.Equal(t, "9007199254740993", reflect.ValueOf(conditions[1].Value).String())
		assert.Nil(t, conditions[2].Value)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "conditions.yaml", `
conditions:
  - path: skills
    operator: Contains
    value: go
  - path: age
    operator: ContainsOnValue
    value: ["25", "40"]
`)

		conditions, err := LoadConditions(path)
		require.NoError(t, err)
		require.Len(t, conditions, 2)
		assert.Equal(t, types.Contains, conditions[0].Operator)
		assert.Equal(t, "go", conditions[0].Value)
		assert.Equal(t, []any{"25", "40"}, conditions[1].Value)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := LoadConditions(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorContains(t, err, "failed to read conditions file")

		_, err = LoadConditions(writeFile(t, "broken.json", `{"conditions": [`))
		assert.ErrorContains(t, err, "failed to unmarshal conditions file")

		_, err = LoadConditions(writeFile(t, "operator.json", `{"conditions": [{"path": "age", "operator": "~"}]}`))
		assert.ErrorContains(t, err, "failed to unmarshal conditions file")

		_, err = LoadConditions(writeFile(t, "empty.json", `{"conditions": []}`))
		assert.ErrorContains(t, err, "invalid conditions file")

		_, err = LoadConditions(writeFile(t, "nopath.yml", "conditions:\n  - operator: Equal\n    value: 1\n"))
		assert.ErrorContains(t, err, "path is a required field")
	})
}

func TestFilterRecords(t *testing.T) {
	shape := reflect.TypeOf(employee{})
	records, err := LoadRecords(writeFile(t, "records.json", `[
		{"name": "Asha", "age": 41, "salary": 120000, "skills": ["Go", "SQL"]},
		{"name": "Ben", "age": 29, "salary": 80000, "manager": "Asha", "skills": ["go"]},
		{"name": "Chen", "age": 35, "salary": 95000, "manager": "Asha"},
		{"name": "Dana", "age": 52, "salary": 150000, "skills": ["Rust"]}
	]`), shape)
	require.NoError(t, err)
	require.Equal(t, 4, records.Len())

	names := func(filtered reflect.Value) []string {
		var out []string
		for i := 0; i < filtered.Len(); i++ {
			out = append(out, filtered.Index(i).Interface().(employee).Name)
		}
		return out
	}

	tests := []struct {
		name       string
		conditions []types.Condition
		expected   []string
	}{
		{
			name:       "single condition",
			conditions: []types.Condition{{Path: "age", Operator: types.GreaterThan, Value: json.Number("30")}},
			expected:   []string{"Asha", "Chen", "Dana"},
		},
		{
			name: "conditions are conjunctive",
			conditions: []types.Condition{
				{Path: "skills", Operator: types.Contains, Value: "GO"},
				{Path: "age", Operator: types.GreaterThanOrEqual, Value: "30"},
			},
			expected: []string{"Asha"},
		},
		{
			name:       "null manager",
			conditions: []types.Condition{{Path: "manager", Operator: types.Equal, Value: nil}},
			expected:   []string{"Asha", "Dana"},
		},
		{
			name:       "set membership",
			conditions: []types.Condition{{Path: "name", Operator: types.ContainsOnValue, Value: []any{"dana", "ben"}}},
			expected:   []string{"Ben", "Dana"},
		},
		{
			name:       "nothing matches",
			conditions: []types.Condition{{Path: "salary", Operator: types.LessThan, Value: 0}},
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, err := FilterRecords(context.Background(), shape, records, tt.conditions, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(filtered))
		})
	}

	t.Run("build failure", func(t *testing.T) {
		_, err := FilterRecords(context.Background(), shape, records, []types.Condition{
			{Path: "age", Operator: types.StartsWith, Value: "4"},
		}, 2)

		var opErr *types.UnsupportedOperatorError
		require.True(t, errors.As(err, &opErr))
		assert.ErrorContains(t, err, "condition[0]")
	})
}

func TestLoadRecordsErrors(t *testing.T) {
	shape := reflect.TypeOf(employee{})

	_, err := LoadRecords(writeFile(t, "records.json", `[{"age": "old"}]`), shape)
	assert.ErrorContains(t, err, "failed to unmarshal records file")

	_, err = LoadRecords(filepath.Join(t.TempDir(), "missing.json"), shape)
	assert.ErrorContains(t, err, "failed to read records file")
}
