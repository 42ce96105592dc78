package protocol

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		configPath, shapeName, conditionsPath, recordsPath, outputPath, summaryPath = "", "", "", "", "", ""
	})

	reader, writer, err := os.Pipe()
	require.NoError(t, err)

	stdout := os.Stdout
	os.Stdout = writer
	defer func() { os.Stdout = stdout }()

	captured := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, reader)
		captured <- buf.String()
	}()

	cmd := CreateRootCommand()
	cmd.SetArgs(args)
	err = cmd.Execute()

	require.NoError(t, writer.Close())
	return <-captured, err
}

func TestRootMissingConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nonexistent.yaml")

	out, err := execute(t, "operators", "--config", missing)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to read config file["+missing+"]")
	assert.Empty(t, out)
}

func TestFilterStdoutIsJSON(t *testing.T) {
	conditions := writeFile(t, "conditions.yaml", `
conditions:
  - path: age
    operator: GreaterThan
    value: 30
`)
	records := writeFile(t, "records.json", `[
		{"name": "Asha", "age": 41, "salary": 120000},
		{"name": "Ben", "age": 29, "salary": 80000},
		{"name": "Chen", "age": 35, "salary": 95000}
	]`)

	out, err := execute(t, "filter", "--shape", "employee", "--conditions", conditions, "--records", records)
	require.NoError(t, err)

	var matched []employee
	require.NoError(t, json.Unmarshal([]byte(out), &matched), "stdout: %s", out)
	require.Len(t, matched, 2)
	assert.Equal(t, "Asha", matched[0].Name)
	assert.Equal(t, "Chen", matched[1].Name)
}
