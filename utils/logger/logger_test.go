package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/datazip-inc/sieve/constants"
)

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.InfoLevel)

	Debugf("[Compile] hidden %d", 1)
	Infof("matched %d of %d records", 2, 3)
	Warn("slow", " build")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "matched 2 of 3 records", entry["message"])
	assert.Contains(t, entry, "time")

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "slow build", entry["message"])
}

func TestConsoleBeforeInit(t *testing.T) {
	var buf bytes.Buffer
	console = &buf
	t.Cleanup(func() {
		console = os.Stderr
		logger = newLogger(zerolog.InfoLevel)
	})

	logger = newLogger(zerolog.InfoLevel)
	Debug("hidden")
	Error("failed to read config file[/nonexistent.yaml]")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "ERR")
	assert.Contains(t, out, "failed to read config file[/nonexistent.yaml]")
}

func TestInitWritesToConsole(t *testing.T) {
	var buf bytes.Buffer
	console = &buf
	t.Cleanup(func() {
		console = os.Stderr
		viper.Reset()
		logger = newLogger(zerolog.InfoLevel)
	})

	viper.Set(constants.LogLevel, "debug")
	Init()
	Debugf("[Compile] path=%s", "age")

	assert.Contains(t, buf.String(), "[Compile] path=age")
}
