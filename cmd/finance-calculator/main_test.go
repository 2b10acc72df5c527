package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/finance-calculator/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeLogger(t *testing.T) {
	logger, err := initializeLogger(config.LoggingConfig{}, "")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logFile := filepath.Join(t.TempDir(), "logs", "calc.log")
	logger, err = initializeLogger(config.LoggingConfig{Level: "warn", Format: "console", OutputFile: logFile}, "debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1), "CLI override should enable debug")
	assert.FileExists(t, logFile)

	_, err = initializeLogger(config.LoggingConfig{Level: "verbose"}, "")
	assert.Error(t, err)
	_, err = initializeLogger(config.LoggingConfig{Format: "xml"}, "")
	assert.Error(t, err)
}

func TestResolveOutputFormat(t *testing.T) {
	got, err := resolveOutputFormat("", "")
	require.NoError(t, err)
	assert.Equal(t, "pretty", got)

	got, err = resolveOutputFormat("csv", "json")
	require.NoError(t, err)
	assert.Equal(t, "json", got)

	_, err = resolveOutputFormat("yaml", "")
	assert.Error(t, err)
}

func TestRunSingle(t *testing.T) {
	t.Setenv("FINCALC_BASE_URL", "https://example.test")

	var buf bytes.Buffer
	err := runSingle(&buf, "lumpsum", "amount=10000&return=10&duration=5", "csv", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "lumpsum,lumpsum,true,Future Value,16105.10,"), lines[1])
	assert.Contains(t, lines[1], "https://example.test/lumpsum?amount=10000&duration=5&return=10")

	assert.Error(t, runSingle(&buf, "mortgage", "", "", "error"))
	assert.Error(t, runSingle(&buf, "lumpsum", "amount=%zz", "", "error"))
}

func TestRunBatch(t *testing.T) {
	var buf bytes.Buffer
	err := runBatch(&buf, filepath.Join("..", "..", "test", "test_config.yaml"), "pretty", "error")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "--- Results for calculation fixed deposit (lumpsum) ---")
	assert.NotContains(t, out, "parked idea")

	assert.Error(t, runBatch(&buf, filepath.Join(t.TempDir(), "missing.yaml"), "", "error"))
}
