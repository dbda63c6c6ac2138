package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/germanamz/mealplanner/pkg/failure"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadDotEnv_SetsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MEALPLANNER_DOTENV_TEST=sk-dotenv\n"), 0o600))

	t.Setenv("MEALPLANNER_DOTENV_TEST", "")
	require.NoError(t, os.Unsetenv("MEALPLANNER_DOTENV_TEST"))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "sk-dotenv", os.Getenv("MEALPLANNER_DOTENV_TEST"))
}

func TestNewLogger_Disabled(t *testing.T) {
	log, closeLog, err := newLogger("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
	assert.NoError(t, closeLog())
}

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mealplanner.log")

	log, closeLog, err := newLogger(path)
	require.NoError(t, err)
	log.Info().Str("request_id", "abc").Msg("hello")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"request_id":"abc"`)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestBuildEngine_MissingCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, _, err := buildEngine(commonFlags{configPath: filepath.Join(t.TempDir(), "absent.yaml")}, zerolog.Nop())

	require.Error(t, err)
	assert.Equal(t, failure.MissingCredential, failure.Classify(err))

	report := describeStartupError(err)
	assert.Contains(t, report, "API key not found")
	assert.Contains(t, report, "OPENAI_API_KEY")
}

func TestBuildEngine_OutDirOverride(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	eng, cfg, err := buildEngine(commonFlags{configPath: "", outDir: "plans"}, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, eng)
	assert.Equal(t, "plans", cfg.OutputDir)
}

func TestDescribeStartupError_Plain(t *testing.T) {
	assert.Equal(t, "error: boom", describeStartupError(errors.New("boom")))
}
