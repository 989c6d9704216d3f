package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetboard/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PORT", "")
	t.Setenv("MAX_UPLOAD_MB", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Database.UsesMemoryStore())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "8081", cfg.Server.APIPort)
	assert.Equal(t, int64(50*1024*1024), cfg.Import.MaxUploadBytes)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/boards")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "gpt-4o")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("LLM_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Database.UsesMemoryStore())
	assert.Equal(t, "sk-test", cfg.AI.OpenAIKey)
	assert.Equal(t, "gpt-4o", cfg.AI.Model)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("PORT", "eighty")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
