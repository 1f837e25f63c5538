package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(lookupFrom(map[string]string{"JWT_KEY": "secret"}))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultRemoteTasksURL, cfg.RemoteTasksURL)
	assert.Equal(t, "admin", cfg.AuthUsername)
	assert.Equal(t, "admin", cfg.AuthPassword)
	assert.Equal(t, 5*time.Second, cfg.FlashDismiss)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestParse_RequiresJWTKey(t *testing.T) {
	_, err := Parse(lookupFrom(map[string]string{}))
	assert.ErrorIs(t, err, ErrMissingJWTKey)
}

func TestParse_EnvOverrides(t *testing.T) {
	cfg, err := Parse(lookupFrom(map[string]string{
		"JWT_KEY":          "secret",
		"PORT":             "9000",
		"REMOTE_TASKS_URL": "http://example.test/todos",
		"REMOTE_TIMEOUT":   "2s",
		"CORS_ORIGINS":     "http://a.test, http://b.test",
		"TZ_NAME":          "Europe/Madrid",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "http://example.test/todos", cfg.RemoteTasksURL)
	assert.Equal(t, 2*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "Europe/Madrid", cfg.Location().String())
}

func TestParse_BadDuration(t *testing.T) {
	_, err := Parse(lookupFrom(map[string]string{"JWT_KEY": "secret", "FLASH_DISMISS": "soon"}))
	assert.Error(t, err)
}

func TestParse_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.yml")
	body := []byte("port: \"7000\"\ndate_layout: \"2006-01-02\"\nflash_dismiss: 3s\nauth_username: root\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := Parse(lookupFrom(map[string]string{
		"JWT_KEY":       "secret",
		"CONFIG_FILE":   path,
		"AUTH_USERNAME": "admin2",
	}))
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "2006-01-02", cfg.DateLayout)
	assert.Equal(t, 3*time.Second, cfg.FlashDismiss)
	assert.Equal(t, "admin2", cfg.AuthUsername)
}

func TestParse_MissingExplicitFile(t *testing.T) {
	_, err := Parse(lookupFrom(map[string]string{
		"JWT_KEY":     "secret",
		"CONFIG_FILE": filepath.Join(t.TempDir(), "nope.yml"),
	}))
	assert.Error(t, err)
}
