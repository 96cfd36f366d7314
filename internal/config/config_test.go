package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuthorizedUsers(t *testing.T) {
	ids, err := ParseAuthorizedUsers(" 10, 20 ,,30")
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30}, ids)

	ids, err = ParseAuthorizedUsers("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseAuthorizedUsers("10,abc")
	assert.Error(t, err)
}

func TestLoadDefaultsWithMemoryStorage(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORAGE", StorageMemory)
	t.Setenv("DB_DSN", "")
	t.Setenv("GOOGLE_CREDENTIALS", "")
	t.Setenv("TRANSPORT", "")
	t.Setenv("RUN_MODE", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("BACKOFFICE_URL", "")
	t.Setenv("SERVICE_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "primary", cfg.CalendarID)
	assert.Equal(t, TransportGoTelegram, cfg.Transport)
	assert.Equal(t, RunModePolling, cfg.RunMode)
	assert.Equal(t, "America/Maceio", cfg.Location.String())
	assert.Equal(t, "https://backoffice.recrearnolar.com.br", cfg.BackofficeURL)
	assert.Equal(t, "recrear-bot", cfg.ServiceName)
	assert.Nil(t, cfg.Google)
}

func TestLoadYAMLOverriddenByEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "bot.yaml")
	yml := "storage: memory\nadmin_chat_id: 77\nbackoffice_url: https://office.example/\ncalendar_id: team\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("CONFIG_FILE", path)
	unsetEnv(t, "STORAGE", "CALENDAR_ID", "BACKOFFICE_URL")
	t.Setenv("ADMIN_CHAT_ID", "99")
	t.Setenv("GOOGLE_CREDENTIALS", `{"client_id":"id","client_secret":"s","redirect_uri":"http://localhost","refresh_token":"r"}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, int64(99), cfg.AdminChatID)
	assert.Equal(t, "team", cfg.CalendarID)
	assert.Equal(t, "https://office.example", cfg.BackofficeURL)
	require.NotNil(t, cfg.Google)
	assert.Equal(t, "r", cfg.Google.RefreshToken)
}

func TestLoadRejectsMissingDSN(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORAGE", StoragePostgres)
	t.Setenv("DB_DSN", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_DSN")
}

func TestLoadRejectsTelebotWebhook(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORAGE", StorageMemory)
	t.Setenv("TRANSPORT", TransportTelebot)
	t.Setenv("RUN_MODE", RunModeWebhook)
	t.Setenv("WEBHOOK_URL", "https://bot.example/telegram")

	_, err := Load()
	assert.ErrorContains(t, err, "not supported")
}

func TestRequireBot(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.RequireBot())
	cfg.TelegramToken = "t"
	assert.Error(t, cfg.RequireBot())
	cfg.AdminChatID = 1
	assert.NoError(t, cfg.RequireBot())
}

// unsetEnv removes keys for the duration of the test; envconfig treats a
// present but empty variable as an override.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestParseGoogleCredentials(t *testing.T) {
	creds, err := ParseGoogleCredentials(`{"client_id":"id","client_secret":"s","redirect_uri":"urn:ietf:wg:oauth:2.0:oob"}`)
	require.NoError(t, err)
	assert.Equal(t, "id", creds.ClientID)
	assert.Empty(t, creds.RefreshToken)

	_, err = ParseGoogleCredentials(`{"client_id":"id"}`)
	assert.Error(t, err)
	_, err = ParseGoogleCredentials(`not json`)
	assert.Error(t, err)
}
