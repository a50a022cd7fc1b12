package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FERIADOS_CONFIG", "FERIADOS_PORT", "AUTH_FILE", "FERIADOS_DATABASE_PATH",
		"FERIADOS_TIMEZONE", "FERIADOS_LOG_LEVEL", "FERIADOS_COLOR",
		"FERIADOS_CALDAV_URL", "FERIADOS_CALDAV_USERNAME", "FERIADOS_CALDAV_PASSWORD",
		"FERIADOS_CALDAV_CALENDAR", "FERIADOS_SYNC_SCHEDULE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.ServerPort)
	assert.Equal(t, DefaultDatabasePath, cfg.DatabasePath)
	assert.Equal(t, DefaultTimezone, cfg.Timezone.String())
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, DefaultSyncSchedule, cfg.CalDAV.SyncSchedule)
	assert.Equal(t, DefaultAuthFile, filepath.Base(cfg.AuthFile))
	assert.False(t, cfg.CalDAV.Enabled())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "feriados.yaml")
	content := `
server_port: 9090
log_level: debug
color: never
caldav:
  url: https://caldav.example.com
  username: ana
  password: secret
  calendar_path: /calendars/ana/feriados/
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("FERIADOS_CONFIG", path)
	t.Setenv("FERIADOS_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.ServerPort, "environment overrides the file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.True(t, cfg.CalDAV.Enabled())
	assert.Equal(t, "/calendars/ana/feriados/", cfg.CalDAV.CalendarPath)
	assert.Equal(t, DefaultSyncSchedule, cfg.CalDAV.SyncSchedule, "unset keys keep defaults")
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"FERIADOS_PORT": "http"}},
		{"bad timezone", map[string]string{"FERIADOS_TIMEZONE": "Mars/Olympus"}},
		{"bad color", map[string]string{"FERIADOS_COLOR": "rainbow"}},
		{"missing file", map[string]string{"FERIADOS_CONFIG": "/nonexistent/feriados.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
