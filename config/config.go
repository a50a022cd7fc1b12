package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	DefaultPort         = 8080
	DefaultDatabasePath = "./data/feriados.db"
	DefaultAuthFile     = "auth.secret"
	DefaultTimezone     = "America/Sao_Paulo"
	DefaultSyncSchedule = "0 6,18 * * *"
)

type CalDAV struct {
	URL          string `yaml:"url"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	CalendarPath string `yaml:"calendar_path"`
	SyncSchedule string `yaml:"sync_schedule"`
}

// Enabled reports whether enough settings are present to publish.
func (c CalDAV) Enabled() bool {
	return c.URL != "" && c.Username != "" && c.Password != "" && c.CalendarPath != ""
}

type Config struct {
	ServerPort   int    `yaml:"server_port"`
	AuthFile     string `yaml:"auth_file"`
	DatabasePath string `yaml:"database_path"`
	TimezoneName string `yaml:"timezone"`
	LogLevel     string `yaml:"log_level"`
	Color        string `yaml:"color"`
	CalDAV       CalDAV `yaml:"caldav"`

	Timezone *time.Location `yaml:"-"`
}

// Load builds the configuration from defaults, the YAML file named by
// FERIADOS_CONFIG (if any) and finally environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:   DefaultPort,
		DatabasePath: DefaultDatabasePath,
		TimezoneName: DefaultTimezone,
		LogLevel:     "info",
		Color:        ColorAuto,
		CalDAV:       CalDAV{SyncSchedule: DefaultSyncSchedule},
	}

	if path := os.Getenv("FERIADOS_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if cfg.AuthFile == "" {
		// Default: auth.secret next to the binary
		execPath, err := os.Executable()
		if err != nil {
			return nil, errors.Wrap(err, "get executable path")
		}
		cfg.AuthFile = filepath.Join(filepath.Dir(execPath), DefaultAuthFile)
	}

	tz, err := time.LoadLocation(cfg.TimezoneName)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %q", cfg.TimezoneName)
	}
	cfg.Timezone = tz

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return nil, errors.Errorf("invalid color mode %q (want auto, always or never)", cfg.Color)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "parse config file %s", path)
	}
	return nil
}

func (c *Config) loadEnv() error {
	if p := os.Getenv("FERIADOS_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return errors.Errorf("FERIADOS_PORT must be a number, got %q", p)
		}
		c.ServerPort = port
	}

	setString(&c.AuthFile, "AUTH_FILE")
	setString(&c.DatabasePath, "FERIADOS_DATABASE_PATH")
	setString(&c.TimezoneName, "FERIADOS_TIMEZONE")
	setString(&c.LogLevel, "FERIADOS_LOG_LEVEL")
	setString(&c.Color, "FERIADOS_COLOR")
	setString(&c.CalDAV.URL, "FERIADOS_CALDAV_URL")
	setString(&c.CalDAV.Username, "FERIADOS_CALDAV_USERNAME")
	setString(&c.CalDAV.Password, "FERIADOS_CALDAV_PASSWORD")
	setString(&c.CalDAV.CalendarPath, "FERIADOS_CALDAV_CALENDAR")
	setString(&c.CalDAV.SyncSchedule, "FERIADOS_SYNC_SCHEDULE")
	return nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
