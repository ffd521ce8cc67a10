package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/elpatron68/cleaning-ui/internal/ics"
)

type UserConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"passwordHash"` // bcrypt hash
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

type CalendarConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Timezone    string `yaml:"timezone"`
	StartTime   string `yaml:"startTime"` // HH:MM, wall clock in Timezone
	Filename    string `yaml:"filename"`
}

type UIConfig struct {
	ActivityLogMax int  `yaml:"activityLogMax"`
	ShowActivity   bool `yaml:"showActivity"`
	MaxSessions    int  `yaml:"maxSessions"`
}

type Config struct {
	Listen      string         `yaml:"listen"`
	CatalogFile string         `yaml:"catalogFile"`
	Users       []UserConfig   `yaml:"users"`
	Logging     LoggingConfig  `yaml:"logging"`
	Calendar    CalendarConfig `yaml:"calendar"`
	UI          UIConfig       `yaml:"ui"`
}

func Default() *Config {
	return &Config{
		Users:   []UserConfig{},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Calendar: CalendarConfig{
			Name:        "Daily Cleaning Schedule",
			Description: "Automated daily and weekly cleaning tasks",
			Timezone:    "America/New_York",
			StartTime:   "09:00",
			Filename:    "cleaning-schedule.ics",
		},
		UI: UIConfig{ActivityLogMax: 50, ShowActivity: true, MaxSessions: 1000},
	}
}

// Load liest eine optionale YAML-Datei. Fehlt sie, gelten die Defaults.
// Vorher wird eine .env-Datei geladen (falls vorhanden); danach
// überschreiben CLEANWEB_*-Variablen die Werte.
func Load(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()
	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLEANWEB_CATALOG"); v != "" {
		cfg.CatalogFile = v
	}
	if v := os.Getenv("CLEANWEB_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CLEANWEB_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CLEANWEB_TIMEZONE"); v != "" {
		cfg.Calendar.Timezone = v
	}
	if v := os.Getenv("CLEANWEB_START_TIME"); v != "" {
		cfg.Calendar.StartTime = v
	}
	if v := os.Getenv("CLEANWEB_UI_SHOW_ACTIVITY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.ShowActivity = b
		}
	}
	if v := os.Getenv("CLEANWEB_ACTIVITY_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.UI.ActivityLogMax = n
		}
	}
}

// ParseStartTime parses "HH:MM" (24h).
func ParseStartTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start time %q (want HH:MM)", s)
	}
	return t.Hour(), t.Minute(), nil
}

// Settings builds the calendar generator settings.
func (c CalendarConfig) Settings() (ics.Settings, error) {
	s := ics.DefaultSettings()
	if c.Name != "" {
		s.Name = c.Name
	}
	if c.Description != "" {
		s.Description = c.Description
	}
	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return ics.Settings{}, fmt.Errorf("calendar timezone: %w", err)
		}
		s.Timezone, s.Location = c.Timezone, loc
	}
	if c.StartTime != "" {
		h, m, err := ParseStartTime(c.StartTime)
		if err != nil {
			return ics.Settings{}, err
		}
		s.StartHour, s.StartMinute = h, m
	}
	return s, nil
}
