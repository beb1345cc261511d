package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// PathEnv names the optional YAML file layered under the environment.
const PathEnv = "PREP_METER_CONFIG"

type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Report struct {
		Timezone         string `yaml:"timezone"`
		DailySummary     string `yaml:"daily_summary"`
		WeeklyReport     string `yaml:"weekly_report"`
		WellnessReminder string `yaml:"wellness_reminder"`
		Title            string `yaml:"title"`
	} `yaml:"report"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Database.Path = "prep-meter.db"
	cfg.Report.Timezone = "Asia/Kolkata"
	cfg.Report.DailySummary = "30 22 * * *"
	cfg.Report.WeeklyReport = "0 20 * * 0"
	cfg.Report.WellnessReminder = "0 21 * * *"
	cfg.Report.Title = "Study Report"
	cfg.Log.Level = "info"
	return cfg
}

// Load starts from defaults, applies the YAML file named by PREP_METER_CONFIG
// when set, then environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(PathEnv); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Telegram.Token = getEnv("TG_TOKEN", c.Telegram.Token)
	if raw := getEnv("TG_CHAT_ID", ""); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TG_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = chatID
	}
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Report.Timezone = getEnv("REPORT_TIMEZONE", c.Report.Timezone)
	c.Report.DailySummary = getEnv("DAILY_SUMMARY_CRON", c.Report.DailySummary)
	c.Report.WeeklyReport = getEnv("WEEKLY_REPORT_CRON", c.Report.WeeklyReport)
	c.Report.WellnessReminder = getEnv("WELLNESS_REMINDER_CRON", c.Report.WellnessReminder)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	if raw := getEnv("LOG_DEVELOPMENT", ""); raw != "" {
		dev, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid LOG_DEVELOPMENT: %w", err)
		}
		c.Log.Development = dev
	}
	return nil
}

// Validate checks the timezone and cron specs. The bot credentials are only
// required when the bot is going to run.
func (c *Config) Validate(requireTelegram bool) error {
	var errs []error
	if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("report.timezone: %w", err))
	}
	specs := map[string]string{
		"report.daily_summary":     c.Report.DailySummary,
		"report.weekly_report":     c.Report.WeeklyReport,
		"report.wellness_reminder": c.Report.WellnessReminder,
	}
	for name, spec := range specs {
		if _, err := cron.ParseStandard(spec); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is empty"))
	}
	if requireTelegram {
		if c.Telegram.Token == "" {
			errs = append(errs, errors.New("TG_TOKEN is not set"))
		}
		if c.Telegram.ChatID == 0 {
			errs = append(errs, errors.New("TG_CHAT_ID is not set"))
		}
	}
	return errors.Join(errs...)
}

// Location returns the configured report timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
