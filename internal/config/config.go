package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = "8080"
	DefaultRemoteTasksURL = "https://dummyjson.com/c/28e8-a101-4223-a35c"
	DefaultDateLayout     = "02 Jan 2006, 15:04"
	DefaultConfigFile     = "tasklist.yml"
)

var ErrMissingJWTKey = errors.New("JWT_KEY environment variable is required")

type Config struct {
	Port           string        `yaml:"port"`
	JWTKey         string        `yaml:"-"`
	DatabaseURL    string        `yaml:"-"`
	DataDir        string        `yaml:"data_dir"`
	RemoteTasksURL string        `yaml:"remote_tasks_url"`
	RemoteTimeout  time.Duration `yaml:"remote_timeout"`
	AuthUsername   string        `yaml:"auth_username"`
	AuthPassword   string        `yaml:"-"`
	DateLayout     string        `yaml:"date_layout"`
	TimeZone       string        `yaml:"time_zone"`
	FlashDismiss   time.Duration `yaml:"flash_dismiss"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

func Defaults() Config {
	return Config{
		Port:           DefaultPort,
		RemoteTasksURL: DefaultRemoteTasksURL,
		RemoteTimeout:  10 * time.Second,
		AuthUsername:   "admin",
		AuthPassword:   "admin",
		DateLayout:     DefaultDateLayout,
		TimeZone:       "UTC",
		FlashDismiss:   5 * time.Second,
		SessionTTL:     24 * time.Hour,
		AllowedOrigins: []string{"*"},
	}
}

func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Parse(os.LookupEnv)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

// Parse builds the config from defaults, the optional YAML file and then
// the environment, in that order.
func Parse(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Defaults()

	path, explicit := lookup("CONFIG_FILE")
	if !explicit || path == "" {
		path = DefaultConfigFile
	}
	if err := applyFile(&cfg, path, explicit); err != nil {
		return nil, err
	}

	if v, ok := nonEmpty(lookup, "PORT"); ok {
		cfg.Port = v
	}
	if v, ok := nonEmpty(lookup, "JWT_KEY"); ok {
		cfg.JWTKey = v
	}
	if v, ok := nonEmpty(lookup, "DATABASE_URL"); ok {
		cfg.DatabaseURL = v
	}
	if v, ok := nonEmpty(lookup, "DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := nonEmpty(lookup, "REMOTE_TASKS_URL"); ok {
		cfg.RemoteTasksURL = v
	}
	if v, ok := nonEmpty(lookup, "AUTH_USERNAME"); ok {
		cfg.AuthUsername = v
	}
	if v, ok := nonEmpty(lookup, "AUTH_PASSWORD"); ok {
		cfg.AuthPassword = v
	}
	if v, ok := nonEmpty(lookup, "DATE_LAYOUT"); ok {
		cfg.DateLayout = v
	}
	if v, ok := nonEmpty(lookup, "TZ_NAME"); ok {
		cfg.TimeZone = v
	}
	if v, ok := nonEmpty(lookup, "CORS_ORIGINS"); ok {
		cfg.AllowedOrigins = splitList(v)
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"REMOTE_TIMEOUT", &cfg.RemoteTimeout},
		{"FLASH_DISMISS", &cfg.FlashDismiss},
		{"SESSION_TTL", &cfg.SessionTTL},
	}
	for _, d := range durations {
		v, ok := nonEmpty(lookup, d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if cfg.JWTKey == "" {
		return nil, ErrMissingJWTKey
	}
	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		return nil, fmt.Errorf("TZ_NAME: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func applyFile(cfg *Config, path string, required bool) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func nonEmpty(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
