package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort        string
	LogLevel        string
	OperatorWorkers int

	AutoPostOnStartup      bool
	AutoPostCron           string
	AutoPostMaxOccurrences int
	ScheduleMaxSearchSteps int
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]any{
	"postgres.address":          "localhost",
	"postgres.port":             "5433",
	"postgres.db":               "postgres",
	"postgres.username":         "postgres",
	"postgres.password":         "testpassword",
	"http.port":                 "9446",
	"log.level":                 "info",
	"operator.workers":          1,
	"autopost.on_startup":       true,
	"autopost.cron":             "0 5 3 * * *",
	"autopost.max_occurrences":  1000,
	"schedule.max_search_steps": 10000,
}

// envSections are the prefixes mapped from environment variables, e.g.
// POSTGRES_ADDRESS -> postgres.address, AUTOPOST_MAX_OCCURRENCES -> autopost.max_occurrences.
var envSections = []string{"postgres", "http", "log", "operator", "autopost", "schedule"}

// Load layers defaults, an optional YAML file, an optional .env file and the process
// environment, later sources winning.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := &Config{
		PostgresAddress:        k.String("postgres.address"),
		PostgresPort:           k.String("postgres.port"),
		PostgresDB:             k.String("postgres.db"),
		PostgresUsername:       k.String("postgres.username"),
		PostgresPassword:       k.String("postgres.password"),
		HTTPPort:               k.String("http.port"),
		LogLevel:               k.String("log.level"),
		OperatorWorkers:        k.Int("operator.workers"),
		AutoPostOnStartup:      k.Bool("autopost.on_startup"),
		AutoPostCron:           k.String("autopost.cron"),
		AutoPostMaxOccurrences: k.Int("autopost.max_occurrences"),
		ScheduleMaxSearchSteps: k.Int("schedule.max_search_steps"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PostgresURL builds the lib/pq connection string.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c *Config) validate() error {
	if c.OperatorWorkers < 1 {
		return fmt.Errorf("operator.workers must be at least 1, got %d", c.OperatorWorkers)
	}
	if c.AutoPostMaxOccurrences < 1 {
		return fmt.Errorf("autopost.max_occurrences must be at least 1, got %d", c.AutoPostMaxOccurrences)
	}
	if c.ScheduleMaxSearchSteps < 1 {
		return fmt.Errorf("schedule.max_search_steps must be at least 1, got %d", c.ScheduleMaxSearchSteps)
	}
	return nil
}

func envKey(name string) string {
	section, rest, ok := strings.Cut(strings.ToLower(name), "_")
	if !ok {
		return ""
	}
	for _, s := range envSections {
		if s == section {
			return section + "." + rest
		}
	}
	return ""
}
