package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the application looks for its configuration file.
const DefaultPath = "config.json"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// MissingKeyError reports a required key absent from the configuration file.
type MissingKeyError struct {
	Key string
}

// Error implements the error interface.
func (e MissingKeyError) Error() string {
	return fmt.Sprintf("missing key in config: %s", e.Key)
}

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values. It is loaded once
// at start-up and passed to the components that need it.
type Config struct {
	HunterKey     string
	OpenAIKey     string
	GoogleCreds   []byte
	LeadsPerRun   int
	FacebookGroup string
	Pages         int
	Pace          RateLimitConfig
	RateLimitRuns RateLimitConfig
	PhoneRegion   string
	ListenAddr    string
}

type fileConfig struct {
	HunterKey     string         `yaml:"hunter_key"`
	OpenAIKey     string         `yaml:"openai_key"`
	GoogleCreds   map[string]any `yaml:"google_creds"`
	LeadsPerRun   int            `yaml:"leads_per_run"`
	FacebookGroup string         `yaml:"fb_group"`
	Pages         int            `yaml:"pages"`
	Pace          string         `yaml:"pace"`
	RateLimitRuns string         `yaml:"rate_limit_runs"`
	PhoneRegion   string         `yaml:"phone_region"`
	ListenAddr    string         `yaml:"listen_addr"`
}

// Load reads the configuration file at path and applies sane defaults.
// JSON is a subset of YAML, so both config.json and config.yaml files work.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (create it with your API keys)", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	switch {
	case strings.TrimSpace(fc.HunterKey) == "":
		return nil, MissingKeyError{Key: "hunter_key"}
	case strings.TrimSpace(fc.OpenAIKey) == "":
		return nil, MissingKeyError{Key: "openai_key"}
	case len(fc.GoogleCreds) == 0:
		return nil, MissingKeyError{Key: "google_creds"}
	}

	creds, err := json.Marshal(fc.GoogleCreds)
	if err != nil {
		return nil, fmt.Errorf("encode google_creds: %w", err)
	}

	cfg := &Config{
		HunterKey:     strings.TrimSpace(fc.HunterKey),
		OpenAIKey:     strings.TrimSpace(fc.OpenAIKey),
		GoogleCreds:   creds,
		LeadsPerRun:   positiveOr(fc.LeadsPerRun, 10),
		FacebookGroup: stringOr(fc.FacebookGroup, "general"),
		Pages:         positiveOr(fc.Pages, 5),
		PhoneRegion:   strings.ToUpper(stringOr(fc.PhoneRegion, "US")),
		ListenAddr:    stringOr(fc.ListenAddr, "127.0.0.1:0"),
	}

	pace, err := parseRateLimit(stringOr(fc.Pace, "1/sec"))
	if err != nil {
		return nil, fmt.Errorf("invalid pace value: %w", err)
	}
	cfg.Pace = pace

	runs, err := parseRateLimit(stringOr(fc.RateLimitRuns, "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid rate_limit_runs value: %w", err)
	}
	cfg.RateLimitRuns = runs

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func stringOr(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
