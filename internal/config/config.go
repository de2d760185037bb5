// Package config loads the PortWatch runtime configuration.
//
// Values are layered, lowest precedence first: defaults, an optional YAML
// file, a .env file in the working directory, then the process environment.
// Command-line flags are applied on top by the CLI.
//
// Example configuration:
//
//	token: ${TOKEN}
//	chat_id: "-1001234567890"
//	url: https://example.com/manobras
//	poll_interval: 10m
//	http_addr: ":8080"
//	notifier: telegram
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/daas/portwatch/internal/logger"
	"github.com/daas/portwatch/internal/notifier"
	"github.com/daas/portwatch/internal/store"
)

// Defaults applied before any source is read.
const (
	DefaultPollInterval = 600 * time.Second
	DefaultFetchTimeout = 30 * time.Second
	DefaultSendDelay    = time.Second
	DefaultNotifier     = "telegram"
	DefaultLogLevel     = "info"
)

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

// Notifier names accepted by the notifier setting.
var notifierNames = []string{"telegram", "twitter", "dryrun"}

// Config is the root configuration structure for PortWatch.
type Config struct {
	// BotToken authenticates against the Telegram Bot API.
	BotToken string `yaml:"token"`

	// ChatID is the chat that receives maneuver alerts.
	ChatID string `yaml:"chat_id"`

	// SourceURL is the page listing the scheduled maneuvers.
	SourceURL string `yaml:"url"`

	PollInterval Duration `yaml:"poll_interval"`
	FetchTimeout Duration `yaml:"fetch_timeout"`

	// SendDelay is the pause between two alerts.
	SendDelay Duration `yaml:"send_delay"`

	// StatusLimit caps the maneuvers listed by /status.
	StatusLimit int `yaml:"status_limit"`

	// HTTPAddr enables the HTTP query API when set, e.g. ":8080".
	HTTPAddr string `yaml:"http_addr"`

	// Notifier selects the alert destination: telegram, twitter or dryrun.
	Notifier string `yaml:"notifier"`

	LogLevel string `yaml:"log_level"`

	Twitter TwitterConfig `yaml:"twitter"`
}

// TwitterConfig holds the OAuth1 credentials used by the twitter notifier.
type TwitterConfig struct {
	APIKey       string `yaml:"api_key"`
	APISecret    string `yaml:"api_secret"`
	AccessToken  string `yaml:"access_token"`
	AccessSecret string `yaml:"access_secret"`
}

// Credentials converts the section for the notifier package.
func (t TwitterConfig) Credentials() notifier.TwitterCredentials {
	return notifier.TwitterCredentials{
		APIKey:       t.APIKey,
		APISecret:    t.APISecret,
		AccessToken:  t.AccessToken,
		AccessSecret: t.AccessSecret,
	}
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := parseDuration(s)
	if err != nil {
		return err
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// parseDuration accepts Go duration strings and bare numbers of seconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return parsed, nil
}

// Default returns a configuration holding only the defaults.
func Default() *Config {
	return &Config{
		PollInterval: Duration(DefaultPollInterval),
		FetchTimeout: Duration(DefaultFetchTimeout),
		SendDelay:    Duration(DefaultSendDelay),
		StatusLimit:  store.DefaultStatusLimit,
		Notifier:     DefaultNotifier,
		LogLevel:     DefaultLogLevel,
	}
}

// Load builds the configuration from every source. path names an optional
// YAML file; an empty path skips it. Load does not validate.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.parse(data); err != nil {
			return nil, err
		}
		logger.Debug("config file loaded", logger.Fields{"path": path})
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse parses YAML configuration data over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.parse(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parse(data []byte) error {
	expanded, err := expandEnvVars(string(data))
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// applyEnv overrides fields from the process environment.
func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"TOKEN":                 &c.BotToken,
		"CHAT_ID":               &c.ChatID,
		"URL":                   &c.SourceURL,
		"PORTWATCH_HTTP_ADDR":   &c.HTTPAddr,
		"PORTWATCH_NOTIFIER":    &c.Notifier,
		"PORTWATCH_LOG_LEVEL":   &c.LogLevel,
		"TWITTER_API_KEY":       &c.Twitter.APIKey,
		"TWITTER_API_SECRET":    &c.Twitter.APISecret,
		"TWITTER_ACCESS_TOKEN":  &c.Twitter.AccessToken,
		"TWITTER_ACCESS_SECRET": &c.Twitter.AccessSecret,
	}
	for name, field := range strs {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*field = v
		}
	}

	durations := map[string]*Duration{
		"PORTWATCH_POLL_INTERVAL": &c.PollInterval,
		"PORTWATCH_FETCH_TIMEOUT": &c.FetchTimeout,
		"PORTWATCH_SEND_DELAY":    &c.SendDelay,
	}
	for name, field := range durations {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*field = Duration(d)
	}

	if v := os.Getenv("PORTWATCH_STATUS_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORTWATCH_STATUS_LIMIT: invalid number %q", v)
		}
		c.StatusLimit = n
	}

	return nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	var missing []string
	if c.BotToken == "" {
		missing = append(missing, "TOKEN")
	}
	if c.ChatID == "" {
		missing = append(missing, "CHAT_ID")
	}
	if c.SourceURL == "" {
		missing = append(missing, "URL")
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", ")))
	}

	if c.PollInterval.Duration() <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval.Duration()))
	}
	if c.FetchTimeout.Duration() <= 0 {
		errs = append(errs, fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout.Duration()))
	}
	if c.SendDelay.Duration() < 0 {
		errs = append(errs, fmt.Errorf("send_delay must not be negative, got %s", c.SendDelay.Duration()))
	}
	if c.StatusLimit <= 0 {
		errs = append(errs, fmt.Errorf("status_limit must be positive, got %d", c.StatusLimit))
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	switch c.Notifier {
	case "telegram", "dryrun":
	case "twitter":
		if err := c.Twitter.Credentials().Validate(); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("unknown notifier %q (expected %s)", c.Notifier, strings.Join(notifierNames, ", ")))
	}

	return errors.Join(errs...)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		varName := submatches[1]
		hasDefault := submatches[2] != ""

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return submatches[3]
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}
