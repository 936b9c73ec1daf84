// Package config loads nextqr settings from a YAML file, an optional .env
// file and NEXTQR_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Clipboard holds the commands used to place content on the system
// clipboard. Content is piped to the command's stdin.
type Clipboard struct {
	ImageCommand string `yaml:"image_command"`
	TextCommand  string `yaml:"text_command"`
}

// Config holds all application configuration values.
type Config struct {
	Port      int       `yaml:"port"`
	LogLevel  string    `yaml:"log_level"`
	Locale    string    `yaml:"locale"`
	Encoder   string    `yaml:"encoder"`
	LogoPath  string    `yaml:"logo_path"`
	OutputDir string    `yaml:"output_dir"`
	Debounce  Duration  `yaml:"debounce"`
	Clipboard Clipboard `yaml:"clipboard"`
}

// Duration is a time.Duration that reads and writes YAML strings like
// "300ms".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:      8080,
		LogLevel:  "info",
		Locale:    "en",
		Encoder:   "yeqown",
		OutputDir: ".",
		Debounce:  Duration{300 * time.Millisecond},
		Clipboard: Clipboard{
			ImageCommand: "wl-copy --type image/png",
			TextCommand:  "wl-copy",
		},
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if it does not exist, then applies environment overrides. An
// empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// applyEnvOverrides applies NEXTQR_* variables, and the conventional PORT,
// to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("NEXTQR_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("NEXTQR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NEXTQR_LOCALE"); v != "" {
		cfg.Locale = v
	}
	if v := os.Getenv("NEXTQR_ENCODER"); v != "" {
		cfg.Encoder = v
	}
	if v := os.Getenv("NEXTQR_LOGO_PATH"); v != "" {
		cfg.LogoPath = v
	}
	if v := os.Getenv("NEXTQR_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("NEXTQR_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Debounce = Duration{d}
		}
	}
	if v, ok := os.LookupEnv("NEXTQR_CLIPBOARD_IMAGE"); ok {
		cfg.Clipboard.ImageCommand = v
	}
	if v, ok := os.LookupEnv("NEXTQR_CLIPBOARD_TEXT"); ok {
		cfg.Clipboard.TextCommand = v
	}
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Debounce.Duration < 0 {
		return fmt.Errorf("invalid debounce %s", c.Debounce.Duration)
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Level maps LogLevel to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}
