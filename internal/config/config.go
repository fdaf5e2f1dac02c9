// Package config loads ftplist settings from defaults, a YAML file, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gonzalop/ftplist"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when neither -config nor FTPLIST_CONFIG is set
// and the file exists in the working directory.
const DefaultConfigFile = "ftplist.yaml"

// ErrUsage marks errors caused by bad flags or settings.
var ErrUsage = errors.New("usage error")

// Environment variables consulted by Load.
const (
	EnvConfig   = "FTPLIST_CONFIG"
	EnvOutput   = "FTPLIST_OUTPUT"
	EnvFormats  = "FTPLIST_FORMATS"
	EnvStrict   = "FTPLIST_STRICT"
	EnvLogLevel = "FTPLIST_LOG_LEVEL"
	EnvListen   = "FTPLIST_LISTEN"
)

// Config holds all settings for the ftplist command.
type Config struct {
	Output       string   `yaml:"output"`
	Formats      []string `yaml:"formats"`
	Strict       bool     `yaml:"strict"`
	LogLevel     string   `yaml:"log_level"`
	Listen       string   `yaml:"listen"`
	MaxBodyBytes int64    `yaml:"max_body_bytes"`
	RateLimit    int      `yaml:"rate_limit"`

	// Internal: file the settings were read from, if any
	configPath string
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Output:       "text",
		Formats:      []string{"unix", "msdos"},
		LogLevel:     "info",
		Listen:       ":8080",
		MaxBodyBytes: 1 << 20,
	}
}

// Load builds the configuration for the named subcommand from args and the
// environment. It returns the positional arguments left after flag parsing.
// Errors from bad input wrap ErrUsage; -h yields an error wrapping
// flag.ErrHelp.
func Load(name string, args []string, stderr io.Writer) (*Config, []string, error) {
	cfg := DefaultConfig()

	fset := flag.NewFlagSet("ftplist "+name, flag.ContinueOnError)
	fset.SetOutput(stderr)
	configFile := fset.String("config", "", "Configuration file path")
	output := fset.String("output", "", "Output format (text, json, yaml)")
	formats := fset.String("formats", "", "Comma-separated listing formats to accept (unix, msdos)")
	strict := fset.Bool("strict", false, "Exit with status 1 when a line cannot be parsed")
	logLevel := fset.String("log-level", "", "Log level (debug, info, warn, error)")
	listen := fset.String("listen", "", "HTTP listen address for serve")
	maxBody := fset.Int64("max-body-bytes", 0, "Largest request body accepted by serve")
	rateLimit := fset.Int("rate-limit", 0, "Parse requests per second accepted by serve (0 = unlimited)")
	fset.StringVar(output, "o", "", "Output format (shorthand)")

	if err := fset.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfgPath := *configFile
	explicit := cfgPath != ""
	if cfgPath == "" {
		cfgPath = os.Getenv(EnvConfig)
		explicit = cfgPath != ""
	}
	if cfgPath == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgPath = DefaultConfigFile
		}
	}
	if cfgPath != "" {
		if err := cfg.loadFromFile(cfgPath); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, nil, fmt.Errorf("failed to load config %s: %w", cfgPath, err)
			}
		} else {
			cfg.configPath = cfgPath
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, nil, err
	}

	// Flags override everything else, but only when given.
	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output", "o":
			cfg.Output = *output
		case "formats":
			cfg.Formats = splitList(*formats)
		case "strict":
			cfg.Strict = *strict
		case "log-level":
			cfg.LogLevel = *logLevel
		case "listen":
			cfg.Listen = *listen
		case "max-body-bytes":
			cfg.MaxBodyBytes = *maxBody
		case "rate-limit":
			cfg.RateLimit = *rateLimit
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, fset.Args(), nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvOutput); ok {
		c.Output = v
	}
	if v, ok := os.LookupEnv(EnvFormats); ok {
		c.Formats = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvStrict); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: invalid %s %q", ErrUsage, EnvStrict, v)
		}
		c.Strict = b
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvListen); ok {
		c.Listen = v
	}
	return nil
}

// Validate checks that every setting has an accepted value.
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: unknown output %q", ErrUsage, c.Output)
	}
	if _, err := c.ParserFormats(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: max_body_bytes must be positive, got %d", ErrUsage, c.MaxBodyBytes)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("%w: rate_limit cannot be negative, got %d", ErrUsage, c.RateLimit)
	}
	return nil
}

// ParserFormats converts the configured format names.
func (c *Config) ParserFormats() ([]ftplist.Format, error) {
	if len(c.Formats) == 0 {
		return nil, fmt.Errorf("%w: no listing formats configured", ErrUsage)
	}
	formats := make([]ftplist.Format, 0, len(c.Formats))
	for _, name := range c.Formats {
		f, err := ftplist.ParseFormat(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		formats = append(formats, f)
	}
	return formats, nil
}

// NewParser builds the composite parser described by the configuration. A nil
// logger leaves the parser on slog.Default.
func (c *Config) NewParser(logger *slog.Logger) (*ftplist.CompositeParser, error) {
	formats, err := c.ParserFormats()
	if err != nil {
		return nil, err
	}
	opts := []ftplist.Option{ftplist.WithFormats(formats...)}
	if logger != nil {
		opts = append(opts, ftplist.WithLogger(logger))
	}
	return ftplist.NewCompositeParser(opts...)
}

// SlogLevel converts the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: unknown log level %q", ErrUsage, c.LogLevel)
	}
	return level, nil
}

// ConfigFilePath returns the file the settings were read from, or "".
func (c *Config) ConfigFilePath() string {
	return c.configPath
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
