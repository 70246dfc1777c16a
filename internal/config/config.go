package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/yaml.v3"
)

// Defaults used when neither the config file nor the environment set a value.
const (
	DefaultAPIURL  = "http://localhost:8080/api"
	DefaultWebURL  = "http://localhost:3000"
	DefaultTimeout = 30 * time.Second

	// FileName is the optional config file inside Home.
	FileName = "config.yaml"
	// LogFileName receives logs while the TUI owns the terminal.
	LogFileName = "financeflow.log"
	// SessionDir holds the persisted session inside Home.
	SessionDir = "session"
)

// Config is the client configuration. Precedence: defaults, then
// <Home>/config.yaml, then environment variables.
type Config struct {
	APIURL  string        `env:"FINANCEFLOW_API_URL" yaml:"api_url"`
	WebURL  string        `env:"FINANCEFLOW_WEB_URL" yaml:"web_url"`
	Home    string        `env:"FINANCEFLOW_HOME" yaml:"-"`
	Timeout time.Duration `env:"FINANCEFLOW_TIMEOUT" yaml:"timeout"`
	Debug   bool          `env:"FINANCEFLOW_DEBUG" yaml:"debug"`
}

// New returns a Config holding the defaults. Home is ~/.financeflow when the
// user's home directory is known.
func New() *Config {
	c := &Config{
		APIURL:  DefaultAPIURL,
		WebURL:  DefaultWebURL,
		Timeout: DefaultTimeout,
	}
	if home, err := os.UserHomeDir(); err == nil {
		c.Home = filepath.Join(home, ".financeflow")
	}
	return c
}

// Load builds the configuration from defaults, the config file and the
// environment.
func Load() (*Config, error) {
	c := New()
	// FINANCEFLOW_HOME decides where the config file lives, so it is read first.
	if home := os.Getenv("FINANCEFLOW_HOME"); home != "" {
		c.Home = home
	}
	if err := c.File(); err != nil {
		return nil, err
	}
	if err := c.Env(); err != nil {
		return nil, err
	}
	if c.APIURL == "" {
		return nil, errors.New("config: API URL is empty")
	}
	return c, nil
}

// File overlays values from <Home>/config.yaml. A missing file is not an error.
func (c *Config) File() error {
	if c.Home == "" {
		return nil
	}
	path := filepath.Join(c.Home, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Env overlays values from the environment.
func (c *Config) Env() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// SessionPath is the directory of the persisted session.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Home, SessionDir)
}

// LogPath is the TUI log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Home, LogFileName)
}

// Logger wraps the zerolog logger shared by the client's components.
type Logger struct {
	*zerolog.Logger
}

// NewLogger wraps logger.
func NewLogger(logger *zerolog.Logger) *Logger {
	return &Logger{
		Logger: logger,
	}
}

// TestLogger logs everything to stderr.
func TestLogger() *Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	logger := zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()

	return NewLogger(&logger)
}

// GetLogger returns a console logger writing to w at info level, or debug
// level when Debug is set.
func (c *Config) GetLogger(w io.Writer) *Logger {
	logLevel := zerolog.InfoLevel
	if c.Debug {
		logLevel = zerolog.DebugLevel
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	logger := zerolog.New(output).Level(logLevel).With().Timestamp().Logger()

	return NewLogger(&logger)
}

// OpenLog opens the log file for appending, creating Home if needed.
func (c *Config) OpenLog() (*os.File, error) {
	if err := os.MkdirAll(c.Home, 0700); err != nil {
		return nil, fmt.Errorf("config: create %s: %w", c.Home, err)
	}
	f, err := os.OpenFile(c.LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("config: open log: %w", err)
	}
	return f, nil
}
