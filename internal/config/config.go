// Package config loads process settings from defaults, an optional YAML
// file, MARTIAN_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benbeisheim/martianchess-backend/internal/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "MARTIAN_"

type Config struct {
	Addr          string        `yaml:"addr"`
	CORSOrigins   []string      `yaml:"cors_origins"`
	ClockStart    int           `yaml:"clock_start"`
	LogLevel      string        `yaml:"log_level"`
	Dev           bool          `yaml:"dev"`
	PruneInterval time.Duration `yaml:"prune_interval"`
	GameTTL       time.Duration `yaml:"game_ttl"`
}

func Default() Config {
	return Config{
		Addr:          ":3000",
		CORSOrigins:   []string{"http://localhost:5173"},
		ClockStart:    model.DefaultClockStart,
		LogLevel:      "info",
		PruneInterval: time.Minute,
		GameTTL:       time.Hour,
	}
}

// Rules is the rule set games are created with.
func (c Config) Rules() model.Rules {
	return model.Rules{ClockStart: c.ClockStart}
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr must not be empty")
	}
	if c.ClockStart <= 0 {
		return fmt.Errorf("config: clock_start must be positive, got %d", c.ClockStart)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.PruneInterval <= 0 || c.GameTTL <= 0 {
		return errors.New("config: prune_interval and game_ttl must be positive")
	}
	return nil
}

// Load builds a Config for a process named name. A -config flag names the
// YAML file; the flag value is peeked before the file is read so that the
// remaining flags still override it.
func Load(name string, args []string, getenv func(string) string) (Config, error) {
	cfg := Default()

	path := getenv(EnvPrefix + "CONFIG")
	if p, ok := peekFlag(args, "config"); ok {
		path = p
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.loadEnv(getenv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", path, "path to a YAML config file")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.IntVar(&cfg.ClockStart, "clock", cfg.ClockStart, "moves left on the clock once started")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "human readable development logging")
	fs.DurationVar(&cfg.PruneInterval, "prune-interval", cfg.PruneInterval, "how often idle games are pruned")
	fs.DurationVar(&cfg.GameTTL, "game-ttl", cfg.GameTTL, "idle time after which a game is pruned")
	origins := fs.String("cors-origins", strings.Join(cfg.CORSOrigins, ","), "comma separated allowed origins")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.CORSOrigins = splitList(*origins)

	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv(getenv func(string) string) error {
	if v := getenv(EnvPrefix + "ADDR"); v != "" {
		c.Addr = v
	}
	if v := getenv(EnvPrefix + "CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := getenv(EnvPrefix + "CLOCK_START"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sCLOCK_START: %w", EnvPrefix, err)
		}
		c.ClockStart = n
	}
	if v := getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvPrefix + "DEV"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sDEV: %w", EnvPrefix, err)
		}
		c.Dev = b
	}
	if v := getenv(EnvPrefix + "GAME_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sGAME_TTL: %w", EnvPrefix, err)
		}
		c.GameTTL = d
	}
	return nil
}

// NewLogger builds the process logger. Development mode logs in colour at
// debug level unless a level is set explicitly.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func peekFlag(args []string, name string) (string, bool) {
	for i, arg := range args {
		trimmed := strings.TrimLeft(arg, "-")
		if trimmed == arg {
			continue
		}
		if trimmed == name && i+1 < len(args) {
			return args[i+1], true
		}
		if v, ok := strings.CutPrefix(trimmed, name+"="); ok {
			return v, true
		}
	}
	return "", false
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
