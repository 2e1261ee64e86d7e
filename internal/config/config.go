package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DefaultAddr         = ":3000"
	DefaultAllowOrigins = "http://localhost:5173"
	DefaultTurnTime     = 300 * time.Second
)

type Config struct {
	Addr         string
	AllowOrigins string
	TurnTime     time.Duration
}

// Load reads the server configuration from args, falling back to CHESS_ADDR,
// CHESS_ALLOW_ORIGINS and CHESS_TURN_TIME, then to the defaults.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	turnDefault := DefaultTurnTime
	if v := os.Getenv("CHESS_TURN_TIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("CHESS_TURN_TIME: %w", err)
		}
		turnDefault = d
	}

	var cfg Config
	fs.StringVar(&cfg.Addr, "addr", envOr("CHESS_ADDR", DefaultAddr), "address to listen on")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", envOr("CHESS_ALLOW_ORIGINS", DefaultAllowOrigins), "comma separated CORS origins")
	fs.DurationVar(&cfg.TurnTime, "turn-time", turnDefault, "clock budget per turn")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.TurnTime <= 0 {
		return Config{}, fmt.Errorf("turn time must be positive, got %v", cfg.TurnTime)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Origins splits AllowOrigins into its trimmed, non-empty parts.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
