package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the server configuration.
type Config struct {
	HTTPAddr              string `mapstructure:"HTTP_ADDR"`
	JWTSecret             string `mapstructure:"JWT_SECRET"`
	SessionTTLHours       int    `mapstructure:"SESSION_TTL_HOURS"`
	RoomInactivityMinutes int    `mapstructure:"ROOM_INACTIVITY_MINUTES"`
	SweepIntervalSeconds  int    `mapstructure:"SWEEP_INTERVAL_SECONDS"`
	AllowedOrigins        string `mapstructure:"ALLOWED_ORIGINS"`
	GinMode               string `mapstructure:"GIN_MODE"`
}

var defaults = map[string]interface{}{
	"HTTP_ADDR":               ":8080",
	"JWT_SECRET":              "change-me",
	"SESSION_TTL_HOURS":       24,
	"ROOM_INACTIVITY_MINUTES": 30,
	"SWEEP_INTERVAL_SECONDS":  60,
	"ALLOWED_ORIGINS":         "",
	"GIN_MODE":                "debug",
}

// ErrDefaultSecret is returned when a release build would sign sessions
// with the development secret.
var ErrDefaultSecret = errors.New("config: JWT_SECRET must be set when GIN_MODE=release")

// Load reads .env from the working directory (if any) and the environment.
// Environment variables win over the file.
func Load() (*Config, error) {
	return LoadFrom(".")
}

func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Println("config: .env file not found, using environment variables")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == defaults["JWT_SECRET"] {
		if cfg.GinMode == "release" {
			return nil, ErrDefaultSecret
		}
		log.Println("config: JWT_SECRET not set, using the development default")
	}
	return &cfg, nil
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) RoomInactivity() time.Duration {
	return time.Duration(c.RoomInactivityMinutes) * time.Minute
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

// Origins splits ALLOWED_ORIGINS. An empty result means any origin.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
