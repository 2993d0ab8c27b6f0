// Package config holds the application configuration, loaded from the
// environment (optionally seeded from a .env file).
package config

import "time"

// Server configures the HTTP listener.
type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// Log configures the structured logger.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[bankist]"`
}

// RateLimit configures the HTTP rate limiter.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Seed configures where account seed data comes from. When File is empty the
// embedded default seed is used.
type Seed struct {
	File string `envconfig:"FILE"`
}

// App is the root configuration.
type App struct {
	Env       string    `envconfig:"APP_ENV" default:"development"`
	Server    Server    `envconfig:"APP"`
	Log       Log       `envconfig:"LOG"`
	RateLimit RateLimit `envconfig:"RATE_LIMIT"`
	Seed      Seed      `envconfig:"SEED"`
}
