// internal/server/config.go
package server

import (
	"time"

	"cardgen/internal/common/config"
)

const DefaultMaxBodyBytes int64 = 1 << 20

type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// MaxBodyBytes caps the request body copied into the event.
	MaxBodyBytes int64
}

func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}
