package server

import (
	"net"
	"strconv"
	"time"
)

const defaultShutdownTimeout = 5 * time.Second

// Config holds the HTTP listener settings.
type Config struct {
	Host               string
	Port               int
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
	Environment        string
}

// FullAddress returns host:port for the listener.
func (c *Config) FullAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) shutdownTimeout() time.Duration {
	if c.ShutdownTimeout > 0 {
		return c.ShutdownTimeout
	}
	return defaultShutdownTimeout
}
