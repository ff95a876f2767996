package postgres

import (
	"net"
	"net/url"
	"time"
)

// MaintenanceDB is the database every Postgres server ships with; provisioning connects to it.
const MaintenanceDB = "postgres"

// Config holds PostgreSQL connection settings for the driver.
// Prefer providing a DSN via ConnString. When empty, a DSN will be
// synthesized from the individual fields.
type Config struct {
	ConnString         string
	Host               string
	Port               string
	User               string
	Password           string
	DBName             string
	SSLMode            string
	ApplicationName    string
	ConnectTimeout     time.Duration
	PingTimeout        time.Duration
	HealthCheckTimeout time.Duration
	MaxConns           int
}

// WithDatabase returns a copy of cfg targeting another database over the discrete fields.
func (c Config) WithDatabase(name string) Config {
	c.ConnString = ""
	c.DBName = name
	return c
}

// DSN returns ConnString when set, otherwise a postgres URL built from the fields.
func (c Config) DSN() string {
	if c.ConnString != "" {
		return c.ConnString
	}
	host := c.Host
	if c.Port != "" {
		host = net.JoinHostPort(c.Host, c.Port)
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   host,
		Path:   "/" + c.DBName,
	}
	if c.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", c.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Redacted returns the DSN with the password masked, for logs.
func (c Config) Redacted() string {
	u, err := url.Parse(c.DSN())
	if err != nil || u.User == nil {
		return "***"
	}
	return u.Redacted()
}
