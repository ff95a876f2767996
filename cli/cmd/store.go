package cmd

import (
	"github.com/slowerai/backend/engine/infra/postgres"
	"github.com/slowerai/backend/pkg/config"
)

// StoreConfig builds the pool settings for the application database from DATABASE_URL.
func StoreConfig(cfg *config.Config) *postgres.Config {
	pg := ProvisionConfig(cfg)
	pg.ConnString = cfg.Database.URL.Value()
	return &pg
}

// ProvisionConfig addresses the server through the discrete DB_* settings.
func ProvisionConfig(cfg *config.Config) postgres.Config {
	db := cfg.Database
	return postgres.Config{
		Host:            db.Host,
		Port:            db.Port,
		User:            db.User,
		Password:        db.Password.Value(),
		DBName:          db.Name,
		SSLMode:         db.SSLMode,
		ApplicationName: db.ApplicationName,
		ConnectTimeout:  db.ConnectTimeout,
		MaxConns:        db.MaxConns,
	}
}
