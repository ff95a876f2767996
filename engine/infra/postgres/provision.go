package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/slowerai/backend/engine/user"
	"github.com/slowerai/backend/engine/user/uc"
	"github.com/slowerai/backend/pkg/logger"
)

// CreateDatabaseIfMissing creates name on the server db is connected to unless
// pg_database already lists it. It reports whether a database was created.
func CreateDatabaseIfMissing(ctx context.Context, db Querier, name string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("database name is required")
	}
	var exists bool
	err := db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking database %q: %w", name, err)
	}
	log := logger.FromContext(ctx)
	if exists {
		log.Info("Database already exists", "db_name", name)
		return false, nil
	}
	if _, err := db.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return false, fmt.Errorf("creating database %q: %w", name, err)
	}
	log.Info("Database created", "db_name", name)
	return true, nil
}

// advisoryLocker is implemented by repositories that can serialize
// concurrent transactions on a named lock.
type advisoryLocker interface {
	AdvisoryLock(ctx context.Context, key string) error
}

// SeedSampleUsers inserts the sample users when the table is empty and
// returns how many rows were inserted. Concurrent seeders serialize on the
// schema lock, so only the first one inserts.
func SeedSampleUsers(ctx context.Context, repo uc.Repository) (int, error) {
	inserted := 0
	err := repo.WithTx(ctx, func(tx uc.Repository) error {
		if locker, ok := tx.(advisoryLocker); ok {
			if err := locker.AdvisoryLock(ctx, schemaLockKey); err != nil {
				return err
			}
		}
		total, err := tx.CountUsers(ctx, user.ListParams{})
		if err != nil {
			return err
		}
		if total > 0 {
			return nil
		}
		for _, sample := range user.SampleUsers() {
			u := sample
			if err := tx.CreateUser(ctx, &u); err != nil {
				return fmt.Errorf("inserting sample user %s: %w", u.Username, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seeding sample users: %w", err)
	}
	if inserted > 0 {
		logger.FromContext(ctx).Info("Sample users inserted", "count", inserted)
	}
	return inserted, nil
}
