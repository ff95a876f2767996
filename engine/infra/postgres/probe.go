package postgres

import (
	"context"
	"fmt"
)

// ProbeResult summarizes a connectivity check.
type ProbeResult struct {
	Connected        bool
	UsersTableExists bool
}

// Probe runs a trivial query and checks that the users table exists in the public schema.
func Probe(ctx context.Context, db Querier) (*ProbeResult, error) {
	res := &ProbeResult{}
	var one int
	if err := db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return res, fmt.Errorf("connectivity query failed: %w", err)
	}
	res.Connected = true
	err := db.QueryRow(
		ctx,
		`SELECT EXISTS (
	SELECT 1 FROM information_schema.tables
	WHERE table_schema = 'public' AND table_name = $1
)`,
		"users",
	).Scan(&res.UsersTableExists)
	if err != nil {
		return res, fmt.Errorf("checking users table: %w", err)
	}
	return res, nil
}
