package uc

import (
	"context"

	"github.com/slowerai/backend/engine/user"
)

// Repository defines all data access operations for the user domain
type Repository interface {
	// CountUsers counts rows matching the filters of params; the page window is ignored.
	CountUsers(ctx context.Context, params user.ListParams) (int64, error)
	// ListUsers returns the page window of rows matching params ordered by id.
	ListUsers(ctx context.Context, params user.ListParams) ([]*user.User, error)
	// CountByRole groups all rows by role.
	CountByRole(ctx context.Context) (map[string]int64, error)

	GetUserByID(ctx context.Context, id int64) (*user.User, error)
	// GetUserForUpdate loads a row and locks it until the surrounding transaction ends.
	GetUserForUpdate(ctx context.Context, id int64) (*user.User, error)
	GetUserByUsername(ctx context.Context, username string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)

	// CreateUser inserts u and fills the store-assigned id and timestamps.
	CreateUser(ctx context.Context, u *user.User) error
	// UpdateUser writes every mutable column of u and refreshes its timestamps.
	UpdateUser(ctx context.Context, u *user.User) error
	DeleteUser(ctx context.Context, id int64) error

	// WithTx runs fn against a repository bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(Repository) error) error
}
