package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/slowerai/backend/engine/user"
	"github.com/slowerai/backend/engine/user/uc"
	"github.com/slowerai/backend/pkg/logger"
)

const usersTable = "users"

// Repository implements the user repository interface using PostgreSQL
type Repository struct {
	db   DBInterface
	inTx bool
}

// DBInterface defines the minimal interface needed by the repository
type DBInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// NewRepository creates a new user repository
func NewRepository(db DBInterface) uc.Repository {
	return &Repository{db: db}
}

func psql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term literally anywhere in a value.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func applyFilters(qb squirrel.SelectBuilder, params user.ListParams) squirrel.SelectBuilder {
	if params.Search != "" {
		pattern := containsPattern(params.Search)
		qb = qb.Where(squirrel.Or{
			squirrel.ILike{"username": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"full_name": pattern},
		})
	}
	if params.Role != "" {
		qb = qb.Where(squirrel.Eq{"role": params.Role})
	}
	if params.IsActive != nil {
		qb = qb.Where(squirrel.Eq{"is_active": *params.IsActive})
	}
	return qb
}

// CountUsers counts the rows matching the listing filters
func (r *Repository) CountUsers(ctx context.Context, params user.ListParams) (int64, error) {
	query, args, err := applyFilters(psql().Select("COUNT(*)").From(usersTable), params).ToSql()
	if err != nil {
		return 0, fmt.Errorf("building count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return total, nil
}

// ListUsers retrieves one page of matching users ordered by id
func (r *Repository) ListUsers(ctx context.Context, params user.ListParams) ([]*user.User, error) {
	qb := applyFilters(psql().Select(user.Columns...).From(usersTable), params).
		OrderBy("id ASC")
	if params.PerPage > 0 {
		qb = qb.Limit(uint64(params.PerPage)).Offset(uint64(params.Offset()))
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	users := []*user.User{}
	if err := pgxscan.Select(ctx, r.db, &users, query, args...); err != nil {
		return nil, fmt.Errorf("scanning users: %w", err)
	}
	return users, nil
}

type roleCount struct {
	Role  string `db:"role"`
	Count int64  `db:"count"`
}

// CountByRole returns the number of users per role
func (r *Repository) CountByRole(ctx context.Context) (map[string]int64, error) {
	query, args, err := psql().Select("role", "COUNT(*) AS count").
		From(usersTable).
		GroupBy("role").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building role distribution query: %w", err)
	}
	var rows []roleCount
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("scanning role distribution: %w", err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Role] = row.Count
	}
	return out, nil
}

func (r *Repository) getOne(ctx context.Context, qb squirrel.SelectBuilder) (*user.User, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	var u user.User
	if err := pgxscan.Get(ctx, r.db, &u, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}

func selectUsers() squirrel.SelectBuilder {
	return psql().Select(user.Columns...).From(usersTable)
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, selectUsers().Where(squirrel.Eq{"id": id}))
}

// GetUserForUpdate retrieves a user by ID and holds a row lock until the transaction ends
func (r *Repository) GetUserForUpdate(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, selectUsers().Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

// GetUserByUsername retrieves a user by exact username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.getOne(ctx, selectUsers().Where(squirrel.Eq{"username": username}))
}

// GetUserByEmail retrieves a user by exact email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, selectUsers().Where(squirrel.Eq{"email": email}))
}

// CreateUser inserts a user and reads back the generated id and timestamps
func (r *Repository) CreateUser(ctx context.Context, u *user.User) error {
	query, args, err := psql().Insert(usersTable).
		Columns("username", "email", "full_name", "role", "is_active").
		Values(u.Username, u.Email, u.FullName, u.Role, u.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// UpdateUser writes the mutable columns; updated_at is refreshed by the table trigger
func (r *Repository) UpdateUser(ctx context.Context, u *user.User) error {
	query, args, err := psql().Update(usersTable).
		Set("username", u.Username).
		Set("email", u.Email).
		Set("full_name", u.FullName).
		Set("role", u.Role).
		Set("is_active", u.IsActive).
		Where(squirrel.Eq{"id": u.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building update query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}

// DeleteUser removes a user by ID
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	query, args, err := psql().Delete(usersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// AdvisoryLock takes a transaction-scoped advisory lock on key. It only
// serializes callers when used inside WithTx.
func (r *Repository) AdvisoryLock(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("acquiring advisory lock %q: %w", key, err)
	}
	return nil
}

// WithTx provides a tx-scoped repository to the callback.
func (r *Repository) WithTx(ctx context.Context, fn func(uc.Repository) error) (err error) {
	if r.inTx {
		return fn(r)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	log := logger.FromContext(ctx)
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				log.Error("Failed to rollback transaction", "error", rbErr)
			}
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				log.Error("Failed to rollback transaction", "error", rbErr)
			}
			return
		}
		if cmErr := tx.Commit(ctx); cmErr != nil {
			log.Error("Failed to commit transaction", "error", cmErr)
			err = fmt.Errorf("commit transaction: %w", cmErr)
		}
	}()
	return fn(&Repository{db: tx, inTx: true})
}
