// Package usertest provides an in-memory user repository for tests.
package usertest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/slowerai/backend/engine/user"
	"github.com/slowerai/backend/engine/user/uc"
)

// ErrUniqueViolation mimics a storage-level unique constraint failure.
var ErrUniqueViolation = errors.New("duplicate key value violates unique constraint")

// MemoryRepo implements uc.Repository over a map. Transactions snapshot the
// rows and restore them when the callback fails.
type MemoryRepo struct {
	mu     *sync.Mutex
	rows   map[int64]*user.User
	nextID *int64
	now    func() time.Time
	inTx   bool

	// FailWith, when set, is returned by every operation.
	FailWith error
}

// NewMemoryRepo creates an empty repository.
func NewMemoryRepo() *MemoryRepo {
	next := int64(1)
	return &MemoryRepo{
		mu:     &sync.Mutex{},
		rows:   make(map[int64]*user.User),
		nextID: &next,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Seed inserts users directly, assigning ids in order.
func (r *MemoryRepo) Seed(users ...user.User) []*user.User {
	out := make([]*user.User, 0, len(users))
	for i := range users {
		u := users[i]
		if err := r.CreateUser(context.Background(), &u); err != nil {
			panic(err)
		}
		out = append(out, &u)
	}
	return out
}

// Len returns the number of stored rows.
func (r *MemoryRepo) Len() int {
	r.lock()
	defer r.unlock()
	return len(r.rows)
}

func (r *MemoryRepo) lock() {
	if !r.inTx {
		r.mu.Lock()
	}
}

func (r *MemoryRepo) unlock() {
	if !r.inTx {
		r.mu.Unlock()
	}
}

func matches(u *user.User, p user.ListParams) bool {
	if p.Search != "" {
		needle := strings.ToLower(p.Search)
		if !strings.Contains(strings.ToLower(u.Username), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) &&
			!strings.Contains(strings.ToLower(u.FullName), needle) {
			return false
		}
	}
	if p.Role != "" && u.Role != p.Role {
		return false
	}
	if p.IsActive != nil && u.IsActive != *p.IsActive {
		return false
	}
	return true
}

func (r *MemoryRepo) filtered(p user.ListParams) []*user.User {
	out := make([]*user.User, 0, len(r.rows))
	for _, u := range r.rows {
		if matches(u, p) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func clone(u *user.User) *user.User {
	c := *u
	return &c
}

func (r *MemoryRepo) CountUsers(_ context.Context, p user.ListParams) (int64, error) {
	if r.FailWith != nil {
		return 0, r.FailWith
	}
	r.lock()
	defer r.unlock()
	return int64(len(r.filtered(p))), nil
}

func (r *MemoryRepo) ListUsers(_ context.Context, p user.ListParams) ([]*user.User, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.lock()
	defer r.unlock()
	all := r.filtered(p)
	start := p.Offset()
	if start >= len(all) {
		return []*user.User{}, nil
	}
	end := len(all)
	if p.PerPage > 0 && start+p.PerPage < end {
		end = start + p.PerPage
	}
	out := make([]*user.User, 0, end-start)
	for _, u := range all[start:end] {
		out = append(out, clone(u))
	}
	return out, nil
}

func (r *MemoryRepo) CountByRole(_ context.Context) (map[string]int64, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.lock()
	defer r.unlock()
	out := make(map[string]int64)
	for _, u := range r.rows {
		out[u.Role]++
	}
	return out, nil
}

func (r *MemoryRepo) GetUserByID(_ context.Context, id int64) (*user.User, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.lock()
	defer r.unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepo) GetUserForUpdate(ctx context.Context, id int64) (*user.User, error) {
	return r.GetUserByID(ctx, id)
}

func (r *MemoryRepo) findBy(pred func(*user.User) bool) (*user.User, error) {
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	r.lock()
	defer r.unlock()
	for _, u := range r.rows {
		if pred(u) {
			return clone(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *MemoryRepo) GetUserByUsername(_ context.Context, username string) (*user.User, error) {
	return r.findBy(func(u *user.User) bool { return u.Username == username })
}

func (r *MemoryRepo) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	return r.findBy(func(u *user.User) bool { return u.Email == email })
}

func (r *MemoryRepo) conflicts(u *user.User) bool {
	for id, other := range r.rows {
		if id == u.ID {
			continue
		}
		if other.Username == u.Username || other.Email == u.Email {
			return true
		}
	}
	return false
}

func (r *MemoryRepo) CreateUser(_ context.Context, u *user.User) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.lock()
	defer r.unlock()
	u.ID = 0
	if r.conflicts(u) {
		return ErrUniqueViolation
	}
	u.ID = *r.nextID
	*r.nextID++
	now := r.now()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.rows[u.ID] = clone(u)
	return nil
}

func (r *MemoryRepo) UpdateUser(_ context.Context, u *user.User) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.lock()
	defer r.unlock()
	existing, ok := r.rows[u.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	if r.conflicts(u) {
		return ErrUniqueViolation
	}
	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = r.now()
	r.rows[u.ID] = clone(u)
	return nil
}

func (r *MemoryRepo) DeleteUser(_ context.Context, id int64) error {
	if r.FailWith != nil {
		return r.FailWith
	}
	r.lock()
	defer r.unlock()
	if _, ok := r.rows[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryRepo) WithTx(_ context.Context, fn func(uc.Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make(map[int64]*user.User, len(r.rows))
	for id, u := range r.rows {
		snapshot[id] = clone(u)
	}
	tx := &MemoryRepo{
		mu:       r.mu,
		rows:     r.rows,
		nextID:   r.nextID,
		now:      r.now,
		inTx:     true,
		FailWith: r.FailWith,
	}
	if err := fn(tx); err != nil {
		r.rows = snapshot
		return err
	}
	return nil
}

var _ uc.Repository = (*MemoryRepo)(nil)
