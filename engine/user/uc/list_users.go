package uc

import (
	"context"
	"fmt"

	"github.com/slowerai/backend/engine/user"
	"github.com/slowerai/backend/pkg/logger"
)

// PageLimits bounds the page size accepted by the listing.
type PageLimits struct {
	DefaultPerPage int
	MaxPerPage     int
}

// ListUsers use case for the filtered, paginated listing
type ListUsers struct {
	repo   Repository
	params user.ListParams
	limits PageLimits
}

// NewListUsers creates a new list users use case
func NewListUsers(repo Repository, params user.ListParams, limits PageLimits) *ListUsers {
	return &ListUsers{
		repo:   repo,
		params: params,
		limits: limits,
	}
}

// Execute counts the filtered set and then loads the requested window of it.
func (uc *ListUsers) Execute(ctx context.Context) (*user.Page, error) {
	params := uc.params.Normalize(uc.limits.DefaultPerPage, uc.limits.MaxPerPage)
	log := logger.FromContext(ctx)
	log.Debug(
		"Listing users",
		"page", params.Page,
		"per_page", params.PerPage,
		"search", params.Search,
		"role", params.Role,
	)
	total, err := uc.repo.CountUsers(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	users, err := uc.repo.ListUsers(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []*user.User{}
	}
	return &user.Page{
		Users:      users,
		Pagination: user.NewPagination(params.Page, params.PerPage, total),
	}, nil
}
