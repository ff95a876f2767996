package uc

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/slowerai/backend/engine/user"
)

// GetStats use case for aggregate counts and the role histogram
type GetStats struct {
	repo Repository
}

// NewGetStats creates a new get stats use case
func NewGetStats(repo Repository) *GetStats {
	return &GetStats{repo: repo}
}

// Execute computes the aggregates. The three queries are independent and run concurrently.
func (uc *GetStats) Execute(ctx context.Context) (*user.Stats, error) {
	var (
		total, activeCount int64
		roles              map[string]int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.repo.CountUsers(gCtx, user.ListParams{})
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		active := true
		n, err := uc.repo.CountUsers(gCtx, user.ListParams{IsActive: &active})
		if err != nil {
			return fmt.Errorf("failed to count active users: %w", err)
		}
		activeCount = n
		return nil
	})
	g.Go(func() error {
		m, err := uc.repo.CountByRole(gCtx)
		if err != nil {
			return fmt.Errorf("failed to group users by role: %w", err)
		}
		roles = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if roles == nil {
		roles = map[string]int64{}
	}
	return &user.Stats{
		TotalUsers:       total,
		ActiveUsers:      activeCount,
		InactiveUsers:    total - activeCount,
		RoleDistribution: roles,
	}, nil
}
