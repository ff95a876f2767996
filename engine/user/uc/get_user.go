package uc

import (
	"context"
	"errors"
	"fmt"

	"github.com/slowerai/backend/engine/user"
)

// GetUser use case for retrieving a user by ID
type GetUser struct {
	repo   Repository
	userID int64
}

// NewGetUser creates a new get user use case
func NewGetUser(repo Repository, userID int64) *GetUser {
	return &GetUser{
		repo:   repo,
		userID: userID,
	}
}

// Execute retrieves a user by ID
func (uc *GetUser) Execute(ctx context.Context) (*user.User, error) {
	u, err := uc.repo.GetUserByID(ctx, uc.userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user %d: %w", uc.userID, err)
	}
	return u, nil
}
