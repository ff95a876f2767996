package uc

import (
	"context"
	"errors"
	"fmt"

	"github.com/slowerai/backend/engine/user"
	"github.com/slowerai/backend/pkg/logger"
)

// DeleteUser use case for deleting a user
type DeleteUser struct {
	repo   Repository
	userID int64
}

// NewDeleteUser creates a new delete user use case
func NewDeleteUser(repo Repository, userID int64) *DeleteUser {
	return &DeleteUser{
		repo:   repo,
		userID: userID,
	}
}

// Execute deletes a user
func (uc *DeleteUser) Execute(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug("Deleting user", "user_id", uc.userID)
	if err := uc.repo.DeleteUser(ctx, uc.userID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user %d: %w", uc.userID, err)
	}
	log.Info("User deleted successfully", "user_id", uc.userID)
	return nil
}
