package uc

import (
	"context"
	"errors"
	"fmt"

	"github.com/slowerai/backend/engine/user"
	"github.com/slowerai/backend/pkg/logger"
)

// UpdateUserInput represents the input for updating a user
type UpdateUserInput struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Validate rejects fields that are present but empty where the column is required.
func (in *UpdateUserInput) Validate() error {
	switch {
	case in.Username != nil && *in.Username == "":
		return user.NewValidationError("username")
	case in.Email != nil && *in.Email == "":
		return user.NewValidationError("email")
	case in.FullName != nil && *in.FullName == "":
		return user.NewValidationError("full_name")
	case in.Role != nil && *in.Role == "":
		return user.NewValidationError("role")
	}
	return nil
}

// UpdateUser use case for updating a user
type UpdateUser struct {
	repo   Repository
	userID int64
	input  *UpdateUserInput
}

// NewUpdateUser creates a new update user use case
func NewUpdateUser(repo Repository, userID int64, input *UpdateUserInput) *UpdateUser {
	return &UpdateUser{
		repo:   repo,
		userID: userID,
		input:  input,
	}
}

// Execute applies the provided fields to the locked row and leaves the rest untouched.
func (uc *UpdateUser) Execute(ctx context.Context) (*user.User, error) {
	if uc.input == nil {
		uc.input = &UpdateUserInput{}
	}
	if err := uc.input.Validate(); err != nil {
		return nil, err
	}
	var updated *user.User
	err := uc.repo.WithTx(ctx, func(tx Repository) error {
		u, err := tx.GetUserForUpdate(ctx, uc.userID)
		if err != nil {
			return err
		}
		if uc.input.Username != nil && *uc.input.Username != u.Username {
			if err := ensureUsernameFree(ctx, tx, *uc.input.Username, u.ID); err != nil {
				return err
			}
			u.Username = *uc.input.Username
		}
		if uc.input.Email != nil && *uc.input.Email != u.Email {
			if err := ensureEmailFree(ctx, tx, *uc.input.Email, u.ID); err != nil {
				return err
			}
			u.Email = *uc.input.Email
		}
		if uc.input.FullName != nil {
			u.FullName = *uc.input.FullName
		}
		if uc.input.Role != nil {
			u.Role = *uc.input.Role
		}
		if uc.input.IsActive != nil {
			u.IsActive = *uc.input.IsActive
		}
		if err := tx.UpdateUser(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound),
			errors.Is(err, user.ErrUsernameExists),
			errors.Is(err, user.ErrEmailExists):
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user %d: %w", uc.userID, err)
	}
	logger.FromContext(ctx).Info("User updated successfully", "user_id", updated.ID)
	return updated, nil
}
