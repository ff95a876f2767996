package uc

import (
	"context"
	"errors"
	"fmt"

	"github.com/slowerai/backend/engine/user"
	"github.com/slowerai/backend/pkg/logger"
)

// CreateUserInput represents the input for creating a user
type CreateUserInput struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Validate checks required fields in a fixed order so the first missing one is reported.
func (in *CreateUserInput) Validate() error {
	switch {
	case in.Username == "":
		return user.NewValidationError("username")
	case in.Email == "":
		return user.NewValidationError("email")
	case in.FullName == "":
		return user.NewValidationError("full_name")
	}
	return nil
}

// CreateUser use case for creating a new user
type CreateUser struct {
	repo  Repository
	input *CreateUserInput
}

// NewCreateUser creates a new create user use case
func NewCreateUser(repo Repository, input *CreateUserInput) *CreateUser {
	return &CreateUser{
		repo:  repo,
		input: input,
	}
}

// Execute validates the input, checks uniqueness and inserts the user in one transaction.
func (uc *CreateUser) Execute(ctx context.Context) (*user.User, error) {
	if uc.input == nil {
		return nil, fmt.Errorf("create user input is required")
	}
	if err := uc.input.Validate(); err != nil {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug("Creating user", "username", uc.input.Username, "email", uc.input.Email)
	u := &user.User{
		Username: uc.input.Username,
		Email:    uc.input.Email,
		FullName: uc.input.FullName,
		Role:     user.DefaultRole,
		IsActive: true,
	}
	if uc.input.Role != nil && *uc.input.Role != "" {
		u.Role = *uc.input.Role
	}
	if uc.input.IsActive != nil {
		u.IsActive = *uc.input.IsActive
	}
	err := uc.repo.WithTx(ctx, func(tx Repository) error {
		if err := ensureUsernameFree(ctx, tx, u.Username, 0); err != nil {
			return err
		}
		if err := ensureEmailFree(ctx, tx, u.Email, 0); err != nil {
			return err
		}
		return tx.CreateUser(ctx, u)
	})
	if err != nil {
		if errors.Is(err, user.ErrUsernameExists) || errors.Is(err, user.ErrEmailExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Info("User created successfully", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

// ensureUsernameFree fails when another row than selfID already holds username.
func ensureUsernameFree(ctx context.Context, repo Repository, username string, selfID int64) error {
	existing, err := repo.GetUserByUsername(ctx, username)
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("checking existing username: %w", err)
	case existing.ID != selfID:
		return user.ErrUsernameExists
	}
	return nil
}

// ensureEmailFree fails when another row than selfID already holds email.
func ensureEmailFree(ctx context.Context, repo Repository, email string, selfID int64) error {
	existing, err := repo.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("checking existing email: %w", err)
	case existing.ID != selfID:
		return user.ErrEmailExists
	}
	return nil
}
