package uc

import "github.com/slowerai/backend/engine/user"

// Factory builds use cases bound to one repository.
type Factory struct {
	repo   Repository
	limits PageLimits
}

func NewFactory(repo Repository, limits PageLimits) *Factory {
	return &Factory{repo: repo, limits: limits}
}

func (f *Factory) ListUsers(params user.ListParams) *ListUsers {
	return NewListUsers(f.repo, params, f.limits)
}

func (f *Factory) GetUser(id int64) *GetUser {
	return NewGetUser(f.repo, id)
}

func (f *Factory) CreateUser(input *CreateUserInput) *CreateUser {
	return NewCreateUser(f.repo, input)
}

func (f *Factory) UpdateUser(id int64, input *UpdateUserInput) *UpdateUser {
	return NewUpdateUser(f.repo, id, input)
}

func (f *Factory) DeleteUser(id int64) *DeleteUser {
	return NewDeleteUser(f.repo, id)
}

func (f *Factory) GetStats() *GetStats {
	return NewGetStats(f.repo)
}
