//go:build unit || e2e

package builder

import (
	"kidcheck/internal/usecase/commands"
	"kidcheck/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Role        string
	IsActive    bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:          uuid.New(),
		Email:       "parent@example.com",
		DisplayName: "Pat Parent",
		Role:        "parent",
		IsActive:    true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		IsActive:    u.IsActive,
	}
}

func (u *UserBuilder) BuildSnapshot() *commands.UserSnapshot {
	return &commands.UserSnapshot{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		IsActive:    u.IsActive,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithDisplayName(name string) *UserBuilder {
	u.DisplayName = name
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) AsStaff() *UserBuilder {
	u.Role = "staff"
	u.DisplayName = "Sam Staff"
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
