package response

import (
	"github.com/google/uuid"

	"kidcheck/internal/usecase/queries"
)

type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
}

type LoginResponse struct {
	User *UserResponse `json:"user"`
}

func FromAuthorizedUserView(v *queries.AuthorizedUserView) *UserResponse {
	return &UserResponse{
		ID:          v.ID,
		Email:       v.Email,
		DisplayName: v.DisplayName,
		Role:        v.Role,
	}
}
