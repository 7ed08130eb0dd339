package response

import (
	"clinic-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type MeResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

func ToLoginResponse(token string, view *queries.AuthorizedUserView) LoginResponse {
	return LoginResponse{
		Token: token,
		User: UserResponse{
			ID:    view.ID,
			Email: view.Email,
			Role:  view.Role,
		},
	}
}
