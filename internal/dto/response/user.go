package response

import (
	"filmorate/internal/data/entity"
	"filmorate/pkg/utils"
)

type UserResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	Birthday *string `json:"birthday,omitempty"`
}

func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Login: user.Login,
		Name:  user.DisplayName(),
	}
	if user.Birthday != nil {
		birthday := user.Birthday.Format(utils.DateLayout)
		resp.Birthday = &birthday
	}
	return resp
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserToResponse(u))
	}
	return out
}
