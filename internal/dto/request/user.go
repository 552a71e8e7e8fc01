package request

type UserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Login    string  `json:"login" validate:"required,nospace"`
	Name     string  `json:"name"`
	Birthday *string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02,notfuture"`
}
