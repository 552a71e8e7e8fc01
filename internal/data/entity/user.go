package entity

import "time"

type User struct {
	ID       int64      `db:"id"`
	Email    string     `db:"email"`
	Login    string     `db:"login"`
	Name     string     `db:"name"`
	Birthday *time.Time `db:"birthday"`
}

// DisplayName falls back to the login when no name was given.
func (u *User) DisplayName() string {
	if u.Name == "" {
		return u.Login
	}
	return u.Name
}
