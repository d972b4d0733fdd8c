package user

import (
	"time"

	"thrift-store-be/internal/auth"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Identity() auth.Identity {
	return auth.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string
	User  User
}
