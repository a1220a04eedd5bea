package models

import "time"

// User is the public projection of an account. It never carries the password.
type User struct {
	ID          string    `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Name        string    `json:"name" db:"name"`
	Institution string    `json:"institution" db:"institution"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Account struct {
	User
	PasswordHash string `json:"-" db:"password_hash"`
}

// Session is the single authenticated identity persisted for this installation.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,contains=@"`
	Password    string `json:"password" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Institution string `json:"institution"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
