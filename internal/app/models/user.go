package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Ivan Petrov"`
	Email     string    `json:"email" db:"email" example:"user@example.com"`
	Password  string    `json:"-" db:"password"` // hashed, excluded from JSON
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"USER"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
