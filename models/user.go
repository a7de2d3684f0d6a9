package models

import "time"

// User - пользователь API.
type User struct {
	ID           int64     `json:"id" db:"Id"`
	Email        string    `json:"email" db:"Email"`
	DisplayName  string    `json:"display_name" db:"DisplayName"`
	PasswordHash string    `json:"-" db:"PasswordHash"`
	CreatedAt    time.Time `json:"created_at" db:"CreatedAt"`
	UpdatedAt    time.Time `json:"updated_at" db:"UpdatedAt"`
}
