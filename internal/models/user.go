package models

import "time"

// User is a registered directory entry. The password is only ever held as a hash.
type User struct {
	Username     string    `json:"username" example:"jane_doe1"`
	Email        string    `json:"email" example:"jane1@example.com"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
