package models

import "time"

// User is a row of the credential store. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	UserName     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the minimal view of a user the request pipeline needs once a
// token has been verified.
type Identity struct {
	UserID       int64
	UserName     string
	PasswordHash string
}
