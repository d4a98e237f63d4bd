package client

import "context"

// User is the identity returned by GET /users/me.
type User struct {
	ID       int64  `json:"id"`
	UserName string `json:"username"`
}

type Client interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (string, error)
	Me(ctx context.Context, token string) (*User, error)
	Logout(ctx context.Context, token string) error
}
