// Package services contains application services for the to-do CLI.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/todokeeper/internal/common"
)

const (
	keyToken    = "token"
	keyUserName = "username"
)

// AuthService keeps the CLI session: the token issued by login is stored
// locally and presented on later invocations.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	Me(ctx context.Context) (*client.User, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client client.Client
	meta   metadata.Repository
}

func NewAuthService(c client.Client, meta metadata.Repository) AuthService {
	return &authService{client: c, meta: meta}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	return a.client.Register(ctx, username, password)
}

// Login replaces any stored session with the new token.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := a.meta.Set(ctx, keyToken, []byte(token)); err != nil {
		return err
	}
	return a.meta.Set(ctx, keyUserName, []byte(username))
}

func (a *authService) token(ctx context.Context) (string, error) {
	token, err := a.meta.Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	if len(token) == 0 {
		return "", fmt.Errorf("%w: not logged in", common.ErrorUnauthorized)
	}
	return string(token), nil
}

func (a *authService) Me(ctx context.Context) (*client.User, error) {
	token, err := a.token(ctx)
	if err != nil {
		return nil, err
	}
	return a.client.Me(ctx, token)
}

// Logout tells the server and then forgets the local session. The local
// session is cleared even when the server rejects an already stale token.
func (a *authService) Logout(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	remoteErr := a.client.Logout(ctx, token)
	if err := a.meta.Clear(ctx); err != nil {
		return err
	}
	if remoteErr != nil && !isUnauthorized(remoteErr) {
		return remoteErr
	}
	return nil
}

func isUnauthorized(err error) bool {
	return errors.Is(err, common.ErrorUnauthorized)
}
