// Package services contains server-side business logic. This file implements
// UserService, which registers users and logs them in with a bcrypt password
// check followed by an access token mint.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/metrics"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// TokenMinter issues an access token for a user id.
type TokenMinter interface {
	Mint(userID int64) (string, error)
}

// UserService is the authenticator. It keeps no session state; login only
// reads the credential store and register performs a single insert.
type UserService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	tokens      TokenMinter
	cost        int
	metrics     *metrics.Auth

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService wires the authenticator. m may be nil.
func NewUserService(db dbx.DBTX, rm repomanager.RepositoryManager, tokens TokenMinter, bcryptCost int, m *metrics.Auth) *UserService {
	return &UserService{
		db:          db,
		repomanager: rm,
		tokens:      tokens,
		cost:        bcryptCost,
		metrics:     m,
	}
}

// Register stores a new user with a freshly salted hash of password.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.register(ctx, username, password)
	switch {
	case err == nil:
		s.metrics.ObserveRegistration(metrics.ResultSuccess)
	case errors.Is(err, common.ErrDuplicateUsername):
		s.metrics.ObserveRegistration(metrics.ResultDuplicate)
	case errors.Is(err, common.ErrValidation):
		s.metrics.ObserveRegistration(metrics.ResultInvalid)
	default:
		s.metrics.ObserveRegistration(metrics.ResultError)
	}
	return user, err
}

func (s *UserService) register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	repo := s.repomanager.Users(s.db)

	exists, err := repo.ExistsByLogin(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return nil, common.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password is too long", common.ErrValidation)
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// The unique index still rejects a concurrent insert of the same name.
	user, err := repo.Create(ctx, &models.User{UserName: username, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login checks the password and returns a fresh access token. A missing user
// and a wrong password both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	token, err := s.login(ctx, username, password)
	switch {
	case err == nil:
		s.metrics.ObserveLogin(metrics.ResultSuccess)
	case errors.Is(err, common.ErrInvalidCredentials):
		s.metrics.ObserveLogin(metrics.ResultInvalidCredentials)
	default:
		s.metrics.ObserveLogin(metrics.ResultError)
	}
	return token, err
}

func (s *UserService) login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", common.ErrInvalidCredentials
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Same bcrypt work as a real check.
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(user.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}

func (s *UserService) dummy() []byte {
	s.dummyOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword(common.GenerateRandByteArray(16), s.cost)
		if err != nil {
			h = []byte{}
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
