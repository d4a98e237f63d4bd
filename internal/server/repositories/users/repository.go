package users

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Repository is the credential store. Lookups by username are exact and
// case-sensitive.
type Repository interface {
	// Create inserts user and sets its ID and CreatedAt. A taken username
	// yields common.ErrDuplicateUsername.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrorNotFound when no user matches.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	// GetUserByID returns common.ErrorNotFound when no user matches.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByLogin(ctx context.Context, login string) (bool, error)
}
