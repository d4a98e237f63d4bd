package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
)

// IdentityService maps the user id carried by a verified token back to the
// stored user. It reads by primary key only.
type IdentityService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

func NewIdentityService(db dbx.DBTX, rm repomanager.RepositoryManager) *IdentityService {
	return &IdentityService{db: db, repomanager: rm}
}

// Resolve implements auth.IdentityLookup.
func (s *IdentityService) Resolve(ctx context.Context, userID int64) (models.Identity, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Identity{}, fmt.Errorf("user %d: %w", userID, common.ErrIdentityNotFound)
		}
		return models.Identity{}, fmt.Errorf("error resolving identity: %w", err)
	}
	return auth.IdentityFromUser(user), nil
}
