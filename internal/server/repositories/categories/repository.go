package categories

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Repository reads the fixed category catalogue.
type Repository interface {
	List(ctx context.Context) ([]models.Category, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
