package todos

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Repository persists todos. Every read and write is scoped by the owning
// user id; a todo owned by someone else behaves as if it did not exist and
// yields common.ErrorNotFound.
type Repository interface {
	// Create inserts todo at the end of its owner's ordering and sets ID,
	// Position, CreatedAt and UpdatedAt. Tags are not written.
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	GetByID(ctx context.Context, userID, id int64) (*models.Todo, error)
	// ListByCategory orders by position, unplaced todos last.
	ListByCategory(ctx context.Context, userID, categoryID int64, filter models.CompletionFilter) ([]models.Todo, error)
	// Update overwrites the mutable fields of a todo matched by id, owner and
	// category. A nil Position keeps the stored one.
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	SetPosition(ctx context.Context, userID, id int64, position int) error
	ReplaceTags(ctx context.Context, todoID int64, tags []string) error
	Delete(ctx context.Context, userID, id int64) error
}
