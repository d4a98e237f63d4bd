package categories

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Defaults mirrors the rows seeded by the migrations.
var Defaults = []models.Category{
	{ID: 1, Name: "work"},
	{ID: 2, Name: "personal"},
	{ID: 3, Name: "travel"},
}

// MemoryRepository serves a fixed catalogue.
type MemoryRepository struct {
	list []models.Category
}

func NewMemoryRepository(list ...models.Category) *MemoryRepository {
	if len(list) == 0 {
		list = Defaults
	}
	return &MemoryRepository{list: append([]models.Category(nil), list...)}
}

func (r *MemoryRepository) List(context.Context) ([]models.Category, error) {
	return append([]models.Category{}, r.list...), nil
}

func (r *MemoryRepository) Exists(_ context.Context, id int64) (bool, error) {
	for _, c := range r.list {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}
