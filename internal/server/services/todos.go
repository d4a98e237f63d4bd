package services

import (
	"context"
	"database/sql"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
)

// TodoService is the to-do collaborator. Every call takes the owner id from
// the resolved identity; ids in request bodies never decide ownership.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTodoService(db *sql.DB, rm repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: rm}
}

func (s *TodoService) Categories(ctx context.Context) ([]models.Category, error) {
	list, err := s.repomanager.Categories(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return list, nil
}

// Create appends a todo to the user's ordering inside categoryID.
func (s *TodoService) Create(ctx context.Context, userID, categoryID int64, todo *models.Todo) (*models.Todo, error) {
	if err := normalize(todo); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	todo.ID = 0
	todo.UserID = userID
	todo.CategoryID = categoryID

	var created *models.Todo
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Todos(tx)

		var err error
		created, err = repo.Create(ctx, todo)
		if err != nil {
			return fmt.Errorf("error creating todo: %w", err)
		}
		if err := repo.ReplaceTags(ctx, created.ID, created.Tags); err != nil {
			return fmt.Errorf("error saving tags: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns the user's todos in categoryID ordered by position.
func (s *TodoService) List(ctx context.Context, userID, categoryID int64, filter models.CompletionFilter) ([]models.Todo, error) {
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Todos(s.db).ListByCategory(ctx, userID, categoryID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}
	return list, nil
}

// Update overwrites a todo the user owns in categoryID. Unknown or foreign
// ids yield common.ErrorNotFound.
func (s *TodoService) Update(ctx context.Context, userID, categoryID int64, todo *models.Todo) (*models.Todo, error) {
	if todo.ID <= 0 {
		return nil, fmt.Errorf("%w: id is required", common.ErrValidation)
	}
	if err := normalize(todo); err != nil {
		return nil, err
	}
	todo.UserID = userID
	todo.CategoryID = categoryID

	var updated *models.Todo
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Todos(tx)

		var err error
		updated, err = repo.Update(ctx, todo)
		if err != nil {
			return err
		}
		return repo.ReplaceTags(ctx, updated.ID, updated.Tags)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Reorder assigns positions 1..n following ids. It is all or nothing: one id
// the user does not own rolls the whole batch back with common.ErrorNotFound.
func (s *TodoService) Reorder(ctx context.Context, userID int64, ids []int64) ([]models.Todo, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ids are required", common.ErrValidation)
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", common.ErrValidation, id)
		}
		seen[id] = struct{}{}
	}

	result := make([]models.Todo, 0, len(ids))
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Todos(tx)
		for i, id := range ids {
			if err := repo.SetPosition(ctx, userID, id, i+1); err != nil {
				return err
			}
		}
		for _, id := range ids {
			t, err := repo.GetByID(ctx, userID, id)
			if err != nil {
				return err
			}
			result = append(result, *t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id int64) error {
	return s.repomanager.Todos(s.db).Delete(ctx, userID, id)
}

func (s *TodoService) checkCategory(ctx context.Context, categoryID int64) error {
	ok, err := s.repomanager.Categories(s.db).Exists(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("error checking category: %w", err)
	}
	if !ok {
		return fmt.Errorf("category %d: %w", categoryID, common.ErrorNotFound)
	}
	return nil
}

// normalize applies defaults and bounds shared by create and update.
func normalize(todo *models.Todo) error {
	if todo.Title == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if todo.Priority == 0 {
		todo.Priority = models.MinPriority
	}
	if todo.Priority < models.MinPriority || todo.Priority > models.MaxPriority {
		return fmt.Errorf("%w: priority must be between %d and %d", common.ErrValidation, models.MinPriority, models.MaxPriority)
	}
	if todo.Tags == nil {
		todo.Tags = []string{}
	}
	for _, tag := range todo.Tags {
		if tag == "" || utf8.RuneCountInString(tag) > models.MaxTagLength {
			return fmt.Errorf("%w: tags must be 1 to %d characters", common.ErrValidation, models.MaxTagLength)
		}
	}
	return nil
}
