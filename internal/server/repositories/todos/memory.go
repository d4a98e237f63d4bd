package todos

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// MemoryRepository keeps todos in process memory with the same ownership
// and ordering rules as the Postgres repository.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]models.Todo
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]models.Todo), now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, todo *models.Todo) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	max := 0
	for _, t := range r.items {
		if t.UserID == todo.UserID && t.Position != nil && *t.Position > max {
			max = *t.Position
		}
	}
	pos := max + 1

	r.nextID++
	now := r.now().UTC()
	todo.ID = r.nextID
	todo.Position = &pos
	todo.CreatedAt = now
	todo.UpdatedAt = now

	stored := *todo
	stored.Tags = []string{}
	r.items[todo.ID] = stored
	return todo, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, userID, id int64) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	out := clone(t)
	return &out, nil
}

func (r *MemoryRepository) ListByCategory(_ context.Context, userID, categoryID int64, filter models.CompletionFilter) ([]models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Todo, 0)
	for _, t := range r.items {
		if t.UserID != userID || t.CategoryID != categoryID {
			continue
		}
		if filter == models.CompletedTodos && !t.Completed {
			continue
		}
		if filter == models.IncompleteTodos && t.Completed {
			continue
		}
		out = append(out, clone(t))
	}

	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].Position, out[j].Position
		switch {
		case pi == nil && pj == nil:
			return out[i].ID < out[j].ID
		case pi == nil:
			return false
		case pj == nil:
			return true
		case *pi != *pj:
			return *pi < *pj
		default:
			return out[i].ID < out[j].ID
		}
	})
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, todo *models.Todo) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[todo.ID]
	if !ok || cur.UserID != todo.UserID || cur.CategoryID != todo.CategoryID {
		return nil, common.ErrorNotFound
	}
	if todo.Position == nil {
		todo.Position = cur.Position
	}
	todo.CreatedAt = cur.CreatedAt
	todo.UpdatedAt = r.now().UTC()

	stored := *todo
	stored.Tags = cur.Tags
	r.items[todo.ID] = stored
	return todo, nil
}

func (r *MemoryRepository) SetPosition(_ context.Context, userID, id int64, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	t.Position = &position
	t.UpdatedAt = r.now().UTC()
	r.items[id] = t
	return nil
}

func (r *MemoryRepository) ReplaceTags(_ context.Context, todoID int64, tags []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[todoID]
	if !ok {
		return common.ErrorNotFound
	}
	seen := make(map[string]bool, len(tags))
	t.Tags = make([]string, 0, len(tags))
	for _, tag := range tags {
		if !seen[tag] {
			seen[tag] = true
			t.Tags = append(t.Tags, tag)
		}
	}
	sort.Strings(t.Tags)
	r.items[todoID] = t
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func clone(t models.Todo) models.Todo {
	t.Tags = append([]string{}, t.Tags...)
	if t.Position != nil {
		p := *t.Position
		t.Position = &p
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
