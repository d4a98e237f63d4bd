package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectTodo = `SELECT t.id, t.title, t.completed, t.due_date, t.priority, t.position,
		 t.created_at, t.updated_at, t.user_id, t.category_id, tt.tag
		 FROM todos t
		 LEFT JOIN todo_tags tt ON tt.todo_id = t.id
		 `

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query :=
		`INSERT INTO todos (title, completed, due_date, priority, position, user_id, category_id)
		 VALUES ($1, $2, $3, $4, (SELECT COALESCE(MAX(position), 0) + 1 FROM todos WHERE user_id = $5), $5, $6)
		 RETURNING id, position, created_at, updated_at
		 `

	var pos int
	err := r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Completed, nullTime(todo.DueDate), todo.Priority, todo.UserID, todo.CategoryID).
		Scan(&todo.ID, &pos, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	todo.Position = &pos
	return todo, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id int64) (*models.Todo, error) {
	query := selectTodo +
		`WHERE t.id = $1 AND t.user_id = $2
		 ORDER BY tt.tag`

	rows, err := r.db.QueryContext(ctx, query, id, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	list, err := scanTodos(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, common.ErrorNotFound
	}
	return &list[0], nil
}

func (r *PostgresRepository) ListByCategory(ctx context.Context, userID, categoryID int64, filter models.CompletionFilter) ([]models.Todo, error) {
	query := selectTodo + `WHERE t.user_id = $1 AND t.category_id = $2`
	args := []any{userID, categoryID}

	switch filter {
	case models.IncompleteTodos:
		query += ` AND t.completed = $3`
		args = append(args, false)
	case models.CompletedTodos:
		query += ` AND t.completed = $3`
		args = append(args, true)
	}
	query += ` ORDER BY t.position NULLS LAST, t.id, tt.tag`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return scanTodos(rows)
}

func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query :=
		`UPDATE todos
		 SET title = $1, completed = $2, due_date = $3, priority = $4,
		     position = COALESCE($5, position), updated_at = NOW()
		 WHERE id = $6 AND user_id = $7 AND category_id = $8
		 RETURNING position, created_at, updated_at
		 `

	var pos sql.NullInt64
	err := r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Completed, nullTime(todo.DueDate), todo.Priority, nullInt(todo.Position),
		todo.ID, todo.UserID, todo.CategoryID).
		Scan(&pos, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	todo.Position = intPtr(pos)
	return todo, nil
}

func (r *PostgresRepository) SetPosition(ctx context.Context, userID, id int64, position int) error {
	query :=
		`UPDATE todos SET position = $1, updated_at = NOW()
		 WHERE id = $2 AND user_id = $3
		 `

	res, err := r.db.ExecContext(ctx, query, position, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) ReplaceTags(ctx context.Context, todoID int64, tags []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM todo_tags WHERE todo_id = $1`, todoID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	for _, tag := range tags {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO todo_tags (todo_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`, todoID, tag)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// scanTodos folds the one-row-per-tag join back into todos, keeping row order.
func scanTodos(rows *sql.Rows) ([]models.Todo, error) {
	result := make([]models.Todo, 0)
	index := make(map[int64]int)

	for rows.Next() {
		var (
			t   models.Todo
			due sql.NullTime
			pos sql.NullInt64
			tag sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &due, &t.Priority, &pos,
			&t.CreatedAt, &t.UpdatedAt, &t.UserID, &t.CategoryID, &tag); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		i, seen := index[t.ID]
		if !seen {
			if due.Valid {
				d := due.Time
				t.DueDate = &d
			}
			t.Position = intPtr(pos)
			t.Tags = []string{}
			result = append(result, t)
			i = len(result) - 1
			index[t.ID] = i
		}
		if tag.Valid {
			result[i].Tags = append(result[i].Tags, tag.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
