package models

import "time"

const (
	MinPriority = 1
	MaxPriority = 3

	// MaxTagLength matches todo_tags.tag VARCHAR(100), in characters.
	MaxTagLength = 100
)

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Todo belongs to exactly one user and one category. Position orders a user's
// todos; nil until the item has been placed.
type Todo struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Completed  bool       `json:"completed"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Priority   int        `json:"priority"`
	Position   *int       `json:"position,omitempty"`
	Tags       []string   `json:"tags"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	UserID     int64      `json:"user_id"`
	CategoryID int64      `json:"category_id"`
}

// CompletionFilter narrows category listings by completion state.
type CompletionFilter int

const (
	AllTodos CompletionFilter = iota
	IncompleteTodos
	CompletedTodos
)
