package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/categories"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

type fakeRepoManager struct {
	u users.Repository
	c categories.Repository
	t todos.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Categories(db dbx.DBTX) categories.Repository { return m.c }
func (m *fakeRepoManager) Todos(db dbx.DBTX) todos.Repository           { return m.t }

// failingUsersRepo fails every call with err.
type failingUsersRepo struct{ err error }

func (f failingUsersRepo) Create(context.Context, *models.User) (*models.User, error) {
	return nil, f.err
}
func (f failingUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, f.err
}
func (f failingUsersRepo) GetUserByID(context.Context, int64) (*models.User, error) {
	return nil, f.err
}
func (f failingUsersRepo) ExistsByLogin(context.Context, string) (bool, error) { return false, f.err }

// racingUsersRepo reports a free username and then loses the insert race.
type racingUsersRepo struct{ failingUsersRepo }

func (racingUsersRepo) ExistsByLogin(context.Context, string) (bool, error) { return false, nil }
func (racingUsersRepo) Create(context.Context, *models.User) (*models.User, error) {
	return nil, common.ErrDuplicateUsername
}

type failingCategories struct{ err error }

func (f failingCategories) List(context.Context) ([]models.Category, error) { return nil, f.err }
func (f failingCategories) Exists(context.Context, int64) (bool, error)      { return false, f.err }

// tagFailingTodos fails every tag write.
type tagFailingTodos struct {
	*todos.MemoryRepository
	err error
}

func (f tagFailingTodos) ReplaceTags(context.Context, int64, []string) error { return f.err }
