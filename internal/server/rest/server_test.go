package rest

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/metrics"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/categories"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type memoryManager struct {
	u *users.MemoryRepository
	c *categories.MemoryRepository
	t *todos.MemoryRepository
}

func (m *memoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memoryManager) Users(dbx.DBTX) users.Repository              { return m.u }
func (m *memoryManager) Categories(dbx.DBTX) categories.Repository    { return m.c }
func (m *memoryManager) Todos(dbx.DBTX) todos.Repository              { return m.t }

type harness struct {
	srv     *Server
	codec   *auth.Codec
	users   *users.MemoryRepository
	mock    sqlmock.Sqlmock
	metrics *metrics.Auth
	reg     *prometheus.Registry
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	rm := &memoryManager{
		u: users.NewMemoryRepository(),
		c: categories.NewMemoryRepository(),
		t: todos.NewMemoryRepository(),
	}
	codec := auth.NewCodecFromKey(testKey)
	reg := prometheus.NewRegistry()
	m := metrics.NewAuth(reg)

	srv := NewServer(Options{
		Address:     "127.0.0.1:0",
		Logger:      logging.Nop{},
		Resolver:    auth.NewResolver(codec, services.NewIdentityService(db, rm), auth.Public),
		Users:       services.NewUserService(db, rm, codec, bcrypt.MinCost, m),
		Todos:       services.NewTodoService(db, rm),
		Metrics:     m,
		CORSOrigins: []string{"http://localhost:3000", "http://127.0.0.1:*"},
	})

	return &harness{srv: srv, codec: codec, users: rm.u, mock: mock, metrics: m, reg: reg}
}

func (h *harness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	rr := httptest.NewRecorder()
	h.srv.Handler().ServeHTTP(rr, req)
	return rr
}

// expectTx queues n begin/commit pairs for the todo service.
func (h *harness) expectTx(n int) {
	for i := 0; i < n; i++ {
		h.mock.ExpectBegin()
		h.mock.ExpectCommit()
	}
}

func (h *harness) registerAndLogin(t *testing.T, name, password string) string {
	t.Helper()

	rr := h.do(t, http.MethodPost, "/users/register", "", map[string]string{"username": name, "password": password})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = h.do(t, http.MethodPost, "/users/login", "", map[string]string{"username": name, "password": password})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return "Bearer " + resp.Token
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}
