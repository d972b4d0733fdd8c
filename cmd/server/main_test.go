package main

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"thrift-store-be/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock Driver for Testing ---
type mockDriver struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error)         { return &mockConn{}, nil }
func (c *mockConn) Prepare(query string) (driver.Stmt, error)       { return &mockStmt{}, nil }
func (c *mockConn) Close() error                                    { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                       { return nil, nil }
func (s *mockStmt) Close() error                                    { return nil }
func (s *mockStmt) NumInput() int                                   { return 0 }
func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) { return nil, nil }
func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error)  { return nil, nil }

type mockConn struct{}
type mockStmt struct{}

func init() {
	sql.Register("mock_driver_main", &mockDriver{})
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppPort:        "8080",
		AppEnv:         "test",
		JWTSecret:      "server-test-secret",
		UploadDir:      t.TempDir(),
		CORSOrigins:    []string{"http://localhost:3000"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
}

func TestNewServer(t *testing.T) {
	db, err := sql.Open("mock_driver_main", "")
	require.NoError(t, err)

	srv, err := newServer(testConfig(t), db)
	require.NoError(t, err)
	defer srv.Close()

	t.Run("Health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		srv.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "API is running", body["message"])
	})

	t.Run("ProtectedRequiresToken", func(t *testing.T) {
		rr := httptest.NewRecorder()
		srv.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("MissingUpload", func(t *testing.T) {
		rr := httptest.NewRecorder()
		srv.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/items/missing.png", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("SecurityHeaders", func(t *testing.T) {
		rr := httptest.NewRecorder()
		srv.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	})
}

func TestNewServer_EmptySecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWTSecret = ""

	_, err := newServer(cfg, nil)
	assert.Error(t, err)
}

func TestNewLocker_WithoutRedis(t *testing.T) {
	locker, client := newLocker(testConfig(t))
	assert.NotNil(t, locker)
	assert.Nil(t, client)
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}

	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	var gotAddr string
	startServerFunc = func(addr string, handler http.Handler) error {
		gotAddr = addr
		assert.NotNil(t, handler)
		return nil
	}

	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "db")
	t.Setenv("JWT_SECRET", "run-secret")
	t.Setenv("UPLOAD_DIR", t.TempDir())
	t.Setenv("REDIS_ADDR", "")

	assert.NoError(t, run())
	assert.Equal(t, ":8080", gotAddr)
}

func TestRun_MissingSecret(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("JWT_SECRET", "")

	assert.Error(t, run())
}
