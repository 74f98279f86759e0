package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quantamisecode-hub/groona-sub009/db"
	"github.com/quantamisecode-hub/groona-sub009/internal/middleware"
	"github.com/quantamisecode-hub/groona-sub009/internal/models"
	"github.com/quantamisecode-hub/groona-sub009/internal/notifier"
	"github.com/quantamisecode-hub/groona-sub009/internal/store"
	"github.com/quantamisecode-hub/groona-sub009/internal/types"
)

// setupTestDB points the global connection at a fresh in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectUserRole{},
		&models.Task{},
		&models.TaskAssignee{},
		&models.Ticket{},
		&models.Notification{},
		&models.NotificationPreference{},
		&models.EmailNotificationLog{},
	)
	require.NoError(t, err)

	previous := db.DB
	db.DB = testDB
	t.Cleanup(func() { db.DB = previous })

	return testDB
}

type nopMailer struct{}

func (nopMailer) Send(notifier.Mail) error { return nil }

// setupTestEngine wires a real dispatch engine over the test database.
func setupTestEngine(t *testing.T, testDB *gorm.DB) {
	t.Helper()

	gormStore := store.NewGorm(testDB)
	previous := engine
	InitNotifier(notifier.New(gormStore, gormStore, nopMailer{}, notifier.Config{
		BaseURL:  "https://app.example.com",
		FromName: "Groona",
	}))
	t.Cleanup(func() { engine = previous })
}

// authenticatedRequest runs a handler behind a stub middleware that installs
// the given user, the way AuthMiddleware would.
func authenticatedRequest(t *testing.T, user middleware.AuthenticatedUser, method, path string, body interface{}, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	r.Handle(method, path, func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, user)
	}, handler)

	return performRequest(t, r, method, path, body)
}

func performRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
