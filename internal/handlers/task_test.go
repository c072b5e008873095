package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindsender/mindsender/db"
	"github.com/mindsender/mindsender/internal/middleware"
	"github.com/mindsender/mindsender/internal/models"
	"github.com/mindsender/mindsender/internal/taskstore"
	"github.com/mindsender/mindsender/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func useTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.FriendRequest{},
		&models.DirectMessage{},
		&models.ToolInvocation{},
	))

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = prev })
}

func authedJSONContext(t *testing.T, w *httptest.ResponseRecorder, userID uint, method, body string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(w)
	c.Set(types.ContextUserKey, middleware.AuthenticatedUser{
		ID:    userID,
		Name:  "Ada",
		Email: "ada@example.com",
		Role:  models.RoleOrdinary,
		Plan:  models.PlanFree,
	})

	c.Request = httptest.NewRequest(method, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	return c
}

func mustCreateTask(t *testing.T, ownerID uint, subject string) models.Task {
	t.Helper()

	task, err := taskstore.Scoped(db.DB, ownerID).Create(taskstore.CreateTaskInput{
		Subject:     subject,
		Description: "details",
		DueDate:     time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	return *task
}

func TestUpdateTaskRejectsForeignTask(t *testing.T) {
	useTestDB(t)
	task := mustCreateTask(t, 1, "mine")

	w := httptest.NewRecorder()
	c := authedJSONContext(t, w, 2, http.MethodPatch, `{"subject":"hijacked"}`)
	c.Params = gin.Params{{Key: "task_id", Value: task.ID}}

	UpdateTask(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	kept, err := taskstore.Scoped(db.DB, 1).List()
	require.NoError(t, err)
	require.Len(t, kept, 1)
	assert.Equal(t, "mine", kept[0].Subject)
}

func TestDeleteTaskRejectsForeignTask(t *testing.T) {
	useTestDB(t)
	task := mustCreateTask(t, 1, "mine")

	w := httptest.NewRecorder()
	c := authedJSONContext(t, w, 2, http.MethodDelete, "")
	c.Params = gin.Params{{Key: "task_id", Value: task.ID}}

	DeleteTask(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	kept, err := taskstore.Scoped(db.DB, 1).List()
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestUpdateTaskOwnTask(t *testing.T) {
	useTestDB(t)
	task := mustCreateTask(t, 1, "draft")

	w := httptest.NewRecorder()
	c := authedJSONContext(t, w, 1, http.MethodPatch, `{"subject":"final","is_completed":true}`)
	c.Params = gin.Params{{Key: "task_id", Value: task.ID}}

	UpdateTask(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subject":"final"`)
	assert.Contains(t, w.Body.String(), `"is_completed":true`)
}
