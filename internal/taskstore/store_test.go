package taskstore

import (
	"fmt"
	"testing"
	"time"

	"github.com/mindsender/mindsender/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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

	return gdb
}

func seedTask(t *testing.T, gdb *gorm.DB, ownerID uint, subject string) models.Task {
	t.Helper()

	task, err := Scoped(gdb, ownerID).Create(CreateTaskInput{
		Subject:     subject,
		Description: "details",
		DueDate:     time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	return *task
}

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }

func TestScopedListReturnsOnlyOwnTasks(t *testing.T) {
	gdb := newTestDB(t)
	seedTask(t, gdb, 1, "mine")
	seedTask(t, gdb, 2, "theirs")

	tasks, err := Scoped(gdb, 1).List()

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "mine", tasks[0].Subject)
}

func TestScopedUpdateOwnTask(t *testing.T) {
	gdb := newTestDB(t)
	task := seedTask(t, gdb, 1, "draft")

	updated, err := Scoped(gdb, 1).Update(task.ID, UpdateTaskInput{
		Subject:     strptr("final"),
		IsCompleted: boolptr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, "final", updated.Subject)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, "details", updated.Description)
}

func TestScopedUpdateDoesNotCrossOwners(t *testing.T) {
	gdb := newTestDB(t)
	task := seedTask(t, gdb, 1, "mine")

	_, err := Scoped(gdb, 2).Update(task.ID, UpdateTaskInput{Subject: strptr("hijacked")})

	require.ErrorIs(t, err, ErrNotFound)

	kept, err := Scoped(gdb, 1).get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", kept.Subject)
}

func TestScopedDeleteDoesNotCrossOwners(t *testing.T) {
	gdb := newTestDB(t)
	task := seedTask(t, gdb, 1, "mine")

	err := Scoped(gdb, 2).Delete(task.ID)

	require.ErrorIs(t, err, ErrNotFound)

	tasks, err := Scoped(gdb, 1).List()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestScopedUpdateMissingTask(t *testing.T) {
	gdb := newTestDB(t)

	_, err := Scoped(gdb, 1).Update("no-such-id", UpdateTaskInput{Subject: strptr("x")})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScopedDeleteMissingTask(t *testing.T) {
	gdb := newTestDB(t)

	assert.ErrorIs(t, Scoped(gdb, 1).Delete("no-such-id"), ErrNotFound)
}

func TestAdminMarkRemindedFlipsOnlyOnce(t *testing.T) {
	gdb := newTestDB(t)
	task := seedTask(t, gdb, 1, "mine")

	marked, err := Admin(gdb).MarkReminded(task.ID)
	require.NoError(t, err)
	assert.True(t, marked)

	marked, err = Admin(gdb).MarkReminded(task.ID)
	require.NoError(t, err)
	assert.False(t, marked)
}

func TestAdminDueBetweenSkipsRemindedTasks(t *testing.T) {
	gdb := newTestDB(t)
	first := seedTask(t, gdb, 1, "first")
	seedTask(t, gdb, 2, "second")

	_, err := Admin(gdb).MarkReminded(first.ID)
	require.NoError(t, err)

	due := time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)
	tasks, err := Admin(gdb).DueBetween(due.Add(-time.Hour), due.Add(time.Hour))

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "second", tasks[0].Subject)
}
