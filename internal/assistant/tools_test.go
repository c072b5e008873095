package assistant

import (
	"testing"
	"time"

	"github.com/mindsender/mindsender/internal/ai"
	"github.com/mindsender/mindsender/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	t.Run("rfc3339", func(t *testing.T) {
		got, err := parseDueDate("2025-03-11T12:00:00Z")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC), got)
	})

	t.Run("zoneless iso uses local time", func(t *testing.T) {
		got, err := parseDueDate("2025-03-11T12:00:00")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 11, 12, 0, 0, 0, time.Local), got)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parseDueDate("next tuesday")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid due date")
	})
}

func TestDispatchUnknownTool(t *testing.T) {
	result := dispatch(&fakeTaskStore{}, ai.ToolCall{Name: "drop_tables", Arguments: "{}"})

	assert.Equal(t, "Error executing drop_tables: unknown tool: drop_tables", result)
}

func TestDispatchInvalidArguments(t *testing.T) {
	result := dispatch(&fakeTaskStore{}, ai.ToolCall{Name: "create_task", Arguments: "not json"})

	assert.Contains(t, result, "Error executing create_task")
	assert.Contains(t, result, "invalid arguments")
}

func TestDispatchListTasksReturnsJSON(t *testing.T) {
	store := &fakeTaskStore{tasks: []models.Task{
		{ID: "t1", Subject: "Water plants"},
		{ID: "t2", Subject: "Call dentist", IsCompleted: true},
	}}

	result := dispatch(store, ai.ToolCall{Name: "list_tasks", Arguments: "{}"})

	assert.Contains(t, result, `"Water plants"`)
	assert.Contains(t, result, `"Call dentist"`)
	assert.Contains(t, result, `"t1"`)
}

func TestDispatchUpdateRejectsBadDueDate(t *testing.T) {
	store := &fakeTaskStore{}

	result := dispatch(store, ai.ToolCall{
		Name:      "update_task",
		Arguments: `{"id":"t1","due_date":"whenever"}`,
	})

	assert.Contains(t, result, "Error executing update_task")
	assert.Empty(t, store.updated)
}

func TestToolDefsCoverTaskSurface(t *testing.T) {
	defs := toolDefs()

	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}

	assert.ElementsMatch(t, []string{"create_task", "list_tasks", "update_task", "delete_task"}, names)
}
