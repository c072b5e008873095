package assistant

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mindsender/mindsender/internal/ai"
	"github.com/mindsender/mindsender/internal/taskstore"
)

const (
	toolCreateTask = "create_task"
	toolListTasks  = "list_tasks"
	toolUpdateTask = "update_task"
	toolDeleteTask = "delete_task"
)

// toolDefs is the complete tool surface exposed to the model: the same four
// operations the UI issues against the task store, nothing more.
func toolDefs() []ai.ToolDef {
	return []ai.ToolDef{
		{
			Name:        toolCreateTask,
			Description: "Create a new task in the user's agenda.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"subject":     map[string]interface{}{"type": "string", "description": "Short title of the task"},
					"description": map[string]interface{}{"type": "string", "description": "Details of what needs to be done"},
					"due_date":    map[string]interface{}{"type": "string", "description": "Due date and time in ISO format (YYYY-MM-DDTHH:mm:ss)"},
				},
				"required": []string{"subject", "description", "due_date"},
			},
		},
		{
			Name:        toolListTasks,
			Description: "Get the user's current task list.",
			Parameters: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        toolUpdateTask,
			Description: "Update an existing task.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id":           map[string]interface{}{"type": "string", "description": "ID of the task to update"},
					"subject":      map[string]interface{}{"type": "string"},
					"description":  map[string]interface{}{"type": "string"},
					"due_date":     map[string]interface{}{"type": "string", "description": "ISO format"},
					"is_completed": map[string]interface{}{"type": "boolean"},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        toolDeleteTask,
			Description: "Delete a task from the agenda.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{"type": "string", "description": "ID of the task to delete"},
				},
				"required": []string{"id"},
			},
		},
	}
}

// dispatch runs one tool call against the caller's scoped store. Errors are
// folded into the returned string so the model can relay them; they never
// abort the chat turn.
func dispatch(store TaskStore, call ai.ToolCall) string {
	result, err := runTool(store, call)

	if err != nil {
		return fmt.Sprintf("Error executing %s: %v", call.Name, err)
	}

	return result
}

func runTool(store TaskStore, call ai.ToolCall) (string, error) {
	switch call.Name {
	case toolCreateTask:
		var args struct {
			Subject     string `json:"subject"`
			Description string `json:"description"`
			DueDate     string `json:"due_date"`
		}

		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}

		dueDate, err := parseDueDate(args.DueDate)

		if err != nil {
			return "", err
		}

		task, err := store.Create(taskstore.CreateTaskInput{
			Subject:     args.Subject,
			Description: args.Description,
			DueDate:     dueDate,
		})

		if err != nil {
			return "", err
		}

		return fmt.Sprintf("Task %q created, due %s.", task.Subject, task.DueDate.Format("2006-01-02 15:04")), nil

	case toolListTasks:
		tasks, err := store.List()

		if err != nil {
			return "", err
		}

		encoded, err := json.Marshal(tasks)

		if err != nil {
			return "", err
		}

		return string(encoded), nil

	case toolUpdateTask:
		var args struct {
			ID          string  `json:"id"`
			Subject     *string `json:"subject"`
			Description *string `json:"description"`
			DueDate     *string `json:"due_date"`
			IsCompleted *bool   `json:"is_completed"`
		}

		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}

		input := taskstore.UpdateTaskInput{
			Subject:     args.Subject,
			Description: args.Description,
			IsCompleted: args.IsCompleted,
		}

		if args.DueDate != nil {
			dueDate, err := parseDueDate(*args.DueDate)

			if err != nil {
				return "", err
			}

			input.DueDate = &dueDate
		}

		if _, err := store.Update(args.ID, input); err != nil {
			return "", err
		}

		return "Task updated.", nil

	case toolDeleteTask:
		var args struct {
			ID string `json:"id"`
		}

		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}

		if err := store.Delete(args.ID); err != nil {
			return "", err
		}

		return "Task deleted.", nil

	default:
		return "", fmt.Errorf("unknown tool: %s", call.Name)
	}
}

// parseDueDate accepts RFC 3339 or the zone-less ISO form the model tends
// to produce; the latter is interpreted in server-local time.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid due date %q, expected ISO format", value)
}
