// Package assistant turns natural-language chat into task operations. One
// turn is at most: completion with tools, dispatch of any requested tool
// calls, second completion with the results.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/mindsender/mindsender/internal/ai"
	"github.com/mindsender/mindsender/internal/models"
	"github.com/mindsender/mindsender/internal/taskstore"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TaskStore is the slice of taskstore.ScopedStore the tools need.
type TaskStore interface {
	Create(in taskstore.CreateTaskInput) (*models.Task, error)
	List() ([]models.Task, error)
	Update(id string, in taskstore.UpdateTaskInput) (*models.Task, error)
	Delete(id string) error
}

type Assistant struct {
	provider ai.Provider
	db       *gorm.DB // tool-call audit; nil disables auditing
	now      func() time.Time
}

func New(provider ai.Provider, db *gorm.DB) *Assistant {
	return &Assistant{
		provider: provider,
		db:       db,
		now:      time.Now,
	}
}

// Chat runs one conversation turn for the given user. The history must end
// with the user's latest message. No transactional guarantee spans the tool
// calls within a turn.
func (a *Assistant) Chat(ctx context.Context, store TaskStore, userID uint, history []ai.Message) (string, error) {
	system := fmt.Sprintf("%s\nCurrent date and time: %s.", systemPrompt, a.now().Format("Monday, 2 January 2006 15:04"))

	first, err := a.provider.Complete(ctx, ai.Request{
		System:   system,
		Messages: history,
		Tools:    toolDefs(),
	})

	if err != nil {
		return "", err
	}

	if len(first.ToolCalls) == 0 {
		if first.Content == "" {
			return "I could not generate a response.", nil
		}
		return first.Content, nil
	}

	messages := append(history, ai.Message{
		Role:      "assistant",
		Content:   first.Content,
		ToolCalls: first.ToolCalls,
	})

	for _, call := range first.ToolCalls {
		result := dispatch(store, call)

		a.audit(userID, call, result)

		messages = append(messages, ai.Message{
			Role:       "tool",
			Content:    result,
			ToolCallID: call.ID,
		})
	}

	second, err := a.provider.Complete(ctx, ai.Request{
		System:   system,
		Messages: messages,
	})

	if err != nil {
		return "", err
	}

	if second.Content == "" {
		return "I've processed your request.", nil
	}

	return second.Content, nil
}

func (a *Assistant) audit(userID uint, call ai.ToolCall, result string) {
	if a.db == nil {
		return
	}

	arguments := call.Arguments
	if arguments == "" {
		arguments = "{}"
	}

	row := models.ToolInvocation{
		UserID:    userID,
		Tool:      call.Name,
		Arguments: datatypes.JSON([]byte(arguments)),
		Result:    result,
	}

	if err := a.db.Create(&row).Error; err != nil {
		log.Error().Err(err).Str("tool", call.Name).Msg("failed to record tool invocation")
	}
}
