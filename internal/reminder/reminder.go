// Package reminder implements the batch job that emails users about tasks
// becoming due soon. Each run is independent: it scans one upcoming window,
// sends at most one email per qualifying task and flips the task's
// reminder_sent flag so later runs skip it.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/mindsender/mindsender/internal/models"
	"github.com/rs/zerolog"
)

// Store is the slice of the task store the job needs. The gorm-backed
// AdminStore satisfies it; tests use fakes.
type Store interface {
	DueBetween(start, end time.Time) ([]models.Task, error)
	ProfilesByID(ids []uint) (map[uint]models.User, error)
	MarkReminded(taskID string) (bool, error)
}

type Mailer interface {
	SendReminder(to, displayName string, task models.Task) error
}

type Config struct {
	// WindowLead and WindowSpan define the window [now+Lead, now+Lead+Span]
	// scanned by one invocation. They are validated against the scheduler
	// cadence in config.ReminderConfig.
	WindowLead time.Duration
	WindowSpan time.Duration
	// SendDelay is the pause before each send, throttling outbound volume.
	SendDelay time.Duration
}

type Job struct {
	Store  Store
	Mailer Mailer
	Config Config
	Log    zerolog.Logger

	// Sleep is swappable for tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// Run executes one reminder cycle at the given instant. A store failure
// before the delivery loop aborts the cycle; per-task delivery failures are
// logged and skipped, leaving those tasks eligible for the next cycle.
func (j *Job) Run(ctx context.Context, now time.Time) error {
	windowStart := now.Add(j.Config.WindowLead)
	windowEnd := windowStart.Add(j.Config.WindowSpan)

	j.Log.Info().
		Time("window_start", windowStart).
		Time("window_end", windowEnd).
		Msg("checking for reminders")

	tasks, err := j.Store.DueBetween(windowStart, windowEnd)

	if err != nil {
		return fmt.Errorf("failed to fetch candidate tasks: %w", err)
	}

	if len(tasks) == 0 {
		j.Log.Info().Msg("no reminders to send")
		return nil
	}

	j.Log.Info().Int("count", len(tasks)).Msg("found tasks to remind")

	profiles, err := j.Store.ProfilesByID(distinctOwners(tasks))

	if err != nil {
		return fmt.Errorf("failed to fetch owner profiles: %w", err)
	}

	var sent, skipped, failed int

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}

		profile, ok := profiles[task.UserID]

		if !ok || profile.Email == "" {
			j.Log.Warn().
				Str("task_id", task.ID).
				Uint("user_id", task.UserID).
				Msg("skipping task: owner has no email")
			skipped++
			continue
		}

		j.sleep(j.Config.SendDelay)

		if err := j.Mailer.SendReminder(profile.Email, profile.Name, task); err != nil {
			j.Log.Error().
				Err(err).
				Str("task_id", task.ID).
				Str("email", profile.Email).
				Msg("failed to send reminder")
			failed++
			continue
		}

		j.Log.Info().
			Str("task_id", task.ID).
			Str("email", profile.Email).
			Msg("reminder sent")

		marked, err := j.Store.MarkReminded(task.ID)

		if err != nil {
			// The email went out but the flag stayed false, so the next
			// cycle may remind again. Logged for the operator; not retried.
			j.Log.Error().
				Err(err).
				Str("task_id", task.ID).
				Msg("failed to mark task as reminded; a duplicate reminder is possible")
		} else if !marked {
			j.Log.Warn().
				Str("task_id", task.ID).
				Msg("task was already marked as reminded by a concurrent run")
		}

		sent++
	}

	j.Log.Info().
		Int("sent", sent).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("reminder cycle complete")

	return nil
}

func (j *Job) sleep(d time.Duration) {
	if d <= 0 {
		return
	}

	if j.Sleep != nil {
		j.Sleep(d)
		return
	}

	time.Sleep(d)
}

func distinctOwners(tasks []models.Task) []uint {
	seen := make(map[uint]bool, len(tasks))
	owners := make([]uint, 0, len(tasks))

	for _, task := range tasks {
		if !seen[task.UserID] {
			seen[task.UserID] = true
			owners = append(owners, task.UserID)
		}
	}

	return owners
}
