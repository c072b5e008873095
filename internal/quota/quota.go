// Package quota enforces the per-plan daily cap on assistant messages.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mindsender/mindsender/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	freeDailyLimit = 20
	proDailyLimit  = 200
	// Elite is uncapped.
	Unlimited = -1
)

type Limiter struct {
	rdb *redis.Client
	now func() time.Time
}

func NewLimiter(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb, now: time.Now}
}

func DailyLimit(plan string) int {
	switch plan {
	case models.PlanPro:
		return proDailyLimit
	case models.PlanElite:
		return Unlimited
	default:
		return freeDailyLimit
	}
}

// Allow counts one assistant message for the user and reports whether they
// are still under their plan's daily cap. Redis being unreachable fails
// open: the assistant keeps answering, the miss is logged.
func (l *Limiter) Allow(ctx context.Context, userID uint, plan string) bool {
	limit := DailyLimit(plan)

	if limit == Unlimited {
		return true
	}

	key := dailyKey(userID, l.now())

	count, err := l.rdb.Incr(ctx, key).Result()

	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("quota check failed, allowing request")
		return true
	}

	if count == 1 {
		if err := l.rdb.Expire(ctx, key, 24*time.Hour).Err(); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to set quota key expiry")
		}
	}

	return count <= int64(limit)
}

func dailyKey(userID uint, now time.Time) string {
	return fmt.Sprintf("quota:ai:%d:%s", userID, now.UTC().Format("2006-01-02"))
}
