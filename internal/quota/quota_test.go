package quota

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mindsender/mindsender/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDailyLimit(t *testing.T) {
	assert.Equal(t, 20, DailyLimit(models.PlanFree))
	assert.Equal(t, 200, DailyLimit(models.PlanPro))
	assert.Equal(t, Unlimited, DailyLimit(models.PlanElite))
	assert.Equal(t, 20, DailyLimit("not-a-plan"))
}

func TestDailyKey(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60))

	// 23:30 UTC+2 is 21:30 UTC, still March 10 in UTC.
	assert.Equal(t, "quota:ai:42:2025-03-10", dailyKey(42, now))
}

func TestAllowSkipsRedisForElitePlan(t *testing.T) {
	limiter := NewLimiter(nil)

	assert.True(t, limiter.Allow(context.Background(), 1, models.PlanElite))
}

func TestAllowFailsOpenWhenRedisUnreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	limiter := NewLimiter(rdb)

	assert.True(t, limiter.Allow(context.Background(), 1, models.PlanFree))
}
