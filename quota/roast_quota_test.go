package quota_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"roastedin/config"
	"roastedin/quota"
)

func limiterWith(perMinute, perDay int) *quota.RoastQuotaLimiter {
	cfg := config.AppConfig{}
	cfg.RoastQuota.RequestsPerMinute = perMinute
	cfg.RoastQuota.RequestsPerDay = perDay
	return quota.NewRoastQuotaLimiterFromConfig(cfg)
}

func TestWaitAndReserveUnlimited(t *testing.T) {
	l := limiterWith(0, 0)
	for i := 0; i < 5; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		assert.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestWaitAndReserveDailyLimit(t *testing.T) {
	l := limiterWith(0, 2)

	for i := 0; i < 2; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		assert.NoError(t, err)
		assert.True(t, ok)
	}

	// 세 번째 호출부터는 일일 한도 소진
	ok, err := l.WaitAndReserve(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestWaitAndReserveSpacesCalls(t *testing.T) {
	// 분당 600회 = 호출 간격 100ms
	l := limiterWith(600, 0)

	start := time.Now()
	for i := 0; i < 3; i++ {
		ok, err := l.WaitAndReserve(context.Background())
		assert.NoError(t, err)
		assert.True(t, ok)
	}
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestWaitAndReserveRespectsContext(t *testing.T) {
	// 분당 1회 = 두 번째 호출은 1분 대기가 필요하다
	l := limiterWith(1, 0)

	ok, err := l.WaitAndReserve(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	ok, err = l.WaitAndReserve(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
