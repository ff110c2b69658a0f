package quota

import (
	"context"
	"sync"
	"time"

	"roastedin/config"
)

// RoastQuotaLimiter 는 로스트용 LLM 호출에 대한 분당/일일 한도를 관리한다.
// 서버 인스턴스가 하나라는 전제를 두고 인메모리로 동작하며,
// 애플리케이션이 재시작되면 카운터가 초기화된다.
type RoastQuotaLimiter struct {
	mu sync.Mutex

	dailyLimit int
	interval   time.Duration

	dayStart time.Time // UTC 자정, 일일 카운터의 기준점
	used     int
	lastCall time.Time
}

// NewRoastQuotaLimiterFromConfig 는 config.yaml 의 roast_quota 설정으로
// 리미터를 생성한다. 0 이하의 값은 해당 방향의 제한을 끈다.
func NewRoastQuotaLimiterFromConfig(cfg config.AppConfig) *RoastQuotaLimiter {
	l := &RoastQuotaLimiter{}

	if d := cfg.RoastQuota.RequestsPerDay; d > 0 {
		l.dailyLimit = d
	}
	if m := cfg.RoastQuota.RequestsPerMinute; m > 0 {
		l.interval = time.Minute / time.Duration(m)
	}
	return l
}

// reserveLocked 는 지금 호출해도 되는지 판정한다.
// (true, 0): 예약 완료. (false, 0): 일일 한도 소진. (false, wait>0): wait 후 재시도.
func (l *RoastQuotaLimiter) reserveLocked(now time.Time) (bool, time.Duration) {
	if day := now.Truncate(24 * time.Hour); !day.Equal(l.dayStart) {
		l.dayStart = day
		l.used = 0
	}

	if l.dailyLimit > 0 && l.used >= l.dailyLimit {
		return false, 0
	}

	if l.interval > 0 && !l.lastCall.IsZero() {
		if wait := l.interval - now.Sub(l.lastCall); wait > 0 {
			return false, wait
		}
	}

	l.used++
	l.lastCall = now
	return true, 0
}

// WaitAndReserve 는 로스트 호출 전에 분당/일일 한도를 적용한다.
// - 일일 한도를 초과한 경우: (false, nil) 을 반환하고 호출자는 LLM 호출을 스킵해야 한다.
// - 컨텍스트 취소 등 시스템 예외 발생 시: (false, error)를 반환하여 상위에서 재시도/중단을 판단하게 한다.
func (l *RoastQuotaLimiter) WaitAndReserve(ctx context.Context) (bool, error) {
	for {
		l.mu.Lock()
		ok, wait := l.reserveLocked(time.Now().UTC())
		l.mu.Unlock()

		if ok {
			return true, nil
		}
		if wait <= 0 {
			// 일일 한도 소진: 이번 호출은 로스트를 수행하지 않는다.
			return false, nil
		}

		// 분당 간격 대기 후 상태를 재평가한다.
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}
