package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/codeGROOVE-dev/retry"

	"roastedin/browser"
	"roastedin/config"
	"roastedin/logger"
)

// ErrCheckpoint 는 LinkedIn 이 본인확인 인터스티셜을 띄워 자동 로그인으로는
// 세션을 만들 수 없는 상태다. cmd/savesession 으로 사람이 다시 로그인해야 한다.
var ErrCheckpoint = errors.New("linkedin checkpoint verification required")

// ErrNoSession 은 storage state 도 자격증명도 없어 세션을 만들 방법이 없는 상태다.
var ErrNoSession = errors.New("no usable linkedin session: run savesession or set LINKEDIN_EMAIL/LINKEDIN_PASSWORD")

const (
	probeTimeout  = 20 * time.Second
	settleDelay   = 1 * time.Second
	loginPollStep = 500 * time.Millisecond
)

// Manager 는 프로세스당 최대 하나의 인증된 브라우저 컨텍스트를 유지한다.
// 웜 요청은 캐시된 컨텍스트를 재사용하고, 검증에 실패하면
// state 파일 복원 -> 자격증명 로그인 순서로 재수립한다.
// 모든 상태 전이는 mu 아래에서 일어나며, Acquire 가 반환한 release 를
// 호출할 때까지 컨텍스트는 호출자가 단독 점유한다.
type Manager struct {
	mu  sync.Mutex
	cfg config.AppConfig

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	establishedAt time.Time
}

func NewManager(cfg config.AppConfig) *Manager {
	return &Manager{cfg: cfg}
}

// Acquire 는 검증된 브라우저 컨텍스트와 release 함수를 반환한다.
// 반환된 컨텍스트는 chromedp.Run 대상으로만 사용해야 하며,
// release 호출 전까지 다른 고루틴과 공유되지 않는다.
func (m *Manager) Acquire(ctx context.Context) (context.Context, func(), error) {
	m.mu.Lock()

	if err := m.ensureLocked(ctx); err != nil {
		m.mu.Unlock()
		return nil, nil, err
	}

	released := false
	release := func() {
		if released {
			return
		}
		released = true
		m.mu.Unlock()
	}
	return m.browserCtx, release, nil
}

// Invalidate 는 캐시된 컨텍스트를 버린다. 다음 Acquire 가 처음부터 재수립한다.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardownLocked()
}

// Close 는 서버 종료 시 브라우저를 정리한다.
func (m *Manager) Close() {
	m.Invalidate()
}

func (m *Manager) ensureLocked(ctx context.Context) error {
	// 1) 웜 컨텍스트 재사용: throwaway 네비게이션으로 검증한다.
	if m.browserCtx != nil {
		if err := m.validateLocked(); err == nil {
			logger.DebugWithFields("reusing warm browser context", logger.Fields{
				"established_at": m.establishedAt.Format(time.RFC3339),
			})
			return nil
		} else if errors.Is(err, ErrCheckpoint) {
			m.teardownLocked()
			return err
		} else {
			logger.WarnWithFields("warm browser context invalid, rebuilding", logger.Fields{
				"error": err.Error(),
			})
			m.teardownLocked()
		}
	}

	// 2) state 파일 복원
	state, err := browser.LoadState(m.statePath())
	if err == nil && state.HasCookie(AuthCookieName) {
		if err := m.establishFromStateLocked(state); err == nil {
			return nil
		} else if errors.Is(err, ErrCheckpoint) {
			return err
		} else {
			logger.WarnWithFields("storage state restore failed, falling back to credential login", logger.Fields{
				"error": err.Error(),
			})
		}
	} else if err != nil {
		logger.Log.Infof("no usable storage state (%v), trying credential login", err)
	}

	// 3) 자격증명 fallback 로그인
	return m.establishWithLoginLocked(ctx)
}

func (m *Manager) statePath() string {
	return m.cfg.Session.StatePath
}

func (m *Manager) probeURL() string {
	if m.cfg.Session.ProbeURL != "" {
		return m.cfg.Session.ProbeURL
	}
	return m.cfg.LinkedIn.FeedURL
}

// startLocked 는 새 allocator 와 브라우저 컨텍스트를 띄운다.
func (m *Manager) startLocked() error {
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(), browser.AllocatorOptions(true)...)
	bctx, bcancel := chromedp.NewContext(allocCtx)

	// 빈 탭으로 프로세스 기동을 확정한다.
	if err := chromedp.Run(bctx, chromedp.Navigate("about:blank")); err != nil {
		bcancel()
		allocCancel()
		return fmt.Errorf("chrome 기동 실패: %w", err)
	}

	m.allocCancel = allocCancel
	m.browserCtx = bctx
	m.browserCancel = bcancel
	return nil
}

func (m *Manager) teardownLocked() {
	if m.browserCancel != nil {
		m.browserCancel()
		m.browserCancel = nil
	}
	if m.allocCancel != nil {
		m.allocCancel()
		m.allocCancel = nil
	}
	m.browserCtx = nil
	m.establishedAt = time.Time{}
}

// validateLocked 는 probe URL 로 throwaway 네비게이션을 수행해
// 컨텍스트가 아직 인증 상태인지 확인한다. 일시적 네비게이션 오류는 1회 재시도한다.
func (m *Manager) validateLocked() error {
	var finalURL string
	err := retry.Do(
		func() error {
			tctx, cancel := context.WithTimeout(m.browserCtx, probeTimeout)
			defer cancel()
			return chromedp.Run(tctx,
				chromedp.Navigate(m.probeURL()),
				chromedp.WaitReady("body", chromedp.ByQuery),
				chromedp.Sleep(settleDelay),
				chromedp.Location(&finalURL),
			)
		},
		retry.Attempts(2),
		retry.Delay(300*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("probe navigation failed: %w", err)
	}

	switch {
	case IsCheckpointURL(finalURL):
		return ErrCheckpoint
	case IsAuthenticatedURL(finalURL):
		return nil
	default:
		return fmt.Errorf("probe landed on unauthenticated page: %s", finalURL)
	}
}

// establishFromStateLocked 는 저장된 storage state 로 새 컨텍스트를 시드하고 검증한다.
func (m *Manager) establishFromStateLocked(state *browser.StorageState) error {
	if err := m.startLocked(); err != nil {
		return err
	}

	tctx, cancel := context.WithTimeout(m.browserCtx, probeTimeout)
	err := chromedp.Run(tctx, browser.SeedTasks(state))
	cancel()
	if err != nil {
		m.teardownLocked()
		return fmt.Errorf("storage state 시드 실패: %w", err)
	}

	if err := m.validateLocked(); err != nil {
		m.teardownLocked()
		return err
	}

	m.establishedAt = time.Now()
	logger.InfoWithFields("session established from storage state", logger.Fields{
		"state_path":   m.statePath(),
		"state_age_hr": time.Since(state.SavedAt).Hours(),
	})
	return nil
}

// establishWithLoginLocked 는 자격증명으로 로그인 폼을 직접 통과한다.
// 성공하면 storage state 를 다시 캡처해 파일에 기록한다. checkpoint 로
// 빠지면 state 파일은 건드리지 않고 ErrCheckpoint 를 반환한다.
func (m *Manager) establishWithLoginLocked(ctx context.Context) error {
	email := m.cfg.LinkedInEmail
	password := m.cfg.LinkedInPassword
	if email == "" || password == "" {
		return ErrNoSession
	}

	if err := m.startLocked(); err != nil {
		return err
	}

	loginTimeout := time.Duration(m.cfg.LinkedIn.LoginTimeoutSeconds) * time.Second
	if loginTimeout <= 0 {
		loginTimeout = 90 * time.Second
	}

	tctx, cancel := context.WithTimeout(m.browserCtx, loginTimeout)
	defer cancel()

	err := chromedp.Run(tctx,
		chromedp.Navigate(m.cfg.LinkedIn.LoginURL),
		chromedp.WaitVisible(`#username`, chromedp.ByID),
		chromedp.SendKeys(`#username`, email, chromedp.ByID),
		chromedp.SendKeys(`#password`, password, chromedp.ByID),
		chromedp.Click(`button[type="submit"]`, chromedp.ByQuery),
	)
	if err != nil {
		m.teardownLocked()
		return fmt.Errorf("로그인 폼 제출 실패: %w", err)
	}

	// 제출 후에는 URL 폴링으로 결과를 판정한다. 리다이렉트 체인이
	// 단계적으로 일어나므로 단일 WaitNavigation 보다 안정적이다.
	deadline := time.Now().Add(loginTimeout)
	for {
		var cur string
		if err := chromedp.Run(tctx, chromedp.Location(&cur)); err != nil {
			m.teardownLocked()
			return fmt.Errorf("로그인 후 URL 확인 실패: %w", err)
		}

		switch {
		case IsCheckpointURL(cur):
			m.teardownLocked()
			return ErrCheckpoint
		case IsAuthenticatedURL(cur):
			m.establishedAt = time.Now()
			m.captureStateLocked()
			logger.InfoWithFields("session established via credential login", logger.Fields{
				"landed_url": cur,
			})
			return nil
		}

		if time.Now().After(deadline) {
			m.teardownLocked()
			return fmt.Errorf("login did not reach an authenticated page within %s (last url: %s)", loginTimeout, cur)
		}

		select {
		case <-time.After(loginPollStep):
		case <-ctx.Done():
			m.teardownLocked()
			return ctx.Err()
		}
	}
}

// captureStateLocked 는 검증된 로그인 직후에만 호출된다.
// 캡처 실패는 경고로만 남긴다. 세션 자체는 이미 유효하다.
func (m *Manager) captureStateLocked() {
	var state browser.StorageState
	tctx, cancel := context.WithTimeout(m.browserCtx, probeTimeout)
	defer cancel()

	if err := chromedp.Run(tctx, browser.CaptureTasks(&state, "https://www.linkedin.com")); err != nil {
		logger.Log.Warnf("failed to capture storage state after login: %v", err)
		return
	}
	if !state.HasCookie(AuthCookieName) {
		logger.Log.Warn("captured state is missing the auth cookie, not persisting")
		return
	}
	if err := browser.SaveState(m.statePath(), &state); err != nil {
		logger.Log.Warnf("failed to persist storage state: %v", err)
		return
	}
	logger.Log.Infof("storage state refreshed at %s (%d cookies)", m.statePath(), len(state.Cookies))
}
