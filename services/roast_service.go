package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"roastedin/cache"
	"roastedin/config"
	"roastedin/dto"
	"roastedin/eventbus"
	"roastedin/events"
	"roastedin/logger"
	"roastedin/models"
	"roastedin/quota"
	"roastedin/repositories"
	"roastedin/roaster"
	"roastedin/scraper"
	"roastedin/session"
	"roastedin/trace"
)

// ErrQuotaExhausted 는 일일 로스트 한도를 소진한 상태다.
var ErrQuotaExhausted = errors.New("daily roast quota exhausted")

// RoastService 는 스크레이프-로스트 파이프라인 전체를 조율한다.
// 캐시 히트면 브라우저와 LLM 을 건너뛰고, 미스면 세션 점유 → 프로필 수집 →
// 로스트 생성 → 저장 순서로 진행한다.
type RoastService struct {
	cfg       config.AppConfig
	sessions  *session.Manager
	roasts    *repositories.RoastRepository
	snapshots *repositories.ProfileSnapshotRepository
	aiLogs    *repositories.AILogRepository
	quota     *quota.RoastQuotaLimiter
	cache     *cache.RoastCache
	bus       eventbus.EventBus
}

// NewRoastService constructs RoastService. bus may be nil when Kafka is disabled.
func NewRoastService(
	cfg config.AppConfig,
	sessions *session.Manager,
	roasts *repositories.RoastRepository,
	snapshots *repositories.ProfileSnapshotRepository,
	aiLogs *repositories.AILogRepository,
	limiter *quota.RoastQuotaLimiter,
	roastCache *cache.RoastCache,
	bus eventbus.EventBus,
) *RoastService {
	return &RoastService{
		cfg:       cfg,
		sessions:  sessions,
		roasts:    roasts,
		snapshots: snapshots,
		aiLogs:    aiLogs,
		quota:     limiter,
		cache:     roastCache,
		bus:       bus,
	}
}

// RoastProfile 은 프로필 URL 하나를 로스트한다.
// 같은 URL 에 대한 동시 요청은 캐시의 single-flight 로 한 번만 생성된다.
// 생성 실패는 캐시되지 않으므로 다음 요청이 재시도한다.
func (s *RoastService) RoastProfile(ctx context.Context, rawURL string) (*dto.RoastDTO, error) {
	canonical, _, err := scraper.CanonicalProfileURL(rawURL)
	if err != nil {
		return nil, err
	}

	generated := false
	data, err := s.cache.GetSet(ctx, cache.URLToKey(canonical), func(ctx context.Context) ([]byte, error) {
		m, genErr := s.generate(ctx, canonical)
		if genErr != nil {
			return nil, genErr
		}
		generated = true
		return json.Marshal(m)
	}, s.cache.TTL())
	if err != nil {
		return nil, err
	}

	var m models.Roast
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("캐시된 로스트 역직렬화 실패: %w", err)
	}

	out := dto.NewRoastDTO(m)
	out.Cached = !generated
	return &out, nil
}

// generate 는 캐시 미스 경로다. 반환 에러는 캐시 저장을 막는다.
func (s *RoastService) generate(ctx context.Context, canonical string) (*models.Roast, error) {
	ok, err := s.quota.WaitAndReserve(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrQuotaExhausted
	}

	requestID, spanID := trace.NextSpanID(ctx)
	logger.InfoWithFields("scraping profile", logger.Fields{
		"request_id":  requestID,
		"span_id":     spanID,
		"profile_url": canonical,
	})

	profile, err := s.fetchProfile(ctx, canonical)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	upsert := &models.Roast{
		UpdatedAt:       now,
		ProfileURL:      profile.URL,
		ProfileSlug:     profile.Slug,
		ProfileName:     profile.Name,
		Headline:        profile.Headline,
		FetchDurationMs: profile.FetchDuration.Milliseconds(),
	}
	// 수집 단계 upsert 는 로스트 필드를 건드리지 않는다. 재생성 도중
	// LLM 호출이 실패해도 이전 성공 로스트가 보존된다.
	if _, err := s.roasts.UpsertFetchByProfileURL(ctx, upsert); err != nil {
		return nil, fmt.Errorf("로스트 upsert 실패: %w", err)
	}
	stored, err := s.roasts.FindByProfileURL(ctx, profile.URL)
	if err != nil {
		return nil, fmt.Errorf("로스트 재조회 실패: %w", err)
	}

	if _, err := s.snapshots.Insert(ctx, &models.ProfileSnapshot{
		RoastID:         stored.ID,
		ProfileURL:      profile.URL,
		ProfileSlug:     profile.Slug,
		PlainText:       profile.Text,
		TextRunes:       len([]rune(profile.Text)),
		FetchedAt:       profile.FetchedAt,
		FetchDurationMs: profile.FetchDuration.Milliseconds(),
		CreatedAt:       now,
	}); err != nil {
		// 스냅샷은 디버깅용 부산물이라 실패해도 파이프라인은 계속 간다.
		logger.WarnWithFields("profile snapshot insert failed", logger.Fields{
			"profile_url": profile.URL,
			"error":       err.Error(),
		})
	}

	requestID, spanID = trace.NextSpanID(ctx)
	logger.InfoWithFields("requesting roast generation", logger.Fields{
		"request_id":  requestID,
		"span_id":     spanID,
		"profile_url": profile.URL,
		"text_runes":  len([]rune(profile.Text)),
	})

	result, llmLog, roastErr := roaster.RoastText(ctx, profile.Text)
	s.recordAILog(ctx, stored.ID, llmLog, roastErr)
	if roastErr != nil {
		s.publishFailed(profile.URL, roastErr)
		return nil, roastErr
	}

	final := &models.Roast{
		UpdatedAt:       time.Now().UTC(),
		Status:          models.StatusFlags{ProfileFetched: true, Roasted: true},
		ProfileURL:      profile.URL,
		ProfileSlug:     profile.Slug,
		ProfileName:     profile.Name,
		Headline:        profile.Headline,
		RoastText:       result.Roast,
		ModelName:       llmLog.ModelName,
		GeneratedAt:     llmLog.GeneratedAt,
		FetchDurationMs: profile.FetchDuration.Milliseconds(),
		LLMLatencyMs:    llmLog.LatencyMs,
	}
	if _, err := s.roasts.UpsertByProfileURL(ctx, final); err != nil {
		return nil, fmt.Errorf("로스트 저장 실패: %w", err)
	}
	stored, err = s.roasts.FindByProfileURL(ctx, profile.URL)
	if err != nil {
		return nil, fmt.Errorf("로스트 재조회 실패: %w", err)
	}

	s.publishGenerated(stored, llmLog)

	logger.InfoWithFields("roast generated", logger.Fields{
		"profile_url":    stored.ProfileURL,
		"model":          stored.ModelName,
		"llm_latency_ms": stored.LLMLatencyMs,
	})
	return stored, nil
}

// fetchProfile 은 세션을 점유한 채 프로필을 렌더링한다.
// 세션이 authwall 로 거부되면 세션을 무효화하고 딱 한 번 다시 시도한다.
func (s *RoastService) fetchProfile(ctx context.Context, canonical string) (*scraper.Profile, error) {
	profile, err := s.fetchOnce(ctx, canonical)
	if errors.Is(err, scraper.ErrSessionLost) {
		logger.Log.Warnf("세션이 거부되어 재수립 후 한 번 더 시도: %s", canonical)
		s.sessions.Invalidate()
		profile, err = s.fetchOnce(ctx, canonical)
	}
	return profile, err
}

func (s *RoastService) fetchOnce(ctx context.Context, canonical string) (*scraper.Profile, error) {
	sessionCtx, release, err := s.sessions.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()
	return scraper.FetchProfile(sessionCtx, s.cfg.LinkedIn, canonical)
}

// recordAILog 는 LLM 호출을 성공/실패 구분 없이 ai_logs 에 남긴다.
func (s *RoastService) recordAILog(ctx context.Context, roastID primitive.ObjectID, llmLog *roaster.LLMRequestLog, callErr error) {
	if llmLog == nil {
		return
	}

	doc := models.AILog{
		RoastID:        roastID,
		ModelName:      llmLog.ModelName,
		ModelVersion:   llmLog.ModelVersion,
		InputTokens:    llmLog.TokenUsage.InputTokens,
		OutputTokens:   llmLog.TokenUsage.OutputTokens,
		TotalTokens:    llmLog.TokenUsage.TotalTokens,
		DurationMs:     llmLog.LatencyMs,
		InputPrompt:    llmLog.Prompt,
		OutputResponse: llmLog.Response,
		RequestedAt:    llmLog.GeneratedAt.Add(-time.Duration(llmLog.LatencyMs) * time.Millisecond),
		CompletedAt:    llmLog.GeneratedAt,
	}
	if callErr != nil {
		msg := callErr.Error()
		doc.ErrorMessage = &msg
	}

	if _, err := s.aiLogs.Insert(ctx, doc); err != nil {
		logger.Log.Warnf("ai log 저장 실패: %v", err)
	}
}

// publishGenerated 는 로스트 완료 이벤트를 발행한다. 발행 실패는 경고로만 남긴다.
func (s *RoastService) publishGenerated(m *models.Roast, llmLog *roaster.LLMRequestLog) {
	if s.bus == nil {
		return
	}

	payload, err := json.Marshal(events.RoastGeneratedEvent{
		BaseEvent:   newBaseEvent(events.RoastGenerated),
		RoastID:     m.ID,
		ProfileURL:  m.ProfileURL,
		ProfileSlug: m.ProfileSlug,
		ModelName:   m.ModelName,
		LLMLatency:  llmLog.LatencyMs,
	})
	if err != nil {
		logger.Log.Warnf("이벤트 마샬링 실패: %v", err)
		return
	}
	s.publish(payload)
}

func (s *RoastService) publishFailed(profileURL string, cause error) {
	if s.bus == nil {
		return
	}

	payload, err := json.Marshal(events.RoastFailedEvent{
		BaseEvent:  newBaseEvent(events.RoastFailed),
		ProfileURL: profileURL,
		Reason:     cause.Error(),
	})
	if err != nil {
		logger.Log.Warnf("이벤트 마샬링 실패: %v", err)
		return
	}
	s.publish(payload)
}

func (s *RoastService) publish(payload []byte) {
	pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev := eventbus.Event{ID: uuid.NewString(), Payload: payload}
	if err := s.bus.Publish(pubCtx, eventbus.TopicRoastEvents.Base(), ev); err != nil {
		logger.Log.Warnf("이벤트 발행 실패: %v", err)
	}
}

func newBaseEvent(t events.EventType) events.BaseEvent {
	return events.BaseEvent{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Source:    "roastedin-api",
		Version:   "1.0",
	}
}

// GetByID loads a roast by its ObjectID hex and returns a DTO
func (s *RoastService) GetByID(ctx context.Context, hexID string) (*dto.RoastDTO, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, err
	}
	m, err := s.roasts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	out := dto.NewRoastDTO(*m)
	out.Cached = true
	return &out, nil
}

type ListRoastsInput struct {
	Page     int
	PageSize int
}

func (s *RoastService) List(ctx context.Context, in ListRoastsInput) ([]dto.RoastDTO, error) {
	items, err := s.roasts.List(ctx, repositories.ListRoastsOptions{
		Page:     in.Page,
		PageSize: in.PageSize,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoastDTO, 0, len(items))
	for _, m := range items {
		d := dto.NewRoastDTO(m)
		d.Cached = true
		out = append(out, d)
	}
	return out, nil
}
