package events

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	RoastRequested EventType = "roast.requested"
	RoastGenerated EventType = "roast.generated"
	RoastFailed    EventType = "roast.failed"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// RoastGeneratedEvent 로스트 생성 완료 이벤트
type RoastGeneratedEvent struct {
	BaseEvent
	RoastID     primitive.ObjectID `json:"roast_id"`
	ProfileURL  string             `json:"profile_url"`
	ProfileSlug string             `json:"profile_slug"`
	ModelName   string             `json:"model_name"`
	LLMLatency  int64              `json:"llm_latency_ms"`
}

// RoastFailedEvent 로스트 생성 실패 이벤트
type RoastFailedEvent struct {
	BaseEvent
	ProfileURL string `json:"profile_url"`
	Reason     string `json:"reason"`
}
