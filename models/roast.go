package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusFlags represents processing progress of a roast
//
//	profile_fetched: 프로필 텍스트 수집 완료
//	roasted: LLM 로스트 저장 완료
type StatusFlags struct {
	ProfileFetched bool `bson:"profile_fetched" json:"profile_fetched"`
	Roasted        bool `bson:"roasted" json:"roasted"`
}

// Roast represents the latest roast generated for one profile URL
// Collection: roasts (unique on profile_url)
type Roast struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
	Status      StatusFlags        `bson:"status" json:"status"`
	ProfileURL  string             `bson:"profile_url" json:"profile_url"`
	ProfileSlug string             `bson:"profile_slug" json:"profile_slug"`
	ProfileName string             `bson:"profile_name" json:"profile_name"`
	Headline    string             `bson:"headline" json:"headline"`
	RoastText   string             `bson:"roast_text" json:"roast_text"`
	ModelName   string             `bson:"model_name" json:"model_name"`
	GeneratedAt time.Time          `bson:"generated_at" json:"generated_at"`

	FetchDurationMs int64 `bson:"fetch_duration_ms" json:"fetch_duration_ms"`
	LLMLatencyMs    int64 `bson:"llm_latency_ms" json:"llm_latency_ms"`
}
