package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileSnapshot stores the raw extracted profile text for one fetch
// Collection: profile_snapshots
type ProfileSnapshot struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoastID         primitive.ObjectID `bson:"roast_id" json:"roast_id"`
	ProfileURL      string             `bson:"profile_url" json:"profile_url"`
	ProfileSlug     string             `bson:"profile_slug" json:"profile_slug"`
	PlainText       string             `bson:"plain_text" json:"plain_text"`
	TextRunes       int                `bson:"text_runes" json:"text_runes"`
	FetchedAt       time.Time          `bson:"fetched_at" json:"fetched_at"`
	FetchDurationMs int64              `bson:"fetch_duration_ms" json:"fetch_duration_ms"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}
