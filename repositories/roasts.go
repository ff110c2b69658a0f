package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roastedin/models"
)

type RoastRepository struct {
	col *mongo.Collection
}

func NewRoastRepository(db *mongo.Database) *RoastRepository {
	return &RoastRepository{col: db.Collection("roasts")}
}

// fetchUpdate 는 로스트 생성 전 수집 단계의 $set 문서다.
// 로스트 관련 필드는 의도적으로 빠져 있다. 재생성 도중 LLM 호출이 실패해도
// 이전에 저장된 성공 로스트가 빈 값으로 덮어써지면 안 된다.
func fetchUpdate(m *models.Roast) bson.M {
	return bson.M{
		"updated_at":             m.UpdatedAt,
		"status.profile_fetched": true,
		"profile_url":            m.ProfileURL,
		"profile_slug":           m.ProfileSlug,
		"profile_name":           m.ProfileName,
		"headline":               m.Headline,
		"fetch_duration_ms":      m.FetchDurationMs,
	}
}

// roastUpdate 는 로스트 생성 완료 시점의 전체 $set 문서다.
func roastUpdate(m *models.Roast) bson.M {
	return bson.M{
		"updated_at":        m.UpdatedAt,
		"status":            m.Status,
		"profile_url":       m.ProfileURL,
		"profile_slug":      m.ProfileSlug,
		"profile_name":      m.ProfileName,
		"headline":          m.Headline,
		"roast_text":        m.RoastText,
		"model_name":        m.ModelName,
		"generated_at":      m.GeneratedAt,
		"fetch_duration_ms": m.FetchDurationMs,
		"llm_latency_ms":    m.LLMLatencyMs,
	}
}

func (r *RoastRepository) upsert(ctx context.Context, m *models.Roast, set bson.M) (*mongo.UpdateResult, error) {
	filter := bson.M{"profile_url": m.ProfileURL}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at": m.CreatedAt,
		},
		"$set": set,
	}
	opts := options.Update().SetUpsert(true)
	return r.col.UpdateOne(ctx, filter, update, opts)
}

// UpsertFetchByProfileURL records the fetch stage without touching roast fields
func (r *RoastRepository) UpsertFetchByProfileURL(ctx context.Context, m *models.Roast) (*mongo.UpdateResult, error) {
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return r.upsert(ctx, m, fetchUpdate(m))
}

// UpsertByProfileURL upserts the full roast document for one profile URL
func (r *RoastRepository) UpsertByProfileURL(ctx context.Context, m *models.Roast) (*mongo.UpdateResult, error) {
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return r.upsert(ctx, m, roastUpdate(m))
}

// FindByProfileURL returns the current roast for a profile URL
func (r *RoastRepository) FindByProfileURL(ctx context.Context, profileURL string) (*models.Roast, error) {
	var m models.Roast
	if err := r.col.FindOne(ctx, bson.M{"profile_url": profileURL}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// FindByID returns a roast by its ObjectID
func (r *RoastRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Roast, error) {
	var m models.Roast
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

type ListRoastsOptions struct {
	Page     int
	PageSize int
}

// List returns roasts sorted by created_at desc with simple pagination
func (r *RoastRepository) List(ctx context.Context, in ListRoastsOptions) ([]models.Roast, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.Roast
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
