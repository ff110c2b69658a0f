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

type ProfileSnapshotRepository struct {
	col *mongo.Collection
}

func NewProfileSnapshotRepository(db *mongo.Database) *ProfileSnapshotRepository {
	return &ProfileSnapshotRepository{col: db.Collection("profile_snapshots")}
}

func (r *ProfileSnapshotRepository) Insert(ctx context.Context, s *models.ProfileSnapshot) (*mongo.InsertOneResult, error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	return r.col.InsertOne(ctx, s)
}

// FindLatestByRoastID returns the most recent snapshot for a roast
func (r *ProfileSnapshotRepository) FindLatestByRoastID(ctx context.Context, roastID primitive.ObjectID) (*models.ProfileSnapshot, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var s models.ProfileSnapshot
	if err := r.col.FindOne(ctx, bson.M{"roast_id": roastID}, opts).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
