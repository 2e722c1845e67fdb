// internal/app/store/submissions/store.go
package submissions

import (
	"context"
	"time"

	"github.com/dalemusser/registro/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the Mongo collection holding submission attempts.
const Collection = "submissions"

// QueryFilter narrows a Query.
type QueryFilter struct {
	Kind      models.SubmissionKind
	Success   *bool
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int64
	Offset    int64
}

// Store manages submission records.
type Store struct {
	c *mongo.Collection
}

// New creates a new submissions Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// IndexModels are the indexes Query relies on, named so they can be
// reconciled at startup.
func IndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_submissions_ts"),
		},
		{
			Keys:    bson.D{{Key: "success", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_submissions_success_ts"),
		},
		{
			Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_submissions_kind_ts"),
		},
	}
}

// EnsureIndexes creates the indexes used by Query.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, IndexModels())
	return err
}

// Insert records one submission attempt, filling ID and Timestamp when unset.
func (s *Store) Insert(ctx context.Context, sub models.Submission) error {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if sub.Timestamp.IsZero() {
		sub.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, sub)
	return err
}

func buildQuery(filter QueryFilter) bson.M {
	query := bson.M{}
	if filter.Kind != "" {
		query["kind"] = filter.Kind
	}
	if filter.Success != nil {
		query["success"] = *filter.Success
	}
	if filter.StartTime != nil || filter.EndTime != nil {
		timeQuery := bson.M{}
		if filter.StartTime != nil {
			timeQuery["$gte"] = *filter.StartTime
		}
		if filter.EndTime != nil {
			timeQuery["$lte"] = *filter.EndTime
		}
		query["timestamp"] = timeQuery
	}
	return query
}

// Query returns submissions matching filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]models.Submission, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cursor, err := s.c.Find(ctx, buildQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Submission
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByFilter returns the number of submissions matching filter.
func (s *Store) CountByFilter(ctx context.Context, filter QueryFilter) (int64, error) {
	return s.c.CountDocuments(ctx, buildQuery(filter))
}

// GetRecent returns the most recent submissions.
func (s *Store) GetRecent(ctx context.Context, limit int64) ([]models.Submission, error) {
	return s.Query(ctx, QueryFilter{Limit: limit})
}

// GetFailed returns failed submissions since the given time. These are the
// records the support contact has to re-enter by hand.
func (s *Store) GetFailed(ctx context.Context, since time.Time, limit int64) ([]models.Submission, error) {
	failed := false
	return s.Query(ctx, QueryFilter{Success: &failed, StartTime: &since, Limit: limit})
}
