package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulsepoll/internal/model"
)

// ResponseFilter narrows a response query. Zero values mean no constraint.
type ResponseFilter struct {
	From    time.Time
	To      time.Time
	Quality model.QualityStatus
}

// ResponseRepo handles MongoDB operations for survey responses
type ResponseRepo interface {
	Create(ctx context.Context, record *model.ResponseRecord) error
	ListBySurvey(ctx context.Context, surveyID string, filter ResponseFilter) ([]*model.ResponseRecord, error)
	CountBySurvey(ctx context.Context, surveyID string) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) Create(ctx context.Context, record *model.ResponseRecord) error {
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *responseRepo) ListBySurvey(ctx context.Context, surveyID string, filter ResponseFilter) ([]*model.ResponseRecord, error) {
	query := bson.M{"surveyId": surveyID}

	window := bson.M{}
	if !filter.From.IsZero() {
		window["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		window["$lte"] = filter.To
	}
	if len(window) > 0 {
		query["submittedAt"] = window
	}
	if filter.Quality != "" {
		query["qualityStatus"] = filter.Quality
	}

	opts := options.Find().SetSort(bson.M{"submittedAt": 1})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.ResponseRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *responseRepo) CountBySurvey(ctx context.Context, surveyID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"surveyId": surveyID})
}
