package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pulsepoll/internal/model"
)

// SurveyRepo provides read access to survey definitions. Survey CRUD is
// owned by a separate service; the analytics core only loads schemas.
type SurveyRepo interface {
	GetByID(ctx context.Context, id string) (*model.SurveyDefinition, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]*model.SurveyDefinition, error)
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey repository
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{
		collection: db.Collection("surveys"),
	}
}

func (r *surveyRepo) GetByID(ctx context.Context, id string) (*model.SurveyDefinition, error) {
	var survey model.SurveyDefinition
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *surveyRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.SurveyDefinition, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []*model.SurveyDefinition
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}
