package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveypulse/internal/model"
)

// ErrNotFound is returned by writes that target a missing record
var ErrNotFound = errors.New("record not found")

// ResponseRepo handles persistence for survey responses
type ResponseRepo interface {
	Create(ctx context.Context, response *model.ResponseRecord) error
	// GetByID returns the response only if it belongs to surveyID
	GetByID(ctx context.Context, surveyID, id string) (*model.ResponseRecord, error)
	ListBySurvey(ctx context.Context, surveyID string) ([]model.ResponseRecord, error)
	CountBySurvey(ctx context.Context, surveyID string) (int64, error)
	CountSince(ctx context.Context, surveyID string, since time.Time) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new MongoDB response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) Create(ctx context.Context, response *model.ResponseRecord) error {
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now().UTC()
	}
	response.ID = primitive.NewObjectID().Hex()

	_, err := r.collection.InsertOne(ctx, response)
	return err
}

func (r *responseRepo) GetByID(ctx context.Context, surveyID, id string) (*model.ResponseRecord, error) {
	var response model.ResponseRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "surveyId": surveyID}).Decode(&response)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// ListBySurvey returns responses oldest first
func (r *responseRepo) ListBySurvey(ctx context.Context, surveyID string) ([]model.ResponseRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	responses := []model.ResponseRecord{}
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) CountBySurvey(ctx context.Context, surveyID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"surveyId": surveyID})
}

func (r *responseRepo) CountSince(ctx context.Context, surveyID string, since time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"surveyId":    surveyID,
		"submittedAt": bson.M{"$gte": since},
	})
}
