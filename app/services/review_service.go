package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/street-parser/app/models"
)

// ReviewService persists unmatched inputs so someone can turn them into
// lexicon aliases later.
type ReviewService struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewReviewService(db *mongo.Database, logger *zap.Logger) *ReviewService {
	collection := db.Collection("parse_reviews")

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "status", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "created_at", Value: -1}}},
		{
			Keys:    bson.D{bson.E{Key: "ascii_folded", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("could not create parse_reviews indexes", zap.Error(err))
	}

	return &ReviewService{collection: collection, logger: logger}
}

// Enqueue stores an unmatched input. Duplicate folded inputs are
// silently dropped so one bad address in a batch does not flood the
// queue.
func (rs *ReviewService) Enqueue(ctx context.Context, review *models.ParseReview) error {
	_, err := rs.collection.InsertOne(ctx, review)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue review: %w", err)
	}

	rs.logger.Debug("review queued", zap.String("input", review.Input))
	return nil
}

// List pages through the queue, optionally filtered by status.
func (rs *ReviewService) List(ctx context.Context, status string, limit, offset int) ([]models.ParseReview, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := rs.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := rs.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.ParseReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, total, nil
}

// CountPending returns the size of the open queue.
func (rs *ReviewService) CountPending(ctx context.Context) (int64, error) {
	return rs.collection.CountDocuments(ctx, bson.M{"status": models.ReviewStatusPending})
}

// Resolve closes one entry, either as handled or as noise.
func (rs *ReviewService) Resolve(ctx context.Context, id string, reviewerID, resolution string, ignore bool) (*models.ParseReview, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid review id: %w", err)
	}

	var review models.ParseReview
	if err := rs.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("review %s not found", id)
		}
		return nil, fmt.Errorf("load review: %w", err)
	}

	if ignore {
		review.Ignore(reviewerID)
	} else {
		review.Resolve(reviewerID, resolution)
	}

	update := bson.M{"$set": bson.M{
		"status":      review.Status,
		"resolution":  review.Resolution,
		"reviewer_id": review.ReviewerID,
		"reviewed_at": review.ReviewedAt,
	}}
	if _, err := rs.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	rs.logger.Info("review closed",
		zap.String("review_id", id),
		zap.String("status", review.Status))

	return &review, nil
}
