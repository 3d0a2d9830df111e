// internal/services/status_check_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projektfabrik/pf-backend/internal/models"
)

const statusCheckCollection = "status_checks"

// StatusCheckService stores diagnostic heartbeat documents in the document
// store. These records are independent of the project workflow.
type StatusCheckService struct {
	collection *mongo.Collection
}

func NewStatusCheckService(db *mongo.Database) *StatusCheckService {
	return &StatusCheckService{
		collection: db.Collection(statusCheckCollection),
	}
}

func (s *StatusCheckService) Record(ctx context.Context, client string) (*models.StatusCheck, error) {
	client = strings.TrimSpace(client)
	if client == "" {
		return nil, fmt.Errorf("client name is required")
	}

	check := &models.StatusCheck{
		ID:        primitive.NewObjectID().Hex(),
		Client:    client,
		CheckedAt: time.Now(),
	}

	if _, err := s.collection.InsertOne(ctx, check); err != nil {
		return nil, fmt.Errorf("failed to insert status check: %w", err)
	}

	return check, nil
}

func (s *StatusCheckService) List(ctx context.Context, limit int64) ([]models.StatusCheck, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "checked_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query status checks: %w", err)
	}
	defer cursor.Close(ctx)

	checks := make([]models.StatusCheck, 0)
	if err := cursor.All(ctx, &checks); err != nil {
		return nil, fmt.Errorf("failed to decode status checks: %w", err)
	}

	return checks, nil
}
