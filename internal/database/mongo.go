// internal/database/mongo.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/projektfabrik/pf-backend/internal/config"
)

// MongoClient wraps the document store holding status-check records. The
// relational store never references these documents.
type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
}

func (c *MongoClient) Database() *mongo.Database {
	return c.db
}

func NewMongoClient(ctx context.Context, cfg config.MongoConfig) (*MongoClient, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo URI is required")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(uint64(cfg.MaxPoolSize))

	var (
		cli *mongo.Client
		err error
	)
	for i := 0; i < cfg.MaxRetry; i++ {
		cli, err = connectMongo(ctx, opts)
		if err == nil {
			break
		}
		time.Sleep(time.Second / 2)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	logrus.Info("MongoDB connection established successfully")
	return &MongoClient{
		client: cli,
		db:     cli.Database(cfg.Database),
	}, nil
}

func connectMongo(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	cli, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return cli, nil
}

func (c *MongoClient) Close(ctx context.Context) {
	if err := c.client.Disconnect(ctx); err != nil {
		logrus.WithError(err).Error("Error closing MongoDB connection")
	} else {
		logrus.Info("MongoDB connection closed")
	}
}
