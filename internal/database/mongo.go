package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/personal-blog-api/internal/config"
)

// DefaultMongoDatabase is used when the connection string names no database
const DefaultMongoDatabase = "blog"

// Mongo wraps the MongoDB client and the article database
type Mongo struct {
	client     *mongo.Client
	database   *mongo.Database
	collection string
	log        zerolog.Logger
}

// ConnectMongo connects to MongoDB and verifies the connection
func ConnectMongo(ctx context.Context, cfg *config.StoreConfig, log zerolog.Logger) (*Mongo, error) {
	cs, err := connstring.ParseAndValidate(cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("invalid mongo connection string: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = DefaultMongoDatabase
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	collection := cfg.MongoCollection
	if collection == "" {
		collection = "articles"
	}

	m := &Mongo{
		client:     client,
		database:   client.Database(dbName),
		collection: collection,
		log:        log.With().Str("component", "mongo").Logger(),
	}

	m.log.Info().
		Str("database", dbName).
		Str("collection", collection).
		Msg("MongoDB connection established")

	return m, nil
}

// Articles returns the article collection
func (m *Mongo) Articles() *mongo.Collection {
	return m.database.Collection(m.collection)
}

// EnsureIndexes creates the indexes backing listing, filtering and stats
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "published_date", Value: -1}, {Key: "created_date", Value: -1}},
			Options: options.Index().SetName("listing"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("category"),
		},
		{
			Keys:    bson.D{{Key: "published", Value: 1}},
			Options: options.Index().SetName("published"),
		},
	}

	names, err := m.Articles().Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	m.log.Info().Strs("indexes", names).Msg("Indexes ensured")
	return nil
}

// HealthCheck verifies the MongoDB connection is healthy
func (m *Mongo) HealthCheck(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
