package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/example/punkfits/pkg/config"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultAuditLimit = 50

// MongoRepository is the audit store. Entries are append-only.
type MongoRepository struct {
	client *mongo.Client
	audit  *mongo.Collection
}

// NewMongoRepository connects, verifies the server answers and ensures the
// (entity_id, created_at) index GetAuditLogs reads through.
func NewMongoRepository(ctx context.Context, cfg *config.MongoDBConfig) (*MongoRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb unreachable: %w", err)
	}

	audit := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = audit.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "entity_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create audit index: %w", err)
	}

	return &MongoRepository{client: client, audit: audit}, nil
}

func (m *MongoRepository) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// AuditLog is one domain event persisted for later inspection.
type AuditLog struct {
	ID        string    `bson:"_id" json:"id"`
	Service   string    `bson:"service" json:"service"`
	Action    string    `bson:"action" json:"action"`
	EntityID  string    `bson:"entity_id" json:"entity_id"`
	Data      bson.M    `bson:"data,omitempty" json:"data,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// CreateAuditLog fills in the id and timestamp when unset.
func (m *MongoRepository) CreateAuditLog(ctx context.Context, entry *AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := m.audit.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert audit log %s: %w", entry.Action, err)
	}
	return nil
}

// GetAuditLogs returns an entity's entries, newest first. A non-positive
// limit means the default.
func (m *MongoRepository) GetAuditLogs(ctx context.Context, entityID string, limit int64) ([]*AuditLog, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := m.audit.Find(ctx, bson.M{"entity_id": entityID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []*AuditLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decode audit logs: %w", err)
	}
	return logs, nil
}
