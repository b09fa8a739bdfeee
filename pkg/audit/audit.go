// Package audit records admin catalog mutations in MongoDB. The trail is
// best-effort: failures are logged and dropped, never surfaced to the
// admin console.
package audit

import (
	"context"
	"time"

	"github.com/example/trendyshop/pkg/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Entry is one audit record.
type Entry struct {
	ID        string    `bson:"_id,omitempty"`
	Service   string    `bson:"service"`
	Action    string    `bson:"action"`
	EntityID  string    `bson:"entity_id"`
	Data      bson.M    `bson:"data"`
	CreatedAt time.Time `bson:"created_at"`
}

type Log struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

func New(cfg *config.MongoDBConfig, logger *zap.Logger) (*Log, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	return &Log{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		logger:     logger,
	}, nil
}

// Record implements catalog.Recorder. It is called from a fire-and-forget
// goroutine, so it carries its own timeout.
func (l *Log) Record(action, entityID string, data map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry := Entry{
		Service:   "storefront",
		Action:    action,
		EntityID:  entityID,
		Data:      bson.M(data),
		CreatedAt: time.Now(),
	}
	if _, err := l.collection.InsertOne(ctx, entry); err != nil {
		l.logger.Warn("Failed to write audit entry",
			zap.String("action", action),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

// Recent returns the newest entries for an entity, newest first.
func (l *Log) Recent(ctx context.Context, entityID string, limit int64) ([]*Entry, error) {
	filter := bson.M{"entity_id": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := l.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*Entry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (l *Log) Close(ctx context.Context) error {
	return l.client.Disconnect(ctx)
}
