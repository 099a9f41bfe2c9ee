package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// issueCollectionName — коллекция документов issue в базе igm.
const issueCollectionName = "Issue"

// Connect открывает клиент mongo и проверяет соединение ping-ом.
func Connect(ctx context.Context, url string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(url).SetMinPoolSize(1))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func Disconnect(ctx context.Context, client *mongo.Client) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("database: disconnect: %v", err)
	}
}

// IssueCollection возвращает коллекцию issue указанной базы.
func IssueCollection(client *mongo.Client, database string) *mongo.Collection {
	return client.Database(database).Collection(issueCollectionName)
}

// EnsureIndexes создаёт индексы коллекции issue. Выборка списка issue
// фильтруется по source_id, поэтому индекс по нему обязателен.
func EnsureIndexes(ctx context.Context, client *mongo.Client, database string) error {
	coll := IssueCollection(client, database)
	names, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "source_id", Value: 1}}},
		{Keys: bson.D{{Key: "network_issue_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	log.Printf("database: indexes ok: %v", names)
	return nil
}
