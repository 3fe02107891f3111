package mongodb

import (
	"context"
	"fmt"
	"sync"

	"todo_list/shared/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

type MongoRepoInterface interface {
	Collection() *mongo.Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

var _ MongoRepoInterface = (*MongoRepo)(nil)

// MongoRepo держит клиента MongoDB и коллекцию задач
type MongoRepo struct {
	closeOnce  sync.Once
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoRepo подключается к replica set.
// Чтение идёт с secondary (если есть), запись подтверждается большинством узлов.
func NewMongoRepo(ctx context.Context, conf *config.MongoDBConfig) (*MongoRepo, error) {
	client, err := mongo.Connect(ctx, clientOptions(conf))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	// Verify the connection
	pingCtx, cancel := context.WithTimeout(ctx, conf.ConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &MongoRepo{
		client:     client,
		collection: client.Database(conf.Database).Collection(conf.Collection),
	}, nil
}

// опции клиента: уровни согласованности задаются здесь и только здесь
func clientOptions(conf *config.MongoDBConfig) *options.ClientOptions {
	return options.Client().
		ApplyURI(conf.URI).
		SetReadPreference(readpref.SecondaryPreferred()).
		SetWriteConcern(writeconcern.Majority()).
		SetConnectTimeout(conf.ConnectTimeout).
		SetServerSelectionTimeout(conf.ConnectTimeout).
		SetMaxPoolSize(conf.MaxPoolSize)
}

// коллекция задач
func (r *MongoRepo) Collection() *mongo.Collection {
	return r.collection
}

// Ping проверяет доступность replica set (для readiness)
func (r *MongoRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Close отключает клиента (только один раз)
func (r *MongoRepo) Close(ctx context.Context) error {
	var err error
	r.closeOnce.Do(func() {
		if r.client != nil {
			err = r.client.Disconnect(ctx)
		}
	})
	return err
}
