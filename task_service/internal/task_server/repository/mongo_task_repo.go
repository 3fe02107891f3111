package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todo_list/task_service/internal/domain"
	taskinterfaces "todo_list/task_service/internal/task_interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ taskinterfaces.TaskStore = (*MongoTaskRepository)(nil)

// pinger - то, что умеет проверять доступность базы (MongoRepo из shared/mongo_db)
type pinger interface {
	Ping(ctx context.Context) error
}

// репозиторий задач поверх коллекции MongoDB.
// Уровни согласованности (secondary-preferred / majority) заданы на клиенте.
type MongoTaskRepository struct {
	coll         *mongo.Collection
	pinger       pinger
	writeTimeout time.Duration
}

func NewMongoTaskRepository(coll *mongo.Collection, pinger pinger, writeTimeout time.Duration) *MongoTaskRepository {
	return &MongoTaskRepository{
		coll:         coll,
		pinger:       pinger,
		writeTimeout: writeTimeout,
	}
}

// контекст с таймаутом для majority записи
func (r *MongoTaskRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.writeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.writeTimeout)
}

// задачи владельца в естественном порядке коллекции
func (r *MongoTaskRepository) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, nil
}

func (r *MongoTaskRepository) Insert(ctx context.Context, task domain.Task, ownerID string) (*domain.Task, error) {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	doc := newTaskDocument(task, ownerID)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid

	created := doc.toDomain()
	return &created, nil
}

// одно атомарное обновление по {_id, owner_id}, возвращается документ после обновления
func (r *MongoTaskRepository) Update(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error) {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDocument
	err = r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": buildSetDocument(patch)}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	updated := doc.toDomain()
	return &updated, nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return err
	}

	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *MongoTaskRepository) Ping(ctx context.Context) error {
	if r.pinger == nil {
		return errors.New("mongo client is not configured")
	}
	return r.pinger.Ping(ctx)
}
