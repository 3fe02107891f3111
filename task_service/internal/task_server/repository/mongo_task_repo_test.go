package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"todo_list/task_service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func taskBSON(oid primitive.ObjectID, text, owner string, completed bool) bson.D {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "text", Value: text},
		{Key: "date", Value: "2024-06-01"},
		{Key: "completed", Value: completed},
		{Key: "owner_id", Value: owner},
		{Key: "created_at", Value: now},
		{Key: "updated_at", Value: now},
	}
}

func TestOwnerFilter(t *testing.T) {
	oid := primitive.NewObjectID()

	filter, err := ownerFilter(oid.Hex(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, oid, filter["_id"])
	assert.Equal(t, "u-1", filter["owner_id"])

	for _, bad := range []string{"", "123", "not-an-object-id", oid.Hex() + "00"} {
		_, err := ownerFilter(bad, "u-1")
		assert.ErrorIs(t, err, domain.ErrTaskNotFound, bad)
	}
}

func TestBuildSetDocument(t *testing.T) {
	now := time.Now().UTC()
	text := "buy bread"
	done := true

	set := buildSetDocument(domain.TaskPatch{Text: &text, Completed: &done, UpdatedAt: now})
	assert.Equal(t, bson.M{"text": "buy bread", "completed": true, "updated_at": now}, set)
	assert.NotContains(t, set, "owner_id")
	assert.NotContains(t, set, "date")
}

func TestNewTaskDocument_OwnerFromArgument(t *testing.T) {
	doc := newTaskDocument(domain.Task{Text: "x", OwnerID: "mallory"}, "alice")
	assert.Equal(t, "alice", doc.OwnerID)
	assert.True(t, doc.ID.IsZero())
}

func TestMongoTaskRepository(t *testing.T) {
	ctx := context.Background()
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("List", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.Coll, nil, time.Second)
		oid1, oid2 := primitive.NewObjectID(), primitive.NewObjectID()

		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, taskBSON(oid1, "buy milk", "u-1", false)),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch, taskBSON(oid2, "walk dog", "u-1", true)),
		)

		tasks, err := repo.List(ctx, "u-1")
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, oid1.Hex(), tasks[0].ID)
		assert.Equal(t, "buy milk", tasks[0].Text)
		assert.Equal(t, "u-1", tasks[0].OwnerID)
		assert.True(t, tasks[1].Completed)

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		assert.Equal(t, "find", started.CommandName)
	})

	mt.Run("List пустой", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.Coll, nil, time.Second)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		tasks, err := repo.List(ctx, "u-2")
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	mt.Run("Insert", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.Coll, nil, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.Insert(ctx, domain.Task{Text: "buy milk", Date: "2024-06-01", OwnerID: "mallory"}, "alice")
		require.NoError(t, err)
		assert.Len(t, created.ID, 24)
		assert.Equal(t, "alice", created.OwnerID)
	})

	mt.Run("Insert ошибка записи", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.Coll, nil, time.Second)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 100, Message: "write concern timeout"}))

		_, err := repo.Insert(ctx, domain.Task{Text: "x"}, "alice")
		assert.ErrorContains(t, err, "failed to insert task")
	})

	mt.Run("Update", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.Coll, nil, time.Second)
		oid := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: taskBSON(oid, "buy bread", "u-1", false)},
		})

		text := "buy bread"
		updated, err := repo.Update(ctx, oid.Hex(), "u-1", domain.TaskPatch{Text: &text, UpdatedAt: time.Now()})
		require.NoError(t, err)
		assert.Equal(t, "buy bread", updated.Text)
		assert.Equal(t, oid.Hex(), updated.ID)

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		query := started.Command.Lookup("query").Document()
		assert.Equal(t, "u-1", query.Lookup("owner_id").StringValue())
		set := started.Command.Lookup("update").Document().Lookup("$set").Document()
		_, err = set.LookupErr("owner_id")
		assert.Error(t, err, "owner_id never updated")
	})

	mt.Run("Update не найдено", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.Coll, nil, time.Second)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		done := true
		_, err := repo.Update(ctx, primitive.NewObjectID().Hex(), "u-2", domain.TaskPatch{Completed: &done})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	mt.Run("Update невалидный id", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.Coll, nil, time.Second)
		done := true
		_, err := repo.Update(ctx, "nope", "u-1", domain.TaskPatch{Completed: &done})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	mt.Run("Delete", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.Coll, nil, time.Second)
		id := primitive.NewObjectID().Hex()

		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}})
		require.NoError(t, repo.Delete(ctx, id, "u-1"))

		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})
		assert.ErrorIs(t, repo.Delete(ctx, id, "u-1"), domain.ErrTaskNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, "bad-id", "u-1"), domain.ErrTaskNotFound)
	})

	mt.Run("Ping", func(mt *mtest.T) {
		repo := NewMongoTaskRepository(mt.Coll, nil, time.Second)
		assert.Error(t, repo.Ping(ctx))

		repo = NewMongoTaskRepository(mt.Coll, pingFunc(func(context.Context) error { return errors.New("down") }), time.Second)
		assert.ErrorContains(t, repo.Ping(ctx), "down")
	})
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }
