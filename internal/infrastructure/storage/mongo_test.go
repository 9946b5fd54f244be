package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"ayura/internal/infrastructure/config"
	"ayura/internal/pkg/common"
)

func configFor(driver string) config.StorageConfig {
	return config.StorageConfig{Driver: driver}
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create user", func(mt *mtest.T) {
		store := NewMongoStoreFromDatabase(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &common.User{Name: "Asha", Email: "Asha@Example.com"}
		require.NoError(mt, store.CreateUser(ctx, u))
		assert.NotEmpty(mt, u.ID)
		assert.Equal(mt, "asha@example.com", u.Email)
	})

	mt.Run("duplicate email is a conflict", func(mt *mtest.T) {
		store := NewMongoStoreFromDatabase(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := store.CreateUser(ctx, &common.User{Email: "dup@example.com"})
		assert.ErrorIs(mt, err, common.ErrConflict)
	})

	mt.Run("get user", func(mt *mtest.T) {
		store := NewMongoStoreFromDatabase(mt.Client, mt.DB)
		ns := mt.DB.Name() + "." + usersCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "email", Value: "a@b.co"},
			{Key: "password", Value: "hash"},
			{Key: "dosha", Value: "pitta"},
			{Key: "age", Value: 31},
		}))

		u, err := store.GetUserByID(ctx, "u1")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", u.ID)
		assert.Equal(mt, "hash", u.PasswordHash)
		assert.Equal(mt, "pitta", u.Dosha)
		assert.Equal(mt, 31, u.Age)
	})

	mt.Run("missing user is not found", func(mt *mtest.T) {
		store := NewMongoStoreFromDatabase(mt.Client, mt.DB)
		ns := mt.DB.Name() + "." + usersCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := store.GetUserByEmail(ctx, "nobody@b.co")
		assert.ErrorIs(mt, err, common.ErrNotFound)
	})

	mt.Run("update dosha", func(mt *mtest.T) {
		store := NewMongoStoreFromDatabase(mt.Client, mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})

		err := store.UpdateUserDosha(ctx, "u1", common.DoshaResult{Dominant: "vata", Percentages: map[string]int{"vata": 100}})
		assert.NoError(mt, err)
	})

	mt.Run("update unknown user", func(mt *mtest.T) {
		store := NewMongoStoreFromDatabase(mt.Client, mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := store.UpdateUserProfile(ctx, "ghost", common.Profile{Age: 20})
		assert.ErrorIs(mt, err, common.ErrNotFound)
	})

	mt.Run("command failure is a persistence error", func(mt *mtest.T) {
		store := NewMongoStoreFromDatabase(mt.Client, mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
		}))

		err := store.InsertQuizResponse(ctx, &common.QuizResponse{UserID: "u1"})
		assert.ErrorIs(mt, err, common.ErrPersistence)
	})

	mt.Run("missing pantry is empty", func(mt *mtest.T) {
		store := NewMongoStoreFromDatabase(mt.Client, mt.DB)
		ns := mt.DB.Name() + "." + pantriesCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		p, err := store.GetPantry(ctx, "u1")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", p.UserID)
		assert.Empty(mt, p.Items)
	})

	mt.Run("upsert wellness log", func(mt *mtest.T) {
		store := NewMongoStoreFromDatabase(mt.Client, mt.DB)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{
				{Key: "_id", Value: "log1"},
				{Key: "userId", Value: "u1"},
				{Key: "date", Value: "2024-03-01"},
				{Key: "stress", Value: 4},
			}},
		})

		saved, err := store.UpsertLog(ctx, &common.WellnessLog{UserID: "u1", Date: "2024-03-01", Stress: 4})
		require.NoError(mt, err)
		assert.Equal(mt, "log1", saved.ID)
		assert.Equal(mt, 4, saved.Stress)
	})

	mt.Run("chat history is returned oldest first", func(mt *mtest.T) {
		store := NewMongoStoreFromDatabase(mt.Client, mt.DB)
		ns := mt.DB.Name() + "." + chatCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "c2"}, {Key: "userId", Value: "u1"}, {Key: "userMessage", Value: "second"}},
			bson.D{{Key: "_id", Value: "c1"}, {Key: "userId", Value: "u1"}, {Key: "userMessage", Value: "first"}},
		))

		msgs, err := store.ListChatMessages(ctx, "u1", 50)
		require.NoError(mt, err)
		require.Len(mt, msgs, 2)
		assert.Equal(mt, "first", msgs[0].UserMessage)
		assert.Equal(mt, "second", msgs[1].UserMessage)
	})
}
