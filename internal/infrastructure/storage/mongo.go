package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"ayura/internal/infrastructure/config"
	"ayura/internal/pkg/common"
)

// 集合名稱
const (
	usersCollection         = "users"
	quizResponsesCollection = "quizResponses"
	pantriesCollection      = "pantries"
	wellnessCollection      = "wellnessLogs"
	chatCollection          = "chatMessages"
)

// MongoStore MongoDB 儲存
type MongoStore struct {
	client   *mongo.Client
	users    *mongo.Collection
	quiz     *mongo.Collection
	pantries *mongo.Collection
	logs     *mongo.Collection
	chats    *mongo.Collection
}

// NewMongoStore 連線並確認 MongoDB 可用，連不上時回傳錯誤
func NewMongoStore(ctx context.Context, cfg config.MongoConfig) (*MongoStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Database("admin").RunCommand(pingCtx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	store := NewMongoStoreFromDatabase(client, client.Database(cfg.Database))
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	common.LogInfo("connected to mongodb", zap.String("database", cfg.Database))
	return store, nil
}

// NewMongoStoreFromDatabase 以既有連線建立儲存
func NewMongoStoreFromDatabase(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{
		client:   client,
		users:    db.Collection(usersCollection),
		quiz:     db.Collection(quizResponsesCollection),
		pantries: db.Collection(pantriesCollection),
		logs:     db.Collection(wellnessCollection),
		chats:    db.Collection(chatCollection),
	}
}

// EnsureIndexes 建立唯一索引與查詢索引
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		coll  *mongo.Collection
		model mongo.IndexModel
	}{
		{s.users, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{s.quiz, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "completedAt", Value: -1}}}},
		{s.logs, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{s.chats, mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}}},
	}

	for _, idx := range indexes {
		if _, err := idx.coll.Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.coll.Name(), err)
		}
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *common.User) error {
	if user.ID == "" {
		user.ID = common.GenerateUUID()
	}
	user.Email = strings.ToLower(user.Email)

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.WrapError(common.ErrConflict, "email already registered", err)
		}
		return persistenceError("insert user", err)
	}
	return nil
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*common.User, error) {
	var user common.User
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.WrapError(common.ErrNotFound, "user not found", err)
		}
		return nil, persistenceError("find user", err)
	}
	return &user, nil
}

func (s *MongoStore) GetUserByID(ctx context.Context, id string) (*common.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*common.User, error) {
	return s.findUser(ctx, bson.M{"email": strings.ToLower(email)})
}

func (s *MongoStore) updateUser(ctx context.Context, id string, set bson.M) error {
	set["updatedAt"] = time.Now()
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return persistenceError("update user", err)
	}
	if res.MatchedCount == 0 {
		return common.WrapError(common.ErrNotFound, "user not found", nil)
	}
	return nil
}

func (s *MongoStore) UpdateUserDosha(ctx context.Context, id string, result common.DoshaResult) error {
	return s.updateUser(ctx, id, bson.M{
		"dosha":            result.Dominant,
		"doshaPercentages": result.Percentages,
		"quizCompleted":    true,
	})
}

func (s *MongoStore) UpdateUserProfile(ctx context.Context, id string, profile common.Profile) error {
	return s.updateUser(ctx, id, bson.M{
		"age":                 profile.Age,
		"gender":              profile.Gender,
		"location":            profile.Location,
		"healthGoals":         profile.HealthGoals,
		"dietaryRestrictions": profile.DietaryRestrictions,
		"currentHealthIssues": profile.CurrentHealthIssues,
		"profilePicture":      profile.ProfilePicture,
		"profileCompleted":    true,
	})
}

func (s *MongoStore) InsertQuizResponse(ctx context.Context, resp *common.QuizResponse) error {
	if resp.ID == "" {
		resp.ID = common.GenerateUUID()
	}
	if _, err := s.quiz.InsertOne(ctx, resp); err != nil {
		return persistenceError("insert quiz response", err)
	}
	return nil
}

func (s *MongoStore) ListQuizResponses(ctx context.Context, userID string, limit int) ([]common.QuizResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.quiz.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, persistenceError("find quiz responses", err)
	}
	out := make([]common.QuizResponse, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, persistenceError("decode quiz responses", err)
	}
	return out, nil
}

func (s *MongoStore) GetPantry(ctx context.Context, userID string) (*common.Pantry, error) {
	var p common.Pantry
	if err := s.pantries.FindOne(ctx, bson.M{"_id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &common.Pantry{UserID: userID, Items: []string{}}, nil
		}
		return nil, persistenceError("find pantry", err)
	}
	if p.Items == nil {
		p.Items = []string{}
	}
	return &p, nil
}

func (s *MongoStore) SavePantry(ctx context.Context, pantry *common.Pantry) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.pantries.ReplaceOne(ctx, bson.M{"_id": pantry.UserID}, pantry, opts); err != nil {
		return persistenceError("save pantry", err)
	}
	return nil
}

func (s *MongoStore) DeletePantry(ctx context.Context, userID string) error {
	if _, err := s.pantries.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return persistenceError("delete pantry", err)
	}
	return nil
}

func (s *MongoStore) UpsertLog(ctx context.Context, log *common.WellnessLog) (*common.WellnessLog, error) {
	if log.ID == "" {
		log.ID = common.GenerateUUID()
	}
	filter := bson.M{"userId": log.UserID, "date": log.Date}
	update := bson.M{
		"$set": bson.M{
			"sleep":        log.Sleep,
			"stress":       log.Stress,
			"digestion":    log.Digestion,
			"energy":       log.Energy,
			"mood":         log.Mood,
			"foodConsumed": log.FoodConsumed,
			"notes":        log.Notes,
			"updatedAt":    log.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       log.ID,
			"createdAt": log.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved common.WellnessLog
	if err := s.logs.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, persistenceError("upsert wellness log", err)
	}
	return &saved, nil
}

func (s *MongoStore) GetLog(ctx context.Context, userID, date string) (*common.WellnessLog, error) {
	var l common.WellnessLog
	if err := s.logs.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.WrapError(common.ErrNotFound, "log not found", err)
		}
		return nil, persistenceError("find wellness log", err)
	}
	return &l, nil
}

func (s *MongoStore) ListLogs(ctx context.Context, userID, from, to string) ([]common.WellnessLog, error) {
	filter := bson.M{"userId": userID}
	dateRange := bson.M{}
	if from != "" {
		dateRange["$gte"] = from
	}
	if to != "" {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	cursor, err := s.logs.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, persistenceError("find wellness logs", err)
	}
	out := make([]common.WellnessLog, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, persistenceError("decode wellness logs", err)
	}
	return out, nil
}

func (s *MongoStore) InsertChatMessage(ctx context.Context, msg *common.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = common.GenerateUUID()
	}
	if _, err := s.chats.InsertOne(ctx, msg); err != nil {
		return persistenceError("insert chat message", err)
	}
	return nil
}

func (s *MongoStore) ListChatMessages(ctx context.Context, userID string, limit int) ([]common.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.chats.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, persistenceError("find chat messages", err)
	}
	out := make([]common.ChatMessage, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, persistenceError("decode chat messages", err)
	}
	// 查詢為新到舊，反轉為舊到新
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return persistenceError("ping", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
