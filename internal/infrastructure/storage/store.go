package storage

import (
	"context"
	"fmt"

	"ayura/internal/infrastructure/config"
	"ayura/internal/pkg/common"
)

// UserRepository 使用者文件
type UserRepository interface {
	CreateUser(ctx context.Context, user *common.User) error
	GetUserByID(ctx context.Context, id string) (*common.User, error)
	GetUserByEmail(ctx context.Context, email string) (*common.User, error)
	// UpdateUserDosha 覆寫使用者的主導體質與百分比並標記已完成問卷
	UpdateUserDosha(ctx context.Context, id string, result common.DoshaResult) error
	UpdateUserProfile(ctx context.Context, id string, profile common.Profile) error
}

// QuizRepository 問卷提交紀錄，只新增不修改
type QuizRepository interface {
	InsertQuizResponse(ctx context.Context, resp *common.QuizResponse) error
	// ListQuizResponses 由新到舊，limit <= 0 表示不限
	ListQuizResponses(ctx context.Context, userID string, limit int) ([]common.QuizResponse, error)
}

// PantryRepository 使用者食材庫存
type PantryRepository interface {
	// GetPantry 不存在時回傳空庫存
	GetPantry(ctx context.Context, userID string) (*common.Pantry, error)
	SavePantry(ctx context.Context, pantry *common.Pantry) error
	DeletePantry(ctx context.Context, userID string) error
}

// WellnessRepository 每日健康紀錄
type WellnessRepository interface {
	// UpsertLog 以 userId + date 為鍵新增或覆寫
	UpsertLog(ctx context.Context, log *common.WellnessLog) (*common.WellnessLog, error)
	GetLog(ctx context.Context, userID, date string) (*common.WellnessLog, error)
	// ListLogs 依日期由舊到新，from/to 為空表示不限（含端點）
	ListLogs(ctx context.Context, userID, from, to string) ([]common.WellnessLog, error)
}

// ChatRepository 對話紀錄
type ChatRepository interface {
	InsertChatMessage(ctx context.Context, msg *common.ChatMessage) error
	// ListChatMessages 回傳最近 limit 筆，由舊到新
	ListChatMessages(ctx context.Context, userID string, limit int) ([]common.ChatMessage, error)
}

// Store 文件儲存，提供 durable (mongo) 與 ephemeral (memory) 兩種實作
type Store interface {
	UserRepository
	QuizRepository
	PantryRepository
	WellnessRepository
	ChatRepository

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open 依設定建立儲存，啟動時選定一次，執行期間不會切換
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "memory":
		common.LogWarn("using in-memory storage, data is lost on restart")
		return NewMemoryStore(), nil
	case "mongo":
		return NewMongoStore(ctx, cfg.Mongo)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func persistenceError(op string, err error) error {
	return common.WrapError(common.ErrPersistence, "storage failure", fmt.Errorf("%s: %w", op, err))
}
