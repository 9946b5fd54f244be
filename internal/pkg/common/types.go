package common

import (
	"encoding/json"
	"strings"
	"time"
)

// 使用者角色
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// Profile 使用者健康檔案
type Profile struct {
	Age                 int      `json:"age,omitempty" bson:"age,omitempty"`
	Gender              string   `json:"gender,omitempty" bson:"gender,omitempty"`
	Location            string   `json:"location,omitempty" bson:"location,omitempty"`
	HealthGoals         []string `json:"healthGoals,omitempty" bson:"healthGoals,omitempty"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty" bson:"dietaryRestrictions,omitempty"`
	CurrentHealthIssues []string `json:"currentHealthIssues,omitempty" bson:"currentHealthIssues,omitempty"`
	ProfilePicture      string   `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
}

// DoctorDetails 醫師註冊資料
type DoctorDetails struct {
	LicenseNumber      string `json:"licenseNumber" bson:"licenseNumber"`
	Specialization     string `json:"specialization" bson:"specialization"`
	Experience         string `json:"experience" bson:"experience"`
	Phone              string `json:"phone" bson:"phone"`
	Clinic             string `json:"clinic" bson:"clinic"`
	Location           string `json:"location" bson:"location"`
	VerificationStatus string `json:"verificationStatus" bson:"verificationStatus"`
}

// User 使用者文件
type User struct {
	ID               string         `json:"id" bson:"_id"`
	Name             string         `json:"name" bson:"name"`
	Email            string         `json:"email" bson:"email"`
	PasswordHash     string         `json:"-" bson:"password"`
	Role             string         `json:"role" bson:"role"`
	QuizCompleted    bool           `json:"quizCompleted" bson:"quizCompleted"`
	ProfileCompleted bool           `json:"profileCompleted" bson:"profileCompleted"`
	Dosha            string         `json:"dosha,omitempty" bson:"dosha,omitempty"`
	DoshaPercentages map[string]int `json:"doshaPercentages,omitempty" bson:"doshaPercentages,omitempty"`
	Profile          `bson:",inline"`
	Doctor           *DoctorDetails `json:"doctor,omitempty" bson:"doctor,omitempty"`
	CreatedAt        time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// QuizAnswerRecord 問卷答案紀錄
type QuizAnswerRecord struct {
	Dosha  string `json:"dosha" bson:"dosha"`
	Points int    `json:"points" bson:"points"`
}

// DoshaResult 體質計算結果
type DoshaResult struct {
	Dominant    string         `json:"dominant" bson:"dominant"`
	Percentages map[string]int `json:"percentages" bson:"percentages"`
}

// QuizResponse 問卷提交紀錄，寫入後不再修改
type QuizResponse struct {
	ID          string             `json:"id" bson:"_id"`
	UserID      string             `json:"userId" bson:"userId"`
	Answers     []QuizAnswerRecord `json:"answers" bson:"answers"`
	DoshaResult DoshaResult        `json:"doshaResult" bson:"doshaResult"`
	CompletedAt time.Time          `json:"completedAt" bson:"completedAt"`
}

// Pantry 使用者食材庫存
type Pantry struct {
	UserID    string    `json:"userId" bson:"_id"`
	Items     []string  `json:"items" bson:"items"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// SleepEntry 睡眠紀錄
type SleepEntry struct {
	Hours   float64 `json:"hours" bson:"hours" validate:"gte=0,lte=24"`
	Quality int     `json:"quality" bson:"quality" validate:"gte=0,lte=10"`
}

// WellnessLog 每日健康紀錄，每位使用者每日一筆
type WellnessLog struct {
	ID           string     `json:"id" bson:"_id"`
	UserID       string     `json:"userId" bson:"userId"`
	Date         string     `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Sleep        SleepEntry `json:"sleep" bson:"sleep"`
	Stress       int        `json:"stress" bson:"stress" validate:"gte=0,lte=10"`
	Digestion    int        `json:"digestion" bson:"digestion" validate:"gte=0,lte=10"`
	Energy       int        `json:"energy" bson:"energy" validate:"gte=0,lte=10"`
	Mood         []string   `json:"mood" bson:"mood" validate:"max=10,dive,max=40"`
	FoodConsumed string     `json:"foodConsumed" bson:"foodConsumed" validate:"max=2000"`
	Notes        string     `json:"notes" bson:"notes" validate:"max=2000"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// ChatMessage 一次對話往返
type ChatMessage struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"userId" bson:"userId"`
	UserMessage string    `json:"userMessage" bson:"userMessage"`
	AIResponse  string    `json:"aiResponse" bson:"aiResponse"`
	Source      string    `json:"source" bson:"source"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Recipe 外部食譜目錄項目（唯讀）
type Recipe struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Region      string   `json:"region,omitempty"`
	TotalTime   string   `json:"totalTime,omitempty"`
}

// UnmarshalJSON 接受不同來源的食譜欄位形狀：
// ingredients 可為字串陣列或含 name/ingredient 的物件陣列，title 亦可為 Recipe_title / name
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.RawMessage   `json:"id"`
		AltID       json.RawMessage   `json:"Recipe_id"`
		Title       string            `json:"title"`
		AltTitle    string            `json:"Recipe_title"`
		Name        string            `json:"name"`
		Ingredients []json.RawMessage `json:"ingredients"`
		Region      string            `json:"region"`
		TotalTime   json.RawMessage   `json:"total_time"`
		AltTime     json.RawMessage   `json:"totalTime"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.ID = rawScalar(raw.ID)
	if r.ID == "" {
		r.ID = rawScalar(raw.AltID)
	}
	r.Title = firstNonEmpty(raw.Title, raw.AltTitle, raw.Name)
	r.Region = raw.Region
	r.TotalTime = rawScalar(raw.TotalTime)
	if r.TotalTime == "" {
		r.TotalTime = rawScalar(raw.AltTime)
	}

	r.Ingredients = make([]string, 0, len(raw.Ingredients))
	for _, item := range raw.Ingredients {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			// null 與空白項目不算食材
			if strings.TrimSpace(name) != "" {
				r.Ingredients = append(r.Ingredients, name)
			}
			continue
		}
		var obj struct {
			Name       string `json:"name"`
			Ingredient string `json:"ingredient"`
			Phrase     string `json:"ingredient_Phrase"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return err
		}
		if n := firstNonEmpty(obj.Name, obj.Ingredient, obj.Phrase); n != "" {
			r.Ingredients = append(r.Ingredients, n)
		}
	}
	return nil
}

// rawScalar 將字串或數字的 JSON 值轉為字串
func rawScalar(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
