package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"ayura/internal/pkg/common"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *MemoryStore
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewMemoryStore()
}

func (s *MemoryStoreSuite) createUser(email string) *common.User {
	u := &common.User{Name: "Test", Email: email, Role: common.RolePatient, CreatedAt: time.Now()}
	s.Require().NoError(s.store.CreateUser(s.ctx, u))
	return u
}

func (s *MemoryStoreSuite) TestUserLifecycle() {
	u := s.createUser("Asha@Example.com")
	s.NotEmpty(u.ID)

	byEmail, err := s.store.GetUserByEmail(s.ctx, "asha@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)

	err = s.store.CreateUser(s.ctx, &common.User{Email: "asha@example.com"})
	s.ErrorIs(err, common.ErrConflict)

	_, err = s.store.GetUserByID(s.ctx, "missing")
	s.ErrorIs(err, common.ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpdateUserDoshaOverwrites() {
	u := s.createUser("a@b.co")

	s.Require().NoError(s.store.UpdateUserDosha(s.ctx, u.ID, common.DoshaResult{
		Dominant: "vata", Percentages: map[string]int{"vata": 60, "pitta": 30, "kapha": 10},
	}))
	s.Require().NoError(s.store.UpdateUserDosha(s.ctx, u.ID, common.DoshaResult{
		Dominant: "kapha", Percentages: map[string]int{"vata": 0, "pitta": 0, "kapha": 100},
	}))

	got, err := s.store.GetUserByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("kapha", got.Dosha)
	s.Equal(100, got.DoshaPercentages["kapha"])
	s.True(got.QuizCompleted)

	s.ErrorIs(s.store.UpdateUserDosha(s.ctx, "missing", common.DoshaResult{}), common.ErrNotFound)
}

func (s *MemoryStoreSuite) TestReturnedUserIsACopy() {
	u := s.createUser("copy@b.co")
	got, err := s.store.GetUserByID(s.ctx, u.ID)
	s.Require().NoError(err)
	got.Name = "changed"

	again, err := s.store.GetUserByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("Test", again.Name)
}

func (s *MemoryStoreSuite) TestQuizResponsesNewestFirst() {
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.InsertQuizResponse(s.ctx, &common.QuizResponse{
			UserID:      "u1",
			DoshaResult: common.DoshaResult{Dominant: []string{"vata", "pitta", "kapha"}[i]},
		}))
	}
	s.Require().NoError(s.store.InsertQuizResponse(s.ctx, &common.QuizResponse{UserID: "u2"}))

	got, err := s.store.ListQuizResponses(s.ctx, "u1", 2)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("kapha", got[0].DoshaResult.Dominant)
	s.Equal("pitta", got[1].DoshaResult.Dominant)
}

func (s *MemoryStoreSuite) TestPantry() {
	p, err := s.store.GetPantry(s.ctx, "u1")
	s.Require().NoError(err)
	s.Empty(p.Items)

	s.Require().NoError(s.store.SavePantry(s.ctx, &common.Pantry{UserID: "u1", Items: []string{"rice", "ghee"}}))
	p, err = s.store.GetPantry(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal([]string{"rice", "ghee"}, p.Items)

	s.Require().NoError(s.store.DeletePantry(s.ctx, "u1"))
	p, err = s.store.GetPantry(s.ctx, "u1")
	s.Require().NoError(err)
	s.Empty(p.Items)
}

func (s *MemoryStoreSuite) TestWellnessLogsUpsertAndRange() {
	first, err := s.store.UpsertLog(s.ctx, &common.WellnessLog{UserID: "u1", Date: "2024-03-02", Stress: 5})
	s.Require().NoError(err)

	second, err := s.store.UpsertLog(s.ctx, &common.WellnessLog{UserID: "u1", Date: "2024-03-02", Stress: 2})
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal(2, second.Stress)

	_, err = s.store.UpsertLog(s.ctx, &common.WellnessLog{UserID: "u1", Date: "2024-03-01"})
	s.Require().NoError(err)
	_, err = s.store.UpsertLog(s.ctx, &common.WellnessLog{UserID: "u1", Date: "2024-02-01"})
	s.Require().NoError(err)

	logs, err := s.store.ListLogs(s.ctx, "u1", "2024-03-01", "")
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	s.Equal("2024-03-01", logs[0].Date)
	s.Equal("2024-03-02", logs[1].Date)

	_, err = s.store.GetLog(s.ctx, "u1", "2023-01-01")
	s.ErrorIs(err, common.ErrNotFound)
}

func (s *MemoryStoreSuite) TestChatHistoryOldestFirst() {
	for _, m := range []string{"one", "two", "three"} {
		s.Require().NoError(s.store.InsertChatMessage(s.ctx, &common.ChatMessage{UserID: "u1", UserMessage: m}))
	}

	got, err := s.store.ListChatMessages(s.ctx, "u1", 2)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("two", got[0].UserMessage)
	s.Equal("three", got[1].UserMessage)
}

func (s *MemoryStoreSuite) TestPingAfterClose() {
	s.NoError(s.store.Ping(s.ctx))
	s.Require().NoError(s.store.Close(s.ctx))
	s.ErrorIs(s.store.Ping(s.ctx), common.ErrPersistence)
}

func (s *MemoryStoreSuite) TestStoredRecordsAreCopied() {
	s.Require().NoError(s.store.InsertQuizResponse(s.ctx, &common.QuizResponse{
		UserID:      "u1",
		Answers:     []common.QuizAnswerRecord{{Dosha: "vata", Points: 3}},
		DoshaResult: common.DoshaResult{Dominant: "vata", Percentages: map[string]int{"vata": 100}},
	}))
	list, err := s.store.ListQuizResponses(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	list[0].Answers[0].Dosha = "kapha"
	list[0].DoshaResult.Percentages["vata"] = 0

	list, err = s.store.ListQuizResponses(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Equal("vata", list[0].Answers[0].Dosha)
	s.Equal(100, list[0].DoshaResult.Percentages["vata"])

	saved, err := s.store.UpsertLog(s.ctx, &common.WellnessLog{UserID: "u1", Date: "2024-03-01", Mood: []string{"calm"}})
	s.Require().NoError(err)
	saved.Mood[0] = "tense"

	got, err := s.store.GetLog(s.ctx, "u1", "2024-03-01")
	s.Require().NoError(err)
	got.Mood[0] = "restless"

	logs, err := s.store.ListLogs(s.ctx, "u1", "", "")
	s.Require().NoError(err)
	s.Require().Len(logs, 1)
	s.Equal([]string{"calm"}, logs[0].Mood)
	logs[0].Mood[0] = "tired"

	got, err = s.store.GetLog(s.ctx, "u1", "2024-03-01")
	s.Require().NoError(err)
	s.Equal([]string{"calm"}, got.Mood)
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func TestOpenSelectsDriver(t *testing.T) {
	store, err := Open(context.Background(), configFor("memory"))
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	_, err = Open(context.Background(), configFor("sqlite"))
	assert.Error(t, err)
}
