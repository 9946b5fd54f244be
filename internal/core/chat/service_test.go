package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayura/internal/core/dosha"
	"ayura/internal/infrastructure/storage"
	"ayura/internal/pkg/common"
)

type fakeCompleter struct {
	reply  string
	err    error
	system string
	calls  int
}

func (f *fakeCompleter) Complete(_ context.Context, system, _ string) (string, error) {
	f.calls++
	f.system = system
	return f.reply, f.err
}

// waitingCompleter 直到 context 結束才回傳
type waitingCompleter struct{}

func (waitingCompleter) Complete(ctx context.Context, _, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// ctxStore 與 mongo driver 相同，context 已結束時拒絕寫入
type ctxStore struct {
	*storage.MemoryStore
}

func (s ctxStore) InsertChatMessage(ctx context.Context, msg *common.ChatMessage) error {
	if err := ctx.Err(); err != nil {
		return common.WrapError(common.ErrPersistence, "", err)
	}
	return s.MemoryStore.InsertChatMessage(ctx, msg)
}

func newStore(t *testing.T, d string) *storage.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.CreateUser(ctx, &common.User{
		ID:      "u1",
		Email:   "a@b.co",
		Profile: common.Profile{HealthGoals: []string{"Better Sleep"}},
	}))
	if d != "" {
		require.NoError(t, store.UpdateUserDosha(ctx, "u1", common.DoshaResult{Dominant: d}))
	}
	return store
}

func TestTopic(t *testing.T) {
	tests := map[string]string{
		"What should I eat today?":       TopicFood,
		"How to balance my dosha?":       TopicBalance,
		"Why am I stressed lately?":      TopicStress,
		"I can't sleep well":             TopicSleep,
		"What's my ideal daily routine?": TopicRoutine,
		"Tell me a joke":                 TopicFallback,
		"restaurant":                     TopicFallback,
	}
	for msg, want := range tests {
		assert.Equal(t, want, Topic(msg), msg)
	}
}

func TestRuleReplyUsesContext(t *testing.T) {
	sleep := 5.0
	stress := 8
	cc := Context{
		Dosha:       dosha.Kapha,
		HealthGoals: []string{"Weight Loss"},
		Recent:      RecentMetrics{RecentSleep: &sleep, RecentStress: &stress},
	}

	assert.Contains(t, RuleReply("what should I eat", cc), "For Kapha")
	assert.Contains(t, RuleReply("what should I eat", cc), "weight loss")
	assert.Contains(t, RuleReply("I feel stressed", cc), "8/10")
	assert.Contains(t, RuleReply("sleep tips", cc), "5.0 hours")
	assert.Contains(t, RuleReply("my routine", cc), "Kapha")

	none := Context{}
	assert.Contains(t, RuleReply("balance please", none), "dosha quiz")
}

func TestSendUsesRulesWithoutCompleter(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, "vata")
	svc := NewService(store, nil)

	reply, err := svc.Send(ctx, "u1", "  What should I eat today?  ", RecentMetrics{})
	require.NoError(t, err)
	assert.Equal(t, SourceRules, reply.Source)
	assert.Equal(t, "What should I eat today?", reply.UserMessage)
	assert.Contains(t, reply.AIResponse, "For Vata")

	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, reply.ID, history[0].ID)
}

func TestSendPrefersCompleter(t *testing.T) {
	store := newStore(t, "pitta")
	fc := &fakeCompleter{reply: "Have some coconut water."}
	svc := NewService(store, fc)

	stress := 3
	reply, err := svc.Send(context.Background(), "u1", "hello", RecentMetrics{RecentStress: &stress})
	require.NoError(t, err)
	assert.Equal(t, SourceAI, reply.Source)
	assert.Equal(t, "Have some coconut water.", reply.AIResponse)
	assert.Equal(t, 1, fc.calls)
	assert.Contains(t, fc.system, "dominant dosha is pitta")
	assert.Contains(t, fc.system, "Better Sleep")
	assert.Contains(t, fc.system, "Recent stress: 3/10")
}

func TestSendFallsBackWhenCompleterFails(t *testing.T) {
	store := newStore(t, "vata")
	fc := &fakeCompleter{err: common.WrapError(common.ErrUpstreamFetch, "assistant unavailable", errors.New("boom"))}
	svc := NewService(store, fc)

	reply, err := svc.Send(context.Background(), "u1", "how do I balance", RecentMetrics{})
	require.NoError(t, err)
	assert.Equal(t, SourceRules, reply.Source)
	assert.Contains(t, reply.AIResponse, "balance Vata")
}

func TestSendValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newStore(t, ""), nil)

	_, err := svc.Send(ctx, "u1", "   ", RecentMetrics{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Send(ctx, "u1", strings.Repeat("a", MaxMessageLength+1), RecentMetrics{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	bad := 11
	_, err = svc.Send(ctx, "u1", "hi", RecentMetrics{RecentStress: &bad})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Send(ctx, "ghost", "hi", RecentMetrics{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestHistoryKeepsLatestOldestFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newStore(t, "kapha"), nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}

	for i := 0; i < HistoryLimit+5; i++ {
		_, err := svc.Send(ctx, "u1", fmt.Sprintf("message %d", i), RecentMetrics{})
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, HistoryLimit)
	assert.Equal(t, "message 5", history[0].UserMessage)
	assert.Equal(t, fmt.Sprintf("message %d", HistoryLimit+4), history[HistoryLimit-1].UserMessage)

	empty, err := svc.History(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSendPersistsRuleAnswerAfterModelDeadline(t *testing.T) {
	store := ctxStore{newStore(t, "vata")}
	svc := NewService(store, waitingCompleter{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	reply, err := svc.Send(ctx, "u1", "I can't sleep well", RecentMetrics{})
	require.NoError(t, err)
	assert.Equal(t, SourceRules, reply.Source)
	assert.NotEmpty(t, reply.AIResponse)

	history, err := svc.History(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, reply.ID, history[0].ID)
}
