package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitodo/internal/model"
	"gitodo/internal/store"
)

func newTestStore(t *testing.T) (*Store, *store.Memory) {
	t.Helper()

	kv := store.NewMemory()

	return NewStore(kv, nil), kv
}

func TestCheckpoints_AddAndList(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddCheckpoint("task1", model.Checkpoint{Content: "first"})
	s.AddCheckpoint("task1", model.Checkpoint{Content: "second"})

	checkpoints := s.Checkpoints("task1")
	require.Len(t, checkpoints, 2)

	// Newest first
	assert.Equal(t, "second", checkpoints[0].Content)
	assert.Equal(t, "first", checkpoints[1].Content)

	// IDs and timestamps are filled in
	assert.NotEmpty(t, checkpoints[0].ID)
	assert.NotZero(t, checkpoints[0].Timestamp)

	// Separate tasks have separate histories
	assert.Empty(t, s.Checkpoints("task2"))
}

func TestCheckpoints_CapDropsOldest(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < 25; i++ {
		s.AddCheckpoint("task1", model.Checkpoint{Content: fmt.Sprintf("cp-%d", i)})
	}

	checkpoints := s.Checkpoints("task1")
	require.Len(t, checkpoints, 20)

	assert.Equal(t, "cp-24", checkpoints[0].Content)
	assert.Equal(t, "cp-5", checkpoints[19].Content, "oldest entries must be dropped")
}

func TestCheckpoints_Remove(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddCheckpoint("task1", model.Checkpoint{Content: "x"})
	s.RemoveCheckpoints("task1")

	assert.Empty(t, s.Checkpoints("task1"))
}

func TestCheckpoints_CorruptBlob(t *testing.T) {
	s, kv := newTestStore(t)
	require.NoError(t, kv.Set("checkpoints_task1", `{broken`))

	assert.Nil(t, s.Checkpoints("task1"))
}

func TestSelectedTodo(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Empty(t, s.SelectedTodo())

	s.SetSelectedTodo("abc123")
	assert.Equal(t, "abc123", s.SelectedTodo())

	s.ClearSelectedTodo()
	assert.Empty(t, s.SelectedTodo())
}

func TestViewMode(t *testing.T) {
	s, kv := newTestStore(t)

	assert.Equal(t, model.ViewModeActive, s.ViewMode())

	s.SetViewMode(model.ViewModeArchived)
	assert.Equal(t, model.ViewModeArchived, s.ViewMode())

	// Unknown stored values normalize to active
	require.NoError(t, kv.Set("viewMode", "bogus"))
	assert.Equal(t, model.ViewModeActive, s.ViewMode())
}

func TestDraft_SaveAndLoad(t *testing.T) {
	s, _ := newTestStore(t)

	s.SaveDraft(model.Draft{TodoID: "t1", Path: "todos/t1.md", EditContent: "draft text"})

	draft := s.Draft()
	require.NotNil(t, draft)
	assert.Equal(t, "t1", draft.TodoID)
	assert.Equal(t, "draft text", draft.EditContent)
	assert.NotZero(t, draft.Timestamp)
}

func TestDraft_OnlyOneRetained(t *testing.T) {
	s, _ := newTestStore(t)

	s.SaveDraft(model.Draft{TodoID: "t1"})
	s.SaveDraft(model.Draft{TodoID: "t2"})

	draft := s.Draft()
	require.NotNil(t, draft)
	assert.Equal(t, "t2", draft.TodoID)
}

func TestDraft_Expiry(t *testing.T) {
	s, kv := newTestStore(t)

	now := time.Now()
	s.SaveDraft(model.Draft{TodoID: "t1", Timestamp: now.Add(-25 * time.Hour).UnixMilli()})

	assert.Nil(t, s.Draft())

	// The expired entry is removed from the store
	_, ok, err := kv.Get("todoDraft")
	require.NoError(t, err)
	assert.False(t, ok, "expired draft must be removed on read")
}

func TestChatSession_SaveAndLoad(t *testing.T) {
	s, _ := newTestStore(t)

	s.SaveChatSession(model.ChatSession{
		TodoID:   "t1",
		Messages: []model.ChatMessage{{Role: "user", Content: "help me"}},
	})

	session := s.ChatSession()
	require.NotNil(t, session)
	assert.Equal(t, "t1", session.TodoID)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, "help me", session.Messages[0].Content)
}

func TestChatSession_NonNumericTimestampExpired(t *testing.T) {
	s, kv := newTestStore(t)
	require.NoError(t, kv.Set("aiChatSession", `{"todoId":"t1","timestamp":"yesterday"}`))

	assert.Nil(t, s.ChatSession())

	_, ok, err := kv.Get("aiChatSession")
	require.NoError(t, err)
	assert.False(t, ok, "unreadable session must be removed on read")
}

func TestChatSession_MissingTimestampExpired(t *testing.T) {
	s, kv := newTestStore(t)
	require.NoError(t, kv.Set("aiChatSession", `{"todoId":"t1"}`))

	assert.Nil(t, s.ChatSession())
}

func TestDraft_FrozenClock(t *testing.T) {
	s, _ := newTestStore(t)

	frozen := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return frozen }

	s.SaveDraft(model.Draft{TodoID: "t1"})

	draft := s.Draft()
	require.NotNil(t, draft)
	assert.Equal(t, frozen.UnixMilli(), draft.Timestamp)

	// Advance past the retention window
	s.now = func() time.Time { return frozen.Add(24*time.Hour + time.Minute) }
	assert.Nil(t, s.Draft())
}
