package state

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gitodo/internal/encoding"
	"gitodo/internal/model"
	"gitodo/internal/store"
)

const (
	keyCheckpointsPrefix = "checkpoints_"
	keySelectedTodo      = "selectedTodoId"
	keyViewMode          = "viewMode"
	keyDraft             = "todoDraft"
	keyChatSession       = "aiChatSession"

	// maxCheckpoints caps the history per task; the oldest entries are
	// dropped first.
	maxCheckpoints = 20
)

// Store persists per-user UI state on the key-value store. Like the
// settings store, every failure is logged and converted to a safe default;
// callers never see an error.
type Store struct {
	kv     store.KeyValueStore
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a state store on top of kv. A nil logger falls back to
// slog.Default.
func NewStore(kv store.KeyValueStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{kv: kv, logger: logger, now: time.Now}
}

// Checkpoints returns the stored snapshots for a task, newest first.
func (s *Store) Checkpoints(taskID string) []model.Checkpoint {
	raw, ok := s.get(keyCheckpointsPrefix + taskID)
	if !ok {
		return nil
	}

	list, err := encoding.ParseJSON[[]model.Checkpoint]([]byte(raw))
	if err != nil {
		s.logger.Error("failed to parse checkpoints", "task", taskID, "error", err)

		return nil
	}

	return *list
}

// AddCheckpoint prepends a snapshot to the task's history, dropping the
// oldest entries beyond the cap. Missing ID and timestamp are filled in.
func (s *Store) AddCheckpoint(taskID string, cp model.Checkpoint) {
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}

	if cp.Timestamp == 0 {
		cp.Timestamp = s.now().UnixMilli()
	}

	list := append([]model.Checkpoint{cp}, s.Checkpoints(taskID)...)
	if len(list) > maxCheckpoints {
		list = list[:maxCheckpoints]
	}

	s.set(keyCheckpointsPrefix+taskID, list)
}

// RemoveCheckpoints drops the whole history for a task.
func (s *Store) RemoveCheckpoints(taskID string) {
	s.remove(keyCheckpointsPrefix + taskID)
}

// SelectedTodo returns the last selected todo id, or "".
func (s *Store) SelectedTodo() string {
	raw, _ := s.get(keySelectedTodo)

	return raw
}

// SetSelectedTodo stores the selected todo id.
func (s *Store) SetSelectedTodo(id string) {
	if err := s.kv.Set(keySelectedTodo, id); err != nil {
		s.logger.Error("failed to store selected todo", "error", err)
	}
}

// ClearSelectedTodo removes the selection.
func (s *Store) ClearSelectedTodo() {
	s.remove(keySelectedTodo)
}

// ViewMode returns the stored view mode, normalized to active for any
// unknown value.
func (s *Store) ViewMode() model.ViewMode {
	raw, _ := s.get(keyViewMode)

	return model.NormalizeViewMode(raw)
}

// SetViewMode stores the view mode.
func (s *Store) SetViewMode(mode model.ViewMode) {
	if err := s.kv.Set(keyViewMode, string(mode)); err != nil {
		s.logger.Error("failed to store view mode", "error", err)
	}
}

// SaveDraft stores the single retained draft, replacing any previous one.
// A zero timestamp is set to now.
func (s *Store) SaveDraft(d model.Draft) {
	if d.Timestamp == 0 {
		d.Timestamp = s.now().UnixMilli()
	}

	s.set(keyDraft, d)
}

// Draft returns the stored draft, or nil if there is none or it has
// expired. Expired and unreadable drafts are removed from the store.
func (s *Store) Draft() *model.Draft {
	raw, ok := s.get(keyDraft)
	if !ok {
		return nil
	}

	draft, err := encoding.ParseJSON[model.Draft]([]byte(raw))
	if err != nil {
		s.logger.Error("failed to parse draft", "error", err)
		s.remove(keyDraft)

		return nil
	}

	if draft.Expired(s.now()) {
		s.remove(keyDraft)

		return nil
	}

	return draft
}

// ClearDraft removes the stored draft.
func (s *Store) ClearDraft() {
	s.remove(keyDraft)
}

// SaveChatSession stores the single retained AI chat session.
// A zero timestamp is set to now.
func (s *Store) SaveChatSession(session model.ChatSession) {
	if session.Timestamp == 0 {
		session.Timestamp = s.now().UnixMilli()
	}

	s.set(keyChatSession, session)
}

// ChatSession returns the stored chat session, or nil if there is none or
// it has expired. A session whose timestamp is missing or non-numeric is
// treated as expired.
func (s *Store) ChatSession() *model.ChatSession {
	raw, ok := s.get(keyChatSession)
	if !ok {
		return nil
	}

	session, err := encoding.ParseJSON[model.ChatSession]([]byte(raw))
	if err != nil {
		s.logger.Error("failed to parse chat session", "error", err)
		s.remove(keyChatSession)

		return nil
	}

	if session.Expired(s.now()) {
		s.remove(keyChatSession)

		return nil
	}

	return session
}

// ClearChatSession removes the stored chat session.
func (s *Store) ClearChatSession() {
	s.remove(keyChatSession)
}

func (s *Store) get(key string) (string, bool) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Error("failed to read state", "key", key, "error", err)

		return "", false
	}

	return raw, ok
}

func (s *Store) set(key string, value any) {
	data, err := encoding.ToJSON(value)
	if err != nil {
		s.logger.Error("failed to serialize state", "key", key, "error", err)

		return
	}

	if err := s.kv.Set(key, string(data)); err != nil {
		s.logger.Error("failed to store state", "key", key, "error", err)
	}
}

func (s *Store) remove(key string) {
	if err := s.kv.Remove(key); err != nil {
		s.logger.Error("failed to remove state", "key", key, "error", err)
	}
}
