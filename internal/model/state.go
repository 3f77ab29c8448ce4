package model

import "time"

// stateExpiry is how long drafts and chat sessions survive before being
// dropped on read.
const stateExpiry = 24 * time.Hour

// ViewMode selects which todos the list shows.
type ViewMode string

const (
	// ViewModeActive shows open todos
	ViewModeActive ViewMode = "active"

	// ViewModeArchived shows archived todos
	ViewModeArchived ViewMode = "archived"
)

// NormalizeViewMode maps any unknown stored value to ViewModeActive.
func NormalizeViewMode(raw string) ViewMode {
	if ViewMode(raw) == ViewModeArchived {
		return ViewModeArchived
	}

	return ViewModeActive
}

// Checkpoint is an autosaved snapshot of a task's content.
type Checkpoint struct {
	// ID uniquely identifies the checkpoint
	ID string `json:"id"`

	// Content is the full markdown content at snapshot time
	Content string `json:"content"`

	// Timestamp is the snapshot time in milliseconds since the epoch
	Timestamp int64 `json:"timestamp"`

	// ChatMessage is the AI chat message that produced this snapshot, if any
	ChatMessage string `json:"chatMessage,omitempty"`

	// Description is an optional human-readable label
	Description string `json:"description,omitempty"`
}

// Draft is the single retained unsaved edit. It expires 24 hours after
// Timestamp.
type Draft struct {
	// TodoID is the content-hash-based todo identifier
	TodoID string `json:"todoId"`

	// Path is the repository path of the task file
	Path string `json:"path"`

	// StableDraftKey is a path-derived identifier that survives TodoID changes
	StableDraftKey string `json:"stableDraftKey"`

	// EditContent is the draft markdown in the editor
	EditContent string `json:"editContent"`

	// ViewContent is the rendered view content
	ViewContent string `json:"viewContent"`

	// Timestamp is the last edit time in milliseconds since the epoch
	Timestamp int64 `json:"timestamp"`
}

// Expired reports whether the draft is older than the retention window.
func (d *Draft) Expired(now time.Time) bool {
	return expiredAt(d.Timestamp, now)
}

// ChatMessage is a single exchange in an AI chat session.
type ChatMessage struct {
	// Role is "user" or "assistant"
	Role string `json:"role"`

	// Content is the message text
	Content string `json:"content"`
}

// ChatSession is the single retained AI chat session. It expires 24 hours
// after Timestamp; a session whose timestamp is missing or non-numeric is
// treated as expired.
type ChatSession struct {
	// TodoID is the todo the session belongs to
	TodoID string `json:"todoId"`

	// Messages is the conversation history
	Messages []ChatMessage `json:"messages"`

	// Timestamp is the last activity time in milliseconds since the epoch
	Timestamp int64 `json:"timestamp"`
}

// Expired reports whether the session is older than the retention window.
func (s *ChatSession) Expired(now time.Time) bool {
	return expiredAt(s.Timestamp, now)
}

func expiredAt(millis int64, now time.Time) bool {
	if millis <= 0 {
		return true
	}

	return now.Sub(time.UnixMilli(millis)) > stateExpiry
}
