// Package state persists per-user UI state: task checkpoints, the retained
// draft, the AI chat session, the view mode and the selected todo.
//
// Checkpoints are capped at 20 per task with the oldest dropped first.
// Drafts and chat sessions expire 24 hours after their timestamp and are
// removed from the store when read past expiry, so stale entries clean
// themselves up.
package state
