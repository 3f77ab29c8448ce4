// Package model defines the configuration and local-state entities shared
// across the application.
//
// [Settings] is the root configuration object. It carries the active git
// provider selection, the AI provider selection, and up to two provider
// credential blocks ([GitHubConfig], [GitLabConfig]) at once, so switching
// providers never discards the other provider's credentials.
//
// The remaining types ([Checkpoint], [Draft], [ChatSession], [ViewMode])
// model the per-user local UI state persisted alongside the settings.
package model
