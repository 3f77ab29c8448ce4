// Package cli renders settings and local state for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitodo/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// MaskSecret replaces all but the last four characters of a credential so
// it can be shown without leaking it.
func MaskSecret(secret string) string {
	if secret == "" {
		return mutedStyle.Render("(not set)")
	}

	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}

	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

// RenderSettings formats a settings object for terminal display with
// secrets masked.
func RenderSettings(cfg *model.Settings) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Settings") + "\n")
	writeRow(&b, "Git provider", string(cfg.GitProvider))
	writeRow(&b, "Folder", cfg.Folder)
	writeRow(&b, "AI provider", string(cfg.AIProvider))
	writeRow(&b, "AI model", cfg.AIModel)
	writeRow(&b, "Gemini key", MaskSecret(cfg.GeminiAPIKey))
	writeRow(&b, "OpenRouter key", MaskSecret(cfg.OpenRouterAPIKey))

	if cfg.GitHub != nil {
		b.WriteString(providerHeader("GitHub", cfg.GitProvider == model.GitProviderGitHub) + "\n")
		writeRow(&b, "  Owner", cfg.GitHub.Owner)
		writeRow(&b, "  Repo", cfg.GitHub.Repo)
		writeRow(&b, "  Branch", cfg.GitHub.Branch)
		writeRow(&b, "  PAT", MaskSecret(cfg.GitHub.PAT))
	}

	if cfg.GitLab != nil {
		b.WriteString(providerHeader("GitLab", cfg.GitProvider == model.GitProviderGitLab) + "\n")
		writeRow(&b, "  Instance", cfg.GitLab.InstanceURL)
		writeRow(&b, "  Project", cfg.GitLab.ProjectID)
		writeRow(&b, "  Branch", cfg.GitLab.Branch)
		writeRow(&b, "  Token", MaskSecret(cfg.GitLab.Token))
	}

	return b.String()
}

// RenderCheckpoints formats a task's checkpoint history, newest first.
func RenderCheckpoints(taskID string, checkpoints []model.Checkpoint) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Checkpoints for %s", taskID)) + "\n")

	if len(checkpoints) == 0 {
		b.WriteString(mutedStyle.Render("(none)") + "\n")

		return b.String()
	}

	for _, cp := range checkpoints {
		line := fmt.Sprintf("%s  %s", cp.ID, cp.Description)
		if cp.Description == "" {
			line = cp.ID
		}

		b.WriteString(valueStyle.Render(line) + "\n")
	}

	return b.String()
}

func providerHeader(name string, active bool) string {
	if active {
		return headerStyle.Render(name) + activeStyle.Render(" (active)")
	}

	return headerStyle.Render(name)
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label) + " " + valueStyle.Render(value) + "\n")
}
