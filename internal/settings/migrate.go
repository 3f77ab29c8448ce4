package settings

import (
	"encoding/json"
	"fmt"

	"gitodo/internal/model"
)

// Format identifies the schema shape of a stored settings blob.
type Format int

const (
	// FormatDual is the current schema with nested github/gitlab configs
	FormatDual Format = iota

	// FormatLegacy is the old flat single-level schema
	FormatLegacy
)

// rawSettings captures every field any historical schema shape ever stored,
// nested and flat at once.
type rawSettings struct {
	GitProvider      string              `json:"gitProvider"`
	Folder           string              `json:"folder"`
	AIProvider       string              `json:"aiProvider"`
	AIModel          string              `json:"aiModel"`
	GeminiAPIKey     string              `json:"geminiApiKey"`
	OpenRouterAPIKey string              `json:"openRouterApiKey"`
	GitHub           *model.GitHubConfig `json:"github"`
	GitLab           *model.GitLabConfig `json:"gitlab"`

	// Legacy flat fields
	PAT         string `json:"pat"`
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	InstanceURL string `json:"instanceUrl"`
	ProjectID   string `json:"projectId"`
	Token       string `json:"token"`
	Branch      string `json:"branch"`
}

// DetectFormat classifies a stored blob. Nested github/gitlab sub-objects
// mark it as current regardless of other keys; without them, any of the old
// flat credential keys marks it as legacy. Scalar fields shared by both
// schemas (gitProvider, folder, aiProvider) never count: a current-schema
// blob with no providers configured marshals as exactly those scalars, and
// it must stay classified as current so loading it never re-migrates.
// Unparseable input is reported as FormatDual and left for the caller's
// JSON parse to reject.
func DetectFormat(raw []byte) Format {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return FormatDual
	}

	if _, ok := keys["github"]; ok {
		return FormatDual
	}

	if _, ok := keys["gitlab"]; ok {
		return FormatDual
	}

	for _, key := range []string{"pat", "owner", "repo", "instanceUrl", "projectId", "token", "branch"} {
		if _, ok := keys[key]; ok {
			return FormatLegacy
		}
	}

	return FormatDual
}

// Migrate upgrades a stored blob of any historical shape to the current
// dual-provider schema. It is a pure function; the caller persists the
// result. Running it on already-migrated data is a no-op.
//
// A legacy blob carrying fields for both providers yields both sub-objects:
// mixed legacy state is preserved rather than discarded, so no credentials
// are lost.
func Migrate(raw []byte) (model.Settings, error) {
	var old rawSettings
	if err := json.Unmarshal(raw, &old); err != nil {
		return model.Settings{}, fmt.Errorf("parsing stored settings: %w", err)
	}

	cfg := model.Settings{
		GitProvider:      model.GitProvider(old.GitProvider),
		Folder:           old.Folder,
		AIProvider:       model.AIProvider(old.AIProvider),
		AIModel:          old.AIModel,
		GeminiAPIKey:     old.GeminiAPIKey,
		OpenRouterAPIKey: old.OpenRouterAPIKey,
		GitHub:           old.GitHub,
		GitLab:           old.GitLab,
	}

	if cfg.GitHub == nil && (old.PAT != "" || old.Owner != "" || old.Repo != "") {
		cfg.GitHub = &model.GitHubConfig{
			PAT:    old.PAT,
			Owner:  old.Owner,
			Repo:   old.Repo,
			Branch: old.Branch,
		}
	}

	if cfg.GitLab == nil && (old.InstanceURL != "" || old.ProjectID != "" || old.Token != "") {
		cfg.GitLab = &model.GitLabConfig{
			InstanceURL: old.InstanceURL,
			ProjectID:   old.ProjectID,
			Token:       old.Token,
			Branch:      old.Branch,
		}
	}

	cfg.Normalize()

	return cfg, nil
}
