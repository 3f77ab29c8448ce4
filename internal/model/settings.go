package model

// GitProvider selects which git backend the app talks to.
type GitProvider string

const (
	// GitProviderGitHub stores todos in a GitHub repository
	GitProviderGitHub GitProvider = "github"

	// GitProviderGitLab stores todos in a GitLab project
	GitProviderGitLab GitProvider = "gitlab"
)

// AIProvider selects which AI backend generates task content.
type AIProvider string

const (
	// AIProviderGemini uses the Google Gemini API
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenRouter uses the OpenRouter API
	AIProviderOpenRouter AIProvider = "openrouter"
)

const (
	// DefaultFolder is the root directory for task files within the repository
	DefaultFolder = "todos"

	// DefaultBranch is the branch used when none is configured
	DefaultBranch = "main"

	// DefaultGitLabURL is the instance URL used when none is configured
	DefaultGitLabURL = "https://gitlab.com"

	// DefaultAIModel is the canonical model default for the Gemini provider
	DefaultAIModel = "gemini-2.5-flash"
)

// GitHubConfig holds the credentials for a GitHub-backed todo repository.
type GitHubConfig struct {
	// PAT is the personal access token used to authenticate
	PAT string `json:"pat"`

	// Owner is the repository owner (user or organization)
	Owner string `json:"owner"`

	// Repo is the repository name
	Repo string `json:"repo"`

	// Branch is the branch task files are committed to
	Branch string `json:"branch"`
}

// Complete reports whether all required GitHub fields are present.
func (c *GitHubConfig) Complete() bool {
	return c != nil && c.PAT != "" && c.Owner != "" && c.Repo != ""
}

// GitLabConfig holds the credentials for a GitLab-backed todo project.
type GitLabConfig struct {
	// InstanceURL is the base URL of the GitLab instance
	InstanceURL string `json:"instanceUrl"`

	// ProjectID is the numeric or path-style project identifier
	ProjectID string `json:"projectId"`

	// Token is the project or personal access token
	Token string `json:"token"`

	// Branch is the branch task files are committed to
	Branch string `json:"branch"`
}

// Complete reports whether all required GitLab fields are present.
func (c *GitLabConfig) Complete() bool {
	return c != nil && c.InstanceURL != "" && c.ProjectID != "" && c.Token != ""
}

// Settings is the root configuration entity. Both provider configs may be
// present at once; GitProvider selects the active one. Switching providers
// keeps the other provider's last-entered credentials.
type Settings struct {
	// GitProvider selects the active git backend
	GitProvider GitProvider `json:"gitProvider"`

	// Folder is the root directory for task files within the repository
	Folder string `json:"folder"`

	// AIProvider selects the AI backend
	AIProvider AIProvider `json:"aiProvider"`

	// AIModel is the model identifier for the AI provider
	AIModel string `json:"aiModel"`

	// GeminiAPIKey is the Gemini API credential
	GeminiAPIKey string `json:"geminiApiKey"`

	// OpenRouterAPIKey is the OpenRouter API credential
	OpenRouterAPIKey string `json:"openRouterApiKey"`

	// GitHub is the GitHub provider configuration, if any
	GitHub *GitHubConfig `json:"github,omitempty"`

	// GitLab is the GitLab provider configuration, if any
	GitLab *GitLabConfig `json:"gitlab,omitempty"`
}

// DefaultSettings returns a Settings with defaults applied and no provider
// configs.
func DefaultSettings() Settings {
	return Settings{
		GitProvider: GitProviderGitHub,
		Folder:      DefaultFolder,
		AIProvider:  AIProviderGemini,
		AIModel:     DefaultAIModel,
	}
}

// Normalize coerces empty fields to their defaults in place. It never
// removes data and is safe to call repeatedly.
func (s *Settings) Normalize() {
	if s.GitProvider != GitProviderGitLab {
		s.GitProvider = GitProviderGitHub
	}

	if s.Folder == "" {
		s.Folder = DefaultFolder
	}

	if s.AIProvider != AIProviderOpenRouter {
		s.AIProvider = AIProviderGemini
	}

	if s.AIModel == "" {
		s.AIModel = DefaultAIModel
	}

	if s.GitHub != nil && s.GitHub.Branch == "" {
		s.GitHub.Branch = DefaultBranch
	}

	if s.GitLab != nil {
		if s.GitLab.InstanceURL == "" {
			s.GitLab.InstanceURL = DefaultGitLabURL
		}

		if s.GitLab.Branch == "" {
			s.GitLab.Branch = DefaultBranch
		}
	}
}

// Usable reports whether the active provider has a complete configuration.
func (s *Settings) Usable() bool {
	if s.GitProvider == GitProviderGitLab {
		return s.GitLab.Complete()
	}

	return s.GitHub.Complete()
}
