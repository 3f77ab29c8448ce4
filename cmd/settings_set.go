package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitodo/internal/model"
	"gitodo/internal/settings"
)

var (
	setProvider   string
	setFolder     string
	setAIProvider string
	setAIModel    string
	setGeminiKey  string
	setORKey      string

	setGHOwner  string
	setGHRepo   string
	setGHBranch string
	setGHPAT    string

	setGLInstance string
	setGLProject  string
	setGLToken    string
	setGLBranch   string

	setPromptSecrets bool
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change configuration fields",
	Long: `Updates the stored configuration. Only the given flags change; everything
else is preserved, including the credentials of the inactive provider.

Use --prompt-secrets to enter the PAT or token interactively without it
landing in shell history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, err := getStore()
		if err != nil {
			return err
		}

		settingsStore := settings.NewStore(kv, logger)

		cfg := settingsStore.Load()
		if cfg == nil {
			defaults := model.DefaultSettings()
			cfg = &defaults
		}

		if setProvider != "" {
			cfg.GitProvider = model.GitProvider(setProvider)
		}

		if setFolder != "" {
			cfg.Folder = setFolder
		}

		if setAIProvider != "" {
			cfg.AIProvider = model.AIProvider(setAIProvider)
		}

		if setAIModel != "" {
			cfg.AIModel = setAIModel
		}

		if setGeminiKey != "" {
			cfg.GeminiAPIKey = setGeminiKey
		}

		if setORKey != "" {
			cfg.OpenRouterAPIKey = setORKey
		}

		if err := applyGitHubFlags(cfg); err != nil {
			return err
		}

		if err := applyGitLabFlags(cfg); err != nil {
			return err
		}

		cfg.Normalize()

		if !cfg.Usable() {
			fmt.Printf("Warning: the %s configuration is incomplete; the app will show the setup prompt.\n",
				cfg.GitProvider)
		}

		settingsStore.Save(*cfg)
		fmt.Println("Configuration saved.")

		return nil
	},
}

func applyGitHubFlags(cfg *model.Settings) error {
	touched := setGHOwner != "" || setGHRepo != "" || setGHBranch != "" || setGHPAT != ""

	wantPrompt := setPromptSecrets && (touched || cfg.GitProvider == model.GitProviderGitHub)
	if !touched && !wantPrompt {
		return nil
	}

	if cfg.GitHub == nil {
		cfg.GitHub = &model.GitHubConfig{}
	}

	if setGHOwner != "" {
		cfg.GitHub.Owner = setGHOwner
	}

	if setGHRepo != "" {
		cfg.GitHub.Repo = setGHRepo
	}

	if setGHBranch != "" {
		cfg.GitHub.Branch = setGHBranch
	}

	if setGHPAT != "" {
		cfg.GitHub.PAT = setGHPAT
	}

	if wantPrompt && setGHPAT == "" {
		pat, err := promptSecret("GitHub PAT")
		if err != nil {
			return err
		}

		if pat != "" {
			cfg.GitHub.PAT = pat
		}
	}

	return nil
}

func applyGitLabFlags(cfg *model.Settings) error {
	touched := setGLInstance != "" || setGLProject != "" || setGLBranch != "" || setGLToken != ""

	wantPrompt := setPromptSecrets && (touched || cfg.GitProvider == model.GitProviderGitLab)
	if !touched && !wantPrompt {
		return nil
	}

	if setGLInstance != "" {
		if err := settings.ValidateInstanceURL(setGLInstance); err != nil {
			return err
		}
	}

	if cfg.GitLab == nil {
		cfg.GitLab = &model.GitLabConfig{}
	}

	if setGLInstance != "" {
		cfg.GitLab.InstanceURL = setGLInstance
	}

	if setGLProject != "" {
		cfg.GitLab.ProjectID = setGLProject
	}

	if setGLBranch != "" {
		cfg.GitLab.Branch = setGLBranch
	}

	if setGLToken != "" {
		cfg.GitLab.Token = setGLToken
	}

	if wantPrompt && setGLToken == "" {
		token, err := promptSecret("GitLab token")
		if err != nil {
			return err
		}

		if token != "" {
			cfg.GitLab.Token = token
		}
	}

	return nil
}

func init() {
	flags := settingsSetCmd.Flags()
	flags.StringVar(&setProvider, "provider", "", "active git provider (github or gitlab)")
	flags.StringVar(&setFolder, "folder", "", "root folder for task files")
	flags.StringVar(&setAIProvider, "ai-provider", "", "AI provider (gemini or openrouter)")
	flags.StringVar(&setAIModel, "ai-model", "", "AI model identifier")
	flags.StringVar(&setGeminiKey, "gemini-key", "", "Gemini API key")
	flags.StringVar(&setORKey, "openrouter-key", "", "OpenRouter API key")
	flags.StringVar(&setGHOwner, "gh-owner", "", "GitHub repository owner")
	flags.StringVar(&setGHRepo, "gh-repo", "", "GitHub repository name")
	flags.StringVar(&setGHBranch, "gh-branch", "", "GitHub branch")
	flags.StringVar(&setGHPAT, "gh-pat", "", "GitHub personal access token")
	flags.StringVar(&setGLInstance, "gl-instance", "", "GitLab instance URL")
	flags.StringVar(&setGLProject, "gl-project", "", "GitLab project id")
	flags.StringVar(&setGLBranch, "gl-branch", "", "GitLab branch")
	flags.StringVar(&setGLToken, "gl-token", "", "GitLab token")
	flags.BoolVar(&setPromptSecrets, "prompt-secrets", false,
		"prompt for the active provider's secret without echoing it")

	settingsCmd.AddCommand(settingsSetCmd)
}
