package urlconfig

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/url"
	"regexp"

	"gitodo/internal/model"
	"gitodo/internal/settings"
)

const (
	// QueryParam is the query parameter a shared link carries the token in.
	QueryParam = "config"

	// maxTokenLength rejects oversized tokens before any decoding work
	maxTokenLength = 20000

	// maxDecodedLength guards against base64 expansion tricks
	maxDecodedLength = 15000

	// maxEncodedJSONLength keeps generated links usable
	maxEncodedJSONLength = 10000
)

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// compressedGitHub is the short-key wire form of a GitHub config.
type compressedGitHub struct {
	PAT    string `json:"p,omitempty"`
	Owner  string `json:"o,omitempty"`
	Repo   string `json:"r,omitempty"`
	Branch string `json:"b,omitempty"`
}

// compressedGitLab is the short-key wire form of a GitLab config.
type compressedGitLab struct {
	InstanceURL string `json:"u,omitempty"`
	ProjectID   string `json:"i,omitempty"`
	Token       string `json:"t,omitempty"`
	Branch      string `json:"b,omitempty"`
}

// compressedToken is the wire form of the whole settings object. Fields
// equal to their defaults are omitted; most users only customize a handful
// of fields, so tokens stay short. The top-level flat fields mirror the
// nested configs for links read by older decoders.
type compressedToken struct {
	GitProvider int               `json:"g,omitempty"` // 1 = gitlab
	Folder      string            `json:"f,omitempty"`
	AIProvider  int               `json:"a,omitempty"` // 1 = openrouter
	GeminiKey   string            `json:"gk,omitempty"`
	OpenRouter  string            `json:"ok,omitempty"`
	AIModel     string            `json:"m,omitempty"`
	GitHub      *compressedGitHub `json:"gh,omitempty"`
	GitLab      *compressedGitLab `json:"gl,omitempty"`

	// Legacy flat mirrors, always derived from the nested configs
	PAT         string `json:"p,omitempty"`
	Owner       string `json:"o,omitempty"`
	Repo        string `json:"r,omitempty"`
	InstanceURL string `json:"u,omitempty"`
	ProjectID   string `json:"i,omitempty"`
	Token       string `json:"t,omitempty"`
}

// dualToken is the decode-side view of the compressed format. Provider
// selectors are RawMessage because old encoders wrote them as strings and
// new ones write integers.
type dualToken struct {
	GitProvider json.RawMessage   `json:"g"`
	Folder      string            `json:"f"`
	AIProvider  json.RawMessage   `json:"a"`
	GeminiKey   string            `json:"gk"`
	OpenRouter  string            `json:"ok"`
	AIModel     string            `json:"m"`
	GitHub      *compressedGitHub `json:"gh"`
	GitLab      *compressedGitLab `json:"gl"`

	PAT         string `json:"p"`
	Owner       string `json:"o"`
	Repo        string `json:"r"`
	InstanceURL string `json:"u"`
	ProjectID   string `json:"i"`
	Token       string `json:"t"`
}

// legacyToken is the old single-provider link format with full field names.
type legacyToken struct {
	GitProvider string `json:"gitProvider"`
	Folder      string `json:"folder"`
	Branch      string `json:"branch"`
	PAT         string `json:"pat"`
	Owner       string `json:"owner"`
	Repo        string `json:"repo"`
	InstanceURL string `json:"instanceUrl"`
	ProjectID   string `json:"projectId"`
	Token       string `json:"token"`
}

// Codec turns settings into shareable URL tokens and back. Its public
// surface never returns errors: Encode collapses to "" and Decode to nil,
// with detail kept in the log.
type Codec struct {
	logger *slog.Logger
}

// NewCodec creates a codec. A nil logger falls back to slog.Default.
func NewCodec(logger *slog.Logger) *Codec {
	if logger == nil {
		logger = slog.Default()
	}

	return &Codec{logger: logger}
}

// Encode builds a shareable URL for cfg on top of baseURL, or returns ""
// on any failure. The token carries the same secrets as the settings
// object, so the resulting link must be treated as a credential.
func (c *Codec) Encode(cfg model.Settings, baseURL string) string {
	token := c.EncodeToken(cfg)
	if token == "" {
		return ""
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		c.logger.Error("failed to build share URL", "error", err)

		return ""
	}

	q := u.Query()
	q.Set(QueryParam, token)
	u.RawQuery = q.Encode()

	return u.String()
}

// EncodeToken builds the bare token for cfg, or returns "" on any failure.
func (c *Codec) EncodeToken(cfg model.Settings) string {
	token, err := encodeToken(cfg)
	if err != nil {
		c.logger.Error("failed to encode settings", "error", err)

		return ""
	}

	return token
}

func encodeToken(cfg model.Settings) (string, error) {
	var wire compressedToken

	if cfg.GitProvider == model.GitProviderGitLab {
		wire.GitProvider = 1
	}

	if cfg.Folder != model.DefaultFolder {
		folder, err := settings.SanitizeValue(cfg.Folder)
		if err != nil {
			return "", &EncodeError{Reason: "invalid folder", Err: err}
		}

		wire.Folder = folder
	}

	if cfg.AIProvider == model.AIProviderOpenRouter {
		wire.AIProvider = 1
	}

	var err error

	if wire.GeminiKey, err = settings.SanitizeValue(cfg.GeminiAPIKey); err != nil {
		return "", &EncodeError{Reason: "invalid gemini key", Err: err}
	}

	if wire.OpenRouter, err = settings.SanitizeValue(cfg.OpenRouterAPIKey); err != nil {
		return "", &EncodeError{Reason: "invalid openrouter key", Err: err}
	}

	if wire.AIModel, err = settings.SanitizeValue(cfg.AIModel); err != nil {
		return "", &EncodeError{Reason: "invalid model", Err: err}
	}

	if cfg.GitHub != nil {
		gh, err := compressGitHub(cfg.GitHub)
		if err != nil {
			return "", err
		}

		if gh != nil {
			wire.GitHub = gh
			wire.PAT = gh.PAT
			wire.Owner = gh.Owner
			wire.Repo = gh.Repo
		}
	}

	if cfg.GitLab != nil {
		gl, err := compressGitLab(cfg.GitLab)
		if err != nil {
			return "", err
		}

		if gl != nil {
			wire.GitLab = gl
			wire.InstanceURL = gl.InstanceURL
			wire.ProjectID = gl.ProjectID
			wire.Token = gl.Token
		}
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return "", &EncodeError{Reason: "serializing", Err: err}
	}

	if len(data) > maxEncodedJSONLength {
		return "", &EncodeError{Reason: "configuration too large to share"}
	}

	return base64.StdEncoding.EncodeToString(data), nil
}

func compressGitHub(cfg *model.GitHubConfig) (*compressedGitHub, error) {
	gh := &compressedGitHub{}

	var err error

	if gh.PAT, err = settings.SanitizeValue(cfg.PAT); err != nil {
		return nil, &EncodeError{Reason: "invalid github pat", Err: err}
	}

	if gh.Owner, err = settings.SanitizeValue(cfg.Owner); err != nil {
		return nil, &EncodeError{Reason: "invalid github owner", Err: err}
	}

	if gh.Repo, err = settings.SanitizeValue(cfg.Repo); err != nil {
		return nil, &EncodeError{Reason: "invalid github repo", Err: err}
	}

	if cfg.Branch != "" && cfg.Branch != model.DefaultBranch {
		if gh.Branch, err = settings.SanitizeValue(cfg.Branch); err != nil {
			return nil, &EncodeError{Reason: "invalid github branch", Err: err}
		}
	}

	if *gh == (compressedGitHub{}) {
		return nil, nil
	}

	return gh, nil
}

func compressGitLab(cfg *model.GitLabConfig) (*compressedGitLab, error) {
	gl := &compressedGitLab{}

	var err error

	if cfg.InstanceURL != "" && cfg.InstanceURL != model.DefaultGitLabURL {
		if err := settings.ValidateInstanceURL(cfg.InstanceURL); err != nil {
			return nil, &EncodeError{Reason: "invalid gitlab instance URL", Err: err}
		}

		if gl.InstanceURL, err = settings.SanitizeValue(cfg.InstanceURL); err != nil {
			return nil, &EncodeError{Reason: "invalid gitlab instance URL", Err: err}
		}
	}

	if gl.ProjectID, err = settings.SanitizeValue(cfg.ProjectID); err != nil {
		return nil, &EncodeError{Reason: "invalid gitlab project id", Err: err}
	}

	if gl.Token, err = settings.SanitizeValue(cfg.Token); err != nil {
		return nil, &EncodeError{Reason: "invalid gitlab token", Err: err}
	}

	if cfg.Branch != "" && cfg.Branch != model.DefaultBranch {
		if gl.Branch, err = settings.SanitizeValue(cfg.Branch); err != nil {
			return nil, &EncodeError{Reason: "invalid gitlab branch", Err: err}
		}
	}

	if *gl == (compressedGitLab{}) {
		return nil, nil
	}

	return gl, nil
}

// Decode turns a token back into a validated settings object, or returns
// nil on any failure. It never panics or returns a partial result: either
// the token yields at least one structurally complete provider config, or
// it is rejected entirely.
func (c *Codec) Decode(token string) *model.Settings {
	cfg, err := decodeToken(token)
	if err != nil {
		c.logger.Error(err.Reason, "error", err)

		return nil
	}

	return cfg
}

func decodeToken(token string) (*model.Settings, *DecodeError) {
	if len(token) > maxTokenLength {
		return nil, &DecodeError{Reason: "configuration token too large"}
	}

	if !base64Pattern.MatchString(token) {
		return nil, &DecodeError{Reason: "configuration token is not valid base64"}
	}

	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, &DecodeError{Reason: "configuration token is not valid base64", Err: err}
	}

	if len(decoded) > maxDecodedLength {
		return nil, &DecodeError{Reason: "decoded configuration too large"}
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(decoded, &keys); err != nil {
		return nil, &DecodeError{Reason: "configuration token is not valid JSON", Err: err}
	}

	if isLegacyShape(keys) {
		return decodeLegacy(decoded)
	}

	return decodeDual(decoded)
}

// isLegacyShape reports whether the parsed token uses the old full-key
// single-provider format. Short nested keys take precedence: a token
// carrying gh or gl is always treated as the compressed format.
func isLegacyShape(keys map[string]json.RawMessage) bool {
	if _, ok := keys["gh"]; ok {
		return false
	}

	if _, ok := keys["gl"]; ok {
		return false
	}

	if _, ok := keys["pat"]; ok {
		return true
	}

	_, ok := keys["gitProvider"]

	return ok
}

func decodeLegacy(decoded []byte) (*model.Settings, *DecodeError) {
	var wire legacyToken
	if err := json.Unmarshal(decoded, &wire); err != nil {
		return nil, &DecodeError{Reason: "configuration token is not valid JSON", Err: err}
	}

	// Completeness is judged on the raw token fields. Normalize would fill
	// in the default GitLab instance URL, and a legacy link missing it must
	// be rejected rather than repaired; only folder and branch may default.
	if wire.GitProvider == string(model.GitProviderGitLab) {
		if wire.InstanceURL == "" || wire.ProjectID == "" || wire.Token == "" {
			return nil, &DecodeError{Reason: "incomplete GitLab configuration in shared link"}
		}
	} else if wire.PAT == "" || wire.Owner == "" || wire.Repo == "" {
		return nil, &DecodeError{Reason: "incomplete GitHub configuration in shared link"}
	}

	cfg := model.Settings{
		GitProvider: model.GitProvider(wire.GitProvider),
		Folder:      wire.Folder,
	}

	if wire.PAT != "" || wire.Owner != "" || wire.Repo != "" {
		cfg.GitHub = &model.GitHubConfig{
			PAT:    wire.PAT,
			Owner:  wire.Owner,
			Repo:   wire.Repo,
			Branch: wire.Branch,
		}
	}

	if wire.InstanceURL != "" || wire.ProjectID != "" || wire.Token != "" {
		cfg.GitLab = &model.GitLabConfig{
			InstanceURL: wire.InstanceURL,
			ProjectID:   wire.ProjectID,
			Token:       wire.Token,
			Branch:      wire.Branch,
		}
	}

	cfg.Normalize()

	return &cfg, nil
}

func decodeDual(decoded []byte) (*model.Settings, *DecodeError) {
	var wire dualToken
	if err := json.Unmarshal(decoded, &wire); err != nil {
		return nil, &DecodeError{Reason: "configuration token is not valid JSON", Err: err}
	}

	cfg := model.Settings{
		GitProvider:      gitProviderFrom(wire.GitProvider),
		Folder:           wire.Folder,
		AIProvider:       aiProviderFrom(wire.AIProvider),
		AIModel:          wire.AIModel,
		GeminiAPIKey:     wire.GeminiKey,
		OpenRouterAPIKey: wire.OpenRouter,
	}

	if wire.GitHub != nil {
		cfg.GitHub = &model.GitHubConfig{
			PAT:    wire.GitHub.PAT,
			Owner:  wire.GitHub.Owner,
			Repo:   wire.GitHub.Repo,
			Branch: wire.GitHub.Branch,
		}
	}

	if wire.GitLab != nil {
		cfg.GitLab = &model.GitLabConfig{
			InstanceURL: wire.GitLab.InstanceURL,
			ProjectID:   wire.GitLab.ProjectID,
			Token:       wire.GitLab.Token,
			Branch:      wire.GitLab.Branch,
		}
	}

	// Legacy flat fields overwrite the nested values. Links minted by older
	// encoders carry only the flat form; links carrying both were written
	// flat-last, so flat wins.
	if wire.PAT != "" || wire.Owner != "" || wire.Repo != "" {
		if cfg.GitHub == nil {
			cfg.GitHub = &model.GitHubConfig{}
		}

		if wire.PAT != "" {
			cfg.GitHub.PAT = wire.PAT
		}

		if wire.Owner != "" {
			cfg.GitHub.Owner = wire.Owner
		}

		if wire.Repo != "" {
			cfg.GitHub.Repo = wire.Repo
		}
	}

	if wire.InstanceURL != "" || wire.ProjectID != "" || wire.Token != "" {
		if cfg.GitLab == nil {
			cfg.GitLab = &model.GitLabConfig{}
		}

		if wire.InstanceURL != "" {
			cfg.GitLab.InstanceURL = wire.InstanceURL
		}

		if wire.ProjectID != "" {
			cfg.GitLab.ProjectID = wire.ProjectID
		}

		if wire.Token != "" {
			cfg.GitLab.Token = wire.Token
		}
	}

	// Defaults are part of reconstruction: a token omitting gl.u means the
	// default instance, which must count as present for the gate below.
	cfg.Normalize()

	if !cfg.GitHub.Complete() && !cfg.GitLab.Complete() {
		return nil, &DecodeError{Reason: "Invalid configuration - no complete provider settings found"}
	}

	return &cfg, nil
}

// gitProviderFrom accepts the integer selector written by current encoders
// and the string selector written by old ones.
func gitProviderFrom(raw json.RawMessage) model.GitProvider {
	if len(raw) == 0 {
		return model.GitProviderGitHub
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == 1 {
			return model.GitProviderGitLab
		}

		return model.GitProviderGitHub
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s == string(model.GitProviderGitLab) {
		return model.GitProviderGitLab
	}

	return model.GitProviderGitHub
}

func aiProviderFrom(raw json.RawMessage) model.AIProvider {
	if len(raw) == 0 {
		return model.AIProviderGemini
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == 1 {
			return model.AIProviderOpenRouter
		}

		return model.AIProviderGemini
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s == string(model.AIProviderOpenRouter) {
		return model.AIProviderOpenRouter
	}

	return model.AIProviderGemini
}

// TokenFromInput extracts the token from either a full shared URL or a bare
// token string.
func TokenFromInput(input string) string {
	u, err := url.Parse(input)
	if err == nil && u.IsAbs() {
		if token := u.Query().Get(QueryParam); token != "" {
			return token
		}
	}

	return input
}
