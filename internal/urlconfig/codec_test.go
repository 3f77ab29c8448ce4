package urlconfig

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitodo/internal/model"
)

func token(t *testing.T, raw string) string {
	t.Helper()

	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func decodedJSON(t *testing.T, tok string) map[string]json.RawMessage {
	t.Helper()

	data, err := base64.StdEncoding.DecodeString(tok)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))

	return keys
}

func TestRoundTrip_GitHub(t *testing.T) {
	codec := NewCodec(nil)

	in := model.Settings{
		GitProvider: model.GitProviderGitHub,
		Folder:      "todos",
		GitHub:      &model.GitHubConfig{PAT: "x", Owner: "o", Repo: "r", Branch: "main"},
	}

	tok := codec.EncodeToken(in)
	require.NotEmpty(t, tok)

	out := codec.Decode(tok)
	require.NotNil(t, out)

	assert.Equal(t, model.GitProviderGitHub, out.GitProvider)
	require.NotNil(t, out.GitHub)
	assert.Equal(t, "x", out.GitHub.PAT)
	assert.Equal(t, "o", out.GitHub.Owner)
	assert.Equal(t, "r", out.GitHub.Repo)
	assert.Equal(t, "main", out.GitHub.Branch)
	assert.Equal(t, "todos", out.Folder)
}

func TestRoundTrip_NonDefaultFields(t *testing.T) {
	codec := NewCodec(nil)

	in := model.Settings{
		GitProvider:      model.GitProviderGitLab,
		Folder:           "work",
		AIProvider:       model.AIProviderOpenRouter,
		AIModel:          "anthropic/claude-sonnet",
		GeminiAPIKey:     "gem-key",
		OpenRouterAPIKey: "or-key",
		GitHub:           &model.GitHubConfig{PAT: "pat", Owner: "own", Repo: "rep", Branch: "dev"},
		GitLab: &model.GitLabConfig{
			InstanceURL: "https://git.example.com",
			ProjectID:   "42",
			Token:       "glt",
			Branch:      "release",
		},
	}

	out := codec.Decode(codec.EncodeToken(in))
	require.NotNil(t, out)

	assert.Equal(t, in.GitProvider, out.GitProvider)
	assert.Equal(t, in.Folder, out.Folder)
	assert.Equal(t, in.AIProvider, out.AIProvider)
	assert.Equal(t, in.AIModel, out.AIModel)
	assert.Equal(t, in.GeminiAPIKey, out.GeminiAPIKey)
	assert.Equal(t, in.OpenRouterAPIKey, out.OpenRouterAPIKey)
	assert.Equal(t, *in.GitHub, *out.GitHub)
	assert.Equal(t, *in.GitLab, *out.GitLab)
}

func TestEncode_OmitsDefaults(t *testing.T) {
	codec := NewCodec(nil)

	tok := codec.EncodeToken(model.Settings{
		GitProvider: model.GitProviderGitHub,
		Folder:      "todos",
		GitHub:      &model.GitHubConfig{PAT: "x", Owner: "o", Repo: "r", Branch: "main"},
		GitLab:      &model.GitLabConfig{InstanceURL: "https://gitlab.com", ProjectID: "1", Token: "t", Branch: "main"},
	})
	require.NotEmpty(t, tok)

	keys := decodedJSON(t, tok)

	assert.NotContains(t, keys, "g", "default provider must be omitted")
	assert.NotContains(t, keys, "f", "default folder must be omitted")
	assert.NotContains(t, keys, "a", "default AI provider must be omitted")

	var gh map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(keys["gh"], &gh))
	assert.NotContains(t, gh, "b", "default branch must be omitted")

	var gl map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(keys["gl"], &gl))
	assert.NotContains(t, gl, "u", "default instance URL must be omitted")
	assert.NotContains(t, gl, "b", "default branch must be omitted")
}

func TestEncode_WritesLegacyFlatMirrors(t *testing.T) {
	codec := NewCodec(nil)

	tok := codec.EncodeToken(model.Settings{
		GitHub: &model.GitHubConfig{PAT: "x", Owner: "o", Repo: "r"},
		GitLab: &model.GitLabConfig{InstanceURL: "https://git.example.com", ProjectID: "1", Token: "t"},
	})
	require.NotEmpty(t, tok)

	keys := decodedJSON(t, tok)

	for _, key := range []string{"gh", "gl", "p", "o", "r", "u", "i", "t"} {
		assert.Contains(t, keys, key)
	}
}

func TestEncode_SanitizesValues(t *testing.T) {
	codec := NewCodec(nil)

	out := codec.Decode(codec.EncodeToken(model.Settings{
		GeminiAPIKey: "javascript:key",
		GitHub:       &model.GitHubConfig{PAT: "my<script>pat", Owner: "o", Repo: "r"},
	}))
	require.NotNil(t, out)

	assert.Equal(t, "myscriptpat", out.GitHub.PAT)
	assert.Equal(t, "key", out.GeminiAPIKey)
}

func TestEncode_RejectsBadInstanceURL(t *testing.T) {
	codec := NewCodec(nil)

	tok := codec.EncodeToken(model.Settings{
		GitLab: &model.GitLabConfig{InstanceURL: "notaurl", ProjectID: "1", Token: "t"},
	})

	assert.Empty(t, tok)
}

func TestEncode_RejectsOversizedField(t *testing.T) {
	codec := NewCodec(nil)

	tok := codec.EncodeToken(model.Settings{
		GitHub: &model.GitHubConfig{PAT: strings.Repeat("a", 600), Owner: "o", Repo: "r"},
	})

	assert.Empty(t, tok)
}

func TestEncode_BuildsURL(t *testing.T) {
	codec := NewCodec(nil)

	link := codec.Encode(model.Settings{
		GitHub: &model.GitHubConfig{PAT: "x", Owner: "o", Repo: "r"},
	}, "https://todos.example.com/app")
	require.NotEmpty(t, link)

	assert.True(t, strings.HasPrefix(link, "https://todos.example.com/app?"))
	assert.Contains(t, link, QueryParam+"=")

	out := codec.Decode(TokenFromInput(link))
	require.NotNil(t, out)
	assert.Equal(t, "x", out.GitHub.PAT)
}

func TestDecode_CompressedGitLab(t *testing.T) {
	codec := NewCodec(nil)

	out := codec.Decode(token(t, `{"g":1,"gl":{"u":"https://gitlab.com","i":"123","t":"tok"}}`))
	require.NotNil(t, out)

	assert.Equal(t, model.GitProviderGitLab, out.GitProvider)
	require.NotNil(t, out.GitLab)
	assert.Equal(t, "https://gitlab.com", out.GitLab.InstanceURL)
	assert.Equal(t, "123", out.GitLab.ProjectID)
	assert.Equal(t, "tok", out.GitLab.Token)
	assert.Equal(t, "main", out.GitLab.Branch)
}

func TestDecode_DefaultInstanceURLOmitted(t *testing.T) {
	codec := NewCodec(nil)

	out := codec.Decode(token(t, `{"g":1,"gl":{"i":"123","t":"tok"}}`))
	require.NotNil(t, out)

	assert.Equal(t, "https://gitlab.com", out.GitLab.InstanceURL)
}

func TestDecode_FlatOverlayWins(t *testing.T) {
	codec := NewCodec(nil)

	out := codec.Decode(token(t, `{"gh":{"p":"pat","o":"o","r":"r"},"p":"override"}`))
	require.NotNil(t, out)

	assert.Equal(t, "override", out.GitHub.PAT)
	assert.Equal(t, "o", out.GitHub.Owner)
	assert.Equal(t, "r", out.GitHub.Repo)
}

func TestDecode_FlatOnlyCreatesConfig(t *testing.T) {
	codec := NewCodec(nil)

	out := codec.Decode(token(t, `{"p":"pat","o":"own","r":"rep","i":"1","t":"tok"}`))
	require.NotNil(t, out)

	require.NotNil(t, out.GitHub)
	assert.Equal(t, "pat", out.GitHub.PAT)

	require.NotNil(t, out.GitLab)
	assert.Equal(t, "1", out.GitLab.ProjectID)
	assert.Equal(t, "https://gitlab.com", out.GitLab.InstanceURL)
}

func TestDecode_ProviderSelectorForms(t *testing.T) {
	codec := NewCodec(nil)

	tests := []struct {
		name string
		raw  string
		git  model.GitProvider
		ai   model.AIProvider
	}{
		{
			name: "integer selectors",
			raw:  `{"g":1,"a":1,"gl":{"i":"1","t":"t"}}`,
			git:  model.GitProviderGitLab,
			ai:   model.AIProviderOpenRouter,
		},
		{
			name: "string selectors from old encoders",
			raw:  `{"g":"gitlab","a":"openrouter","gl":{"i":"1","t":"t"}}`,
			git:  model.GitProviderGitLab,
			ai:   model.AIProviderOpenRouter,
		},
		{
			name: "absent selectors default",
			raw:  `{"gh":{"p":"x","o":"o","r":"r"}}`,
			git:  model.GitProviderGitHub,
			ai:   model.AIProviderGemini,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := codec.Decode(token(t, tt.raw))
			require.NotNil(t, out)
			assert.Equal(t, tt.git, out.GitProvider)
			assert.Equal(t, tt.ai, out.AIProvider)
		})
	}
}

func TestDecode_LegacySingleProviderFormat(t *testing.T) {
	codec := NewCodec(nil)

	t.Run("complete github accepted", func(t *testing.T) {
		out := codec.Decode(token(t, `{"gitProvider":"github","pat":"t","owner":"u","repo":"r"}`))
		require.NotNil(t, out)

		assert.Equal(t, model.GitProviderGitHub, out.GitProvider)
		assert.Equal(t, "t", out.GitHub.PAT)
		assert.Equal(t, "main", out.GitHub.Branch)
		assert.Equal(t, "todos", out.Folder)
	})

	t.Run("provider defaults to github", func(t *testing.T) {
		out := codec.Decode(token(t, `{"pat":"t","owner":"u","repo":"r"}`))
		require.NotNil(t, out)
		assert.Equal(t, model.GitProviderGitHub, out.GitProvider)
	})

	t.Run("complete gitlab accepted", func(t *testing.T) {
		out := codec.Decode(token(t,
			`{"gitProvider":"gitlab","instanceUrl":"https://gitlab.com","projectId":"9","token":"t"}`))
		require.NotNil(t, out)

		assert.Equal(t, model.GitProviderGitLab, out.GitProvider)
		assert.Equal(t, "9", out.GitLab.ProjectID)
	})

	t.Run("incomplete github rejected", func(t *testing.T) {
		assert.Nil(t, codec.Decode(token(t, `{"gitProvider":"github","pat":"t","owner":"u"}`)))
	})

	t.Run("incomplete gitlab rejected", func(t *testing.T) {
		assert.Nil(t, codec.Decode(token(t, `{"gitProvider":"gitlab","projectId":"9"}`)))
	})

	t.Run("gitlab missing instance url rejected, not defaulted", func(t *testing.T) {
		assert.Nil(t, codec.Decode(token(t, `{"gitProvider":"gitlab","projectId":"9","token":"tok"}`)))
	})
}

func TestDecode_CompletenessORGate(t *testing.T) {
	codec := NewCodec(nil)

	t.Run("complete github with incomplete gitlab accepted", func(t *testing.T) {
		out := codec.Decode(token(t, `{"gh":{"p":"x","o":"o","r":"r"},"gl":{"i":"1"}}`))
		require.NotNil(t, out)
		assert.True(t, out.GitHub.Complete())
	})

	t.Run("both incomplete rejected", func(t *testing.T) {
		assert.Nil(t, codec.Decode(token(t, `{"gh":{"p":"x"},"gl":{"i":"1"}}`)))
	})

	t.Run("empty object rejected", func(t *testing.T) {
		assert.Nil(t, codec.Decode(token(t, `{}`)))
	})
}

func TestDecode_StructuralRejections(t *testing.T) {
	codec := NewCodec(nil)

	tests := []struct {
		name  string
		token string
	}{
		{name: "oversized token", token: strings.Repeat("A", 20001)},
		{name: "invalid charset", token: "abc$def"},
		{name: "invalid base64 length", token: "AAAAA"},
		{name: "not json", token: token(t, `hello world`)},
		{name: "json array", token: token(t, `[1,2,3]`)},
		{name: "empty token", token: token(t, ``)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, codec.Decode(tt.token))
		})
	}
}

func TestDecode_SizeBoundary(t *testing.T) {
	codec := NewCodec(nil)

	// A token at exactly the raw limit passes the size guards and fails
	// later, at JSON parsing. 20000 base64 chars decode to 15000 bytes.
	tok := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 15000)))
	require.Len(t, tok, 20000)

	assert.Nil(t, codec.Decode(tok))

	assert.Nil(t, codec.Decode(tok+"AAAA"), "past the raw limit must be rejected")
}

func TestTokenFromInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full url",
			input: "https://app.example.com/?config=abc123",
			want:  "abc123",
		},
		{
			name:  "url with other params",
			input: "https://app.example.com/path?x=1&config=abc123",
			want:  "abc123",
		},
		{
			name:  "bare token",
			input: "eyJnaCI6e319",
			want:  "eyJnaCI6e319",
		},
		{
			name:  "url without config param",
			input: "https://app.example.com/",
			want:  "https://app.example.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenFromInput(tt.input))
		})
	}
}
