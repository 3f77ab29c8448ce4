package settings

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain token", input: "ghp_abc123", want: "ghp_abc123"},
		{name: "angle brackets stripped", input: "ghp_<script>abc", want: "ghp_scriptabc"},
		{name: "quotes stripped", input: `to"ken'`, want: "token"},
		{name: "backslash stripped", input: `a\b`, want: "ab"},
		{name: "javascript scheme stripped", input: "javascript:alert(1)", want: "alert(1)"},
		{name: "scheme case-insensitive", input: "JavaScript:x", want: "x"},
		{name: "data scheme stripped", input: "data:text/html", want: "text/html"},
		{name: "vbscript scheme stripped", input: "vbscript:run", want: "run"},
		{name: "whitespace trimmed", input: "  value  ", want: "value"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeValue(tt.input)
			if err != nil {
				t.Fatalf("SanitizeValue(%q) error = %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("SanitizeValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeValue_TooLong(t *testing.T) {
	_, err := SanitizeValue(strings.Repeat("a", 501))
	if err == nil {
		t.Fatal("expected error for oversized value")
	}

	var tooLong *FieldTooLongError
	if !errors.As(err, &tooLong) {
		t.Errorf("error = %T, want *FieldTooLongError", err)
	}

	// Exactly at the limit is fine
	if _, err := SanitizeValue(strings.Repeat("a", 500)); err != nil {
		t.Errorf("500-character value rejected: %v", err)
	}
}

func TestValidateInstanceURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "https", input: "https://gitlab.com", wantErr: false},
		{name: "http", input: "http://gitlab.internal:8080", wantErr: false},
		{name: "self-hosted path", input: "https://git.example.com/gitlab", wantErr: false},
		{name: "ftp scheme", input: "ftp://gitlab.com", wantErr: true},
		{name: "javascript scheme", input: "javascript:alert(1)", wantErr: true},
		{name: "relative", input: "gitlab.com", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInstanceURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInstanceURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
