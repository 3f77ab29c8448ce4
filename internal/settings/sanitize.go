package settings

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// maxFieldLength bounds any single credential or configuration value.
const maxFieldLength = 500

var (
	unsafeChars   = strings.NewReplacer(`<`, "", `>`, "", `"`, "", `'`, "", `\`, "")
	unsafeSchemes = regexp.MustCompile(`(?i)(javascript|data|vbscript):`)
)

// FieldTooLongError indicates a value exceeded maxFieldLength after
// sanitization.
type FieldTooLongError struct {
	Length int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("value too long: %d characters (max %d)", e.Length, maxFieldLength)
}

// SanitizeValue strips characters and URL schemes that could be abused when
// the value is embedded in a shared link, trims surrounding whitespace, and
// rejects oversized values.
func SanitizeValue(value string) (string, error) {
	cleaned := unsafeChars.Replace(value)
	cleaned = unsafeSchemes.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > maxFieldLength {
		return "", &FieldTooLongError{Length: len(cleaned)}
	}

	return cleaned, nil
}

// ValidateInstanceURL checks that raw parses as an absolute http or https
// URL.
func ValidateInstanceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid instance URL %q: %w", raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid instance URL %q: scheme must be http or https", raw)
	}

	if u.Host == "" {
		return fmt.Errorf("invalid instance URL %q: missing host", raw)
	}

	return nil
}
