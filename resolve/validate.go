package resolve

import (
	"net/url"
	"strings"

	"github.com/litlfred/dakit/internal/core"
)

// ValidateSource checks a source without performing any I/O: kind
// inference, URL well-formedness for remote kinds, and path safety for
// relative kinds.
func ValidateSource(s core.ComponentSource) core.ValidationResult {
	kind, err := DetermineKind(s)
	if err != nil {
		return core.ValidationResult{
			Valid:  false,
			Errors: []string{"no canonical, url, or data populated"},
		}
	}

	result := core.ValidationResult{Valid: true, Kind: kind}

	switch kind {
	case core.KindCanonical:
		u, err := url.Parse(s.Canonical)
		if err != nil || !u.IsAbs() {
			result.Valid = false
			result.Errors = append(result.Errors, "canonical must be an absolute IRI")
		} else if u.Scheme == "http" {
			result.Warnings = append(result.Warnings, "canonical uses http, not https")
		}

	case core.KindURLAbsolute:
		u, _ := url.Parse(s.URL)
		if u.Scheme != "http" && u.Scheme != "https" {
			result.Valid = false
			result.Errors = append(result.Errors, "absolute url must use http or https")
		} else if u.Scheme == "http" {
			result.Warnings = append(result.Warnings, "url uses http, not https")
		}

	case core.KindURLRelative:
		if strings.HasPrefix(s.URL, "/") || strings.HasPrefix(s.URL, `\`) {
			result.Valid = false
			result.Errors = append(result.Errors, "relative url must not start with a path separator")
		}
		if strings.Contains(s.URL, "..") {
			result.Valid = false
			result.Errors = append(result.Errors, "relative url must not contain ..")
		}

	case core.KindInline:
		// Kind inference already guarantees non-nil data.
	}

	return result
}
