package manifest

import (
	"net/url"

	"github.com/github/go-spdx/v2/spdxexp"
)

// publication statuses follow the FHIR value set.
var knownStatuses = map[string]bool{
	"draft":   true,
	"active":  true,
	"retired": true,
}

// ValidateMetadata checks the DAK metadata without performing I/O: the
// license must be a valid SPDX expression, the publication url must be
// absolute, and the status must be a known publication status. Problems are
// reported as warnings; metadata never blocks editing.
func (a *Aggregate) ValidateMetadata() []string {
	var warns []string

	if a.meta.ID == "" {
		warns = append(warns, "manifest has no id")
	}

	if a.meta.License != "" {
		if valid, _ := spdxexp.ValidateLicenses([]string{a.meta.License}); !valid {
			warns = append(warns, "license is not a valid spdx expression: "+a.meta.License)
		}
	}

	if a.meta.PublicationURL != "" {
		if u, err := url.Parse(a.meta.PublicationURL); err != nil || !u.IsAbs() {
			warns = append(warns, "publicationUrl is not an absolute url: "+a.meta.PublicationURL)
		}
	}

	if a.meta.Status != "" && !knownStatuses[a.meta.Status] {
		warns = append(warns, "unknown publication status: "+a.meta.Status)
	}

	return warns
}
