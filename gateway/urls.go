package gateway

import (
	"fmt"
	"strings"

	"github.com/litlfred/dakit/internal/core"
)

// DefaultRawBase is the raw-content host for GitHub-hosted content roots.
const DefaultRawBase = "https://raw.githubusercontent.com"

// ContentURLs builds raw file URLs for a repository content root.
type ContentURLs struct {
	// BaseURL overrides the raw-content host; empty means DefaultRawBase.
	BaseURL string

	// RawFn overrides URL construction entirely when set.
	RawFn func(repo core.RepositoryContext, path string) string
}

// Raw returns the URL serving the raw content of path on the pinned branch.
func (u ContentURLs) Raw(repo core.RepositoryContext, path string) string {
	if u.RawFn != nil {
		return u.RawFn(repo, path)
	}
	base := u.BaseURL
	if base == "" {
		base = DefaultRawBase
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(base, "/"), repo.Slug(), strings.TrimPrefix(path, "/"))
}
