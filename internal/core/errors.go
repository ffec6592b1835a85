package core

import "github.com/cockroachdb/errors"

// Sentinel errors for the resolution and mutation paths. Wrap these with
// errors.Wrap to add context; check them with errors.Is.
var (
	// ErrSourceIndeterminate means none of canonical, url, or data is
	// populated, so no reference kind can be inferred.
	ErrSourceIndeterminate = errors.New("source kind indeterminate: no canonical, url, or data")

	// ErrFetchFailed is a transport error or non-success HTTP status while
	// resolving a canonical or absolute-url source.
	ErrFetchFailed = errors.New("source fetch failed")

	// ErrParseFailed means a declared-JSON response body failed to parse.
	ErrParseFailed = errors.New("source parse failed")

	// ErrRelativeUnsupported means relative-url resolution was invoked on a
	// resolver with no persistence gateway to load content files through.
	ErrRelativeUnsupported = errors.New("relative url resolution requires a gateway")

	// ErrIndexOutOfRange is an update or remove at an out-of-bounds index.
	ErrIndexOutOfRange = errors.New("source index out of range")

	// ErrInvalidSource is a source rejected by validation before insertion.
	ErrInvalidSource = errors.New("source failed validation")

	// ErrComponentNotFound is a lookup of an unregistered component type.
	ErrComponentNotFound = errors.New("unknown component type")

	// ErrNotFound is a by-id retrieval that matched no resolved value.
	ErrNotFound = errors.New("no resolved value with the given id")
)
