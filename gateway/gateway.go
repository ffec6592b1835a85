// Package gateway defines the persistence contract for manifest and
// content-file storage, with in-memory, local-directory, and read-only
// remote implementations.
//
// Content-file paths are relative to the storage root and conventionally
// live under an input/ subtree, e.g. "input/actors/clinician.json".
package gateway

import (
	"context"

	"github.com/cockroachdb/errors"
)

var (
	// ErrMissing signals that the requested manifest or content file does
	// not exist. It is the "missing" signal of the contract, distinct from
	// transport or storage failures.
	ErrMissing = errors.New("content missing")

	// ErrReadOnly is returned by write operations on read-only gateways.
	ErrReadOnly = errors.New("gateway is read-only")
)

// SaveMeta carries provenance for a content-file write. Implementations
// that stage commits use it; others may ignore it.
type SaveMeta struct {
	Message string
	Author  string
}

// Gateway stores manifest and content-file edits durably, whether in an
// in-progress edit buffer or a repository working copy. Operations are
// at-most-once; callers re-invoke the originating mutation to retry.
type Gateway interface {
	// LoadManifest returns the manifest text, or ErrMissing.
	LoadManifest(ctx context.Context) ([]byte, error)

	// SaveManifest stores the manifest text.
	SaveManifest(ctx context.Context, content []byte) error

	// SaveFile stores a content file at the given path.
	SaveFile(ctx context.Context, path string, content []byte, meta SaveMeta) error

	// LoadFile returns a content file's text, or ErrMissing.
	LoadFile(ctx context.Context, path string) ([]byte, error)

	// RemoveFile deletes a content file.
	RemoveFile(ctx context.Context, path string) error
}
