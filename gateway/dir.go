package gateway

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// ManifestFile is the conventional manifest filename at the content root.
const ManifestFile = "dak.json"

// Dir persists to a local working-copy directory: the manifest at dak.json
// and content files under the directory as given (conventionally input/...).
type Dir struct {
	root string
}

// NewDir creates a gateway rooted at the given directory.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) LoadManifest(ctx context.Context) ([]byte, error) {
	return d.LoadFile(ctx, ManifestFile)
}

func (d *Dir) SaveManifest(ctx context.Context, content []byte) error {
	return d.SaveFile(ctx, ManifestFile, content, SaveMeta{})
}

func (d *Dir) SaveFile(ctx context.Context, path string, content []byte, meta SaveMeta) error {
	full, err := d.join(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

func (d *Dir) LoadFile(ctx context.Context, path string) ([]byte, error) {
	full, err := d.join(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrMissing, "%s", path)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return content, nil
}

func (d *Dir) RemoveFile(ctx context.Context, path string) error {
	full, err := d.join(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", path)
	}
	return nil
}

// join resolves a gateway path under the root, rejecting escapes.
func (d *Dir) join(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.Newf("path escapes content root: %s", path)
	}
	return filepath.Join(d.root, clean), nil
}
