package storage

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// NewFS returns a read-only filesystem rooted at root. Paths are resolved
// relative to root and cannot leave it.
func NewFS(root string) afero.Fs {
	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), root))
}

// CheckRoot verifies that root exists and is a directory.
func CheckRoot(fs afero.Fs, root string) error {
	info, err := fs.Stat(root)
	if err != nil {
		return fmt.Errorf("document root unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("document root %s: %w", root, os.ErrInvalid)
	}
	return nil
}
