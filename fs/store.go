package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/blogtext"
)

// Ensure FileStore implements blogtext.ResultStore at compile time.
var _ blogtext.ResultStore = (*FileStore)(nil)

// FileStore implements blogtext.ResultStore with atomic update semantics.
// Results are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
	ext     string

	// Now returns the extraction timestamp written to the frontmatter.
	Now func() time.Time
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
// ext is the file extension including the dot, e.g. ".txt".
func NewFileStore(baseDir, name, ext string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		ext:     ext,
		Now:     time.Now,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes res under the temporary directory.
func (s *FileStore) Save(ctx context.Context, res *blogtext.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := ResultPath(res)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(relPath)+s.ext)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", relPath, err)
	}

	content, err := FormatResult(res, s.Now())
	if err != nil {
		return fmt.Errorf("format %s: %w", relPath, err)
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the output directory with the saved results.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the saved results.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
