package export

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/mindmap/pkg/errors"
)

// File is one exported PNG. Page and Total are 1 for diagrams and
// single-page documents.
type File struct {
	Name  string `json:"name"`
	Data  []byte `json:"data"`
	Page  int    `json:"page"`
	Total int    `json:"total"`
}

// Saver hands an exported file to its destination.
type Saver interface {
	Save(ctx context.Context, f File) error
}

// SaverFunc adapts a function to [Saver].
type SaverFunc func(ctx context.Context, f File) error

// Save calls fn(ctx, f).
func (fn SaverFunc) Save(ctx context.Context, f File) error { return fn(ctx, f) }

// DirSaver writes files into Dir, creating it when missing.
type DirSaver struct {
	Dir string
}

// Save writes f to Dir/f.Name.
func (s DirSaver) Save(ctx context.Context, f File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0o644)
}

// MemorySaver collects saved files. It is safe for concurrent use.
type MemorySaver struct {
	mu    sync.Mutex
	files []File
}

// Save appends f.
func (s *MemorySaver) Save(_ context.Context, f File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, f)
	return nil
}

// Files returns the saved files in save order.
func (s *MemorySaver) Files() []File {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]File, len(s.files))
	copy(out, s.files)
	return out
}

// Reset forgets every saved file.
func (s *MemorySaver) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = nil
}

func save(ctx context.Context, s Saver, f File) error {
	if err := s.Save(ctx, f); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.Wrap(errors.ErrCodeSave, err, "save %s", f.Name)
	}
	return nil
}
