package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileSink is the export target contract. Implementations return an
// opaque handle for the written file; failures surface to the caller,
// who decides whether to retry.
type FileSink interface {
	Put(name, mimeType string, data []byte) (handle string, err error)
}

// DirSink writes exports into a local directory. File names get a short
// unique suffix so repeated exports never clobber each other.
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &DirSink{Dir: dir}, nil
}

func (s *DirSink) Put(name, mimeType string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	unique := fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext)

	path := filepath.Join(s.Dir, unique)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write export %s (%s): %w", unique, mimeType, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + abs, nil
}
