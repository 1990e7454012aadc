package pipeline

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Scratch is the transient directory holding per-file intermediate outputs
// during text-format merge runs. Each worker writes a distinct file inside
// it, so the directory itself is the only shared resource. The creator is
// responsible for calling Cleanup on every exit path.
type Scratch struct {
	Dir string
}

// NewScratch creates a uniquely named scratch directory under the system
// temp dir.
func NewScratch() (*Scratch, error) {
	dir := filepath.Join(os.TempDir(), "pqconvert-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Scratch{Dir: dir}, nil
}

// Cleanup removes the scratch directory and everything in it. Safe to call
// more than once and on a nil receiver.
func (s *Scratch) Cleanup() {
	if s == nil || s.Dir == "" {
		return
	}
	_ = os.RemoveAll(s.Dir)
	s.Dir = ""
}
