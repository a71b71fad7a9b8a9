package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/valdraft/draftd/internal/models"
)

// File persists the document as a pretty-printed JSON file, the same shape
// the league has always used. The revision is a sha256 of the file bytes;
// writes go through a temp file and an atomic rename. A process-local
// mutex serializes the check-and-rename so concurrent operations within
// one process cannot interleave between the revision check and the write.
type File struct {
	path string
	mu   sync.Mutex
}

func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &File{path: path}, nil
}

func (f *File) Load(ctx context.Context) (*models.LeagueState, Revision, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, RevisionNone, ErrNotFound
	}
	if err != nil {
		return nil, RevisionNone, err
	}
	var state models.LeagueState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, RevisionNone, fmt.Errorf("decoding %s: %w", f.path, err)
	}
	return &state, contentRevision(raw), nil
}

func (f *File) Save(ctx context.Context, state *models.LeagueState, rev Revision) (Revision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	switch {
	case os.IsNotExist(err):
		if rev != RevisionNone {
			return RevisionNone, ErrRevisionMismatch
		}
	case err != nil:
		return RevisionNone, err
	default:
		if contentRevision(raw) != rev {
			return RevisionNone, ErrRevisionMismatch
		}
	}

	encoded, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return RevisionNone, err
	}
	if err := writeAtomic(f.path, encoded); err != nil {
		return RevisionNone, err
	}
	return contentRevision(encoded), nil
}

func (f *File) Backup(ctx context.Context, state *models.LeagueState, label string) error {
	encoded, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s.%s-%s.bak", f.path, label, time.Now().UTC().Format("20060102T150405"))
	return writeAtomic(name, encoded)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".state-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func contentRevision(raw []byte) Revision {
	sum := sha256.Sum256(raw)
	return Revision(hex.EncodeToString(sum[:]))
}
