package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/valdraft/draftd/internal/models"
)

// Memory keeps the document in process memory. Used by tests and as the
// default when no persistence is configured.
type Memory struct {
	mu      sync.RWMutex
	state   *models.LeagueState
	rev     int
	backups map[string]*models.LeagueState
}

func NewMemory() *Memory {
	return &Memory{backups: make(map[string]*models.LeagueState)}
}

func (m *Memory) Load(ctx context.Context) (*models.LeagueState, Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == nil {
		return nil, RevisionNone, ErrNotFound
	}
	return m.state.Clone(), m.revision(), nil
}

func (m *Memory) Save(ctx context.Context, state *models.LeagueState, rev Revision) (Revision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rev != m.currentRev() {
		return RevisionNone, ErrRevisionMismatch
	}
	m.state = state.Clone()
	m.rev++
	return m.revision(), nil
}

func (m *Memory) Backup(ctx context.Context, state *models.LeagueState, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backups[label] = state.Clone()
	return nil
}

func (m *Memory) currentRev() Revision {
	if m.state == nil {
		return RevisionNone
	}
	return m.revision()
}

func (m *Memory) revision() Revision {
	return Revision("mem-" + strconv.Itoa(m.rev))
}
