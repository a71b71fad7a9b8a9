// Package store persists the whole-league state document with optimistic
// concurrency control. Every load returns a revision token; a save is
// accepted only if the backing document still carries that revision, so a
// read-modify-write round can never silently overwrite a concurrent
// writer's change.
package store

import (
	"context"
	"errors"

	"github.com/valdraft/draftd/internal/models"
)

// Revision identifies the version of the stored document (content hash or
// backend ETag, depending on the driver).
type Revision string

// RevisionNone marks a save that requires the document not to exist yet.
const RevisionNone Revision = ""

var (
	// ErrNotFound is returned by Load when no document has been saved.
	ErrNotFound = errors.New("store: state not found")
	// ErrRevisionMismatch is returned by Save when the document changed
	// since the revision was loaded.
	ErrRevisionMismatch = errors.New("store: revision mismatch")
)

// Store is a league state document store.
type Store interface {
	// Load returns the current document and its revision.
	Load(ctx context.Context) (*models.LeagueState, Revision, error)
	// Save installs state if the stored revision still equals rev
	// (RevisionNone: only if nothing is stored). Returns the new revision.
	Save(ctx context.Context, state *models.LeagueState, rev Revision) (Revision, error)
	// Backup writes a labeled point-in-time copy outside the CAS protocol.
	Backup(ctx context.Context, state *models.LeagueState, label string) error
}

// Driver names a concrete backend.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverFile   Driver = "file"
	DriverS3     Driver = "s3"
)
