package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/valdraft/draftd/internal/league"
	"github.com/valdraft/draftd/internal/metrics"
	"github.com/valdraft/draftd/internal/models"
	"github.com/valdraft/draftd/internal/store"
)

// ErrConcurrentModification is surfaced after the retry budget for
// optimistic-lock conflicts is exhausted. Transient: the caller may retry
// the whole operation; no data was lost.
var ErrConcurrentModification = errors.New("concurrent modification, try again")

// TransferService orchestrates the transfer engine over the state store.
// Every mutating operation is a load -> engine -> save round: the engine
// works on the loaded snapshot and the save is accepted only if the store
// still holds the loaded revision, so two concurrent operations can never
// corrupt each other's writes.
type TransferService struct {
	store   store.Store
	engine  *league.Engine
	metrics *metrics.Metrics
	retries int
}

func NewTransferService(st store.Store, engine *league.Engine, m *metrics.Metrics, retries int) *TransferService {
	if retries < 0 {
		retries = 0
	}
	return &TransferService{store: st, engine: engine, metrics: m, retries: retries}
}

// load returns the current document, seeding an empty league on first use.
func (s *TransferService) load(ctx context.Context) (*models.LeagueState, store.Revision, error) {
	state, rev, err := s.store.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return models.NewLeagueState(s.engine.Managers), store.RevisionNone, nil
	}
	if err != nil {
		return nil, store.RevisionNone, err
	}
	return state, rev, nil
}

// update runs fn against a fresh snapshot and installs the result,
// retrying the whole round on revision conflicts. fn is re-run against
// re-loaded state on every attempt, so a conflicting operation is
// re-validated rather than replayed blindly.
func (s *TransferService) update(ctx context.Context, fn func(*models.LeagueState) error) error {
	for attempt := 0; ; attempt++ {
		state, rev, err := s.load(ctx)
		if err != nil {
			return err
		}
		if err := fn(state); err != nil {
			return err
		}
		if _, err := s.store.Save(ctx, state, rev); err == nil {
			return nil
		} else if !errors.Is(err, store.ErrRevisionMismatch) {
			return err
		}
		s.metrics.RevisionConflicts.Inc()
		if attempt >= s.retries {
			s.metrics.RetriesExhausted.Inc()
			return ErrConcurrentModification
		}
		slog.Warn("state changed underneath, retrying", "attempt", attempt+1)
	}
}

// ExecuteTransfer applies a position-matched swap for manager. gw <= 0
// means the active window's gameweek. The transfer window must be open and
// it must be manager's turn; an executed transfer consumes the turn.
func (s *TransferService) ExecuteTransfer(ctx context.Context, manager string, outPlayerID int, in models.PlayerRecord, gw int) error {
	err := s.update(ctx, func(state *models.LeagueState) error {
		if !s.engine.WindowOpen(state) {
			return &league.ValidationError{Reason: league.ErrWindowClosed}
		}
		if current := s.engine.CurrentManager(state); current != manager {
			return &league.ValidationError{
				Reason: league.ErrNotYourTurn,
				Detail: fmt.Sprintf("current turn: %s", current),
			}
		}
		currentGw := gw
		if currentGw <= 0 {
			currentGw = state.Transfers.ActiveWindow.Gw
		}
		if _, err := s.engine.Execute(state, manager, outPlayerID, in, currentGw); err != nil {
			return err
		}
		s.engine.AdvanceTurn(state)
		return nil
	})
	s.count(err, s.metrics.TransfersExecuted)
	return err
}

// PickTransferPlayer claims a pooled player for manager. Requires an open
// window but not the turn: pool pickups are first come, first served.
func (s *TransferService) PickTransferPlayer(ctx context.Context, manager string, playerID, gw int) error {
	err := s.update(ctx, func(state *models.LeagueState) error {
		if !s.engine.WindowOpen(state) {
			return &league.ValidationError{Reason: league.ErrWindowClosed}
		}
		currentGw := gw
		if currentGw <= 0 {
			currentGw = state.Transfers.ActiveWindow.Gw
		}
		_, err := s.engine.Pick(state, manager, playerID, currentGw)
		return err
	})
	s.count(err, s.metrics.Pickups)
	return err
}

// ValidateTransfer is the read-only legality check. Safe to call
// repeatedly; never mutates state.
func (s *TransferService) ValidateTransfer(ctx context.Context, manager string, outPlayerID int, in models.PlayerRecord) error {
	state, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.engine.Validate(state, manager, outPlayerID, in)
}

// AvailablePlayers returns the transfer pool.
func (s *TransferService) AvailablePlayers(ctx context.Context) ([]models.PlayerRecord, error) {
	state, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.AvailablePlayers(state), nil
}

// TransferHistory returns ledger entries, optionally for one manager.
func (s *TransferService) TransferHistory(ctx context.Context, manager string) ([]models.TransferEntry, error) {
	state, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.History(state, manager), nil
}

// Normalize backfills transfer-tracking fields on legacy records.
// Idempotent; used once per league migration.
func (s *TransferService) Normalize(ctx context.Context, currentGw int) (league.NormalizeReport, error) {
	var report league.NormalizeReport
	err := s.update(ctx, func(state *models.LeagueState) error {
		report = s.engine.Normalize(state, currentGw)
		return nil
	})
	return report, err
}

// OpenWindow backs up the current document and starts a transfer round.
func (s *TransferService) OpenWindow(ctx context.Context, gw int, order []string) error {
	state, _, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := s.store.Backup(ctx, state, "before_transfer_window"); err != nil {
		slog.Error("state backup failed", "error", err)
	}
	return s.update(ctx, func(state *models.LeagueState) error {
		return s.engine.OpenWindow(state, gw, order)
	})
}

// CloseWindow archives the active window. Returns false if none was open.
func (s *TransferService) CloseWindow(ctx context.Context) (bool, error) {
	closed := false
	err := s.update(ctx, func(state *models.LeagueState) error {
		closed = s.engine.CloseWindow(state)
		return nil
	})
	return closed, err
}

// SkipTurn passes the current turn. Only the manager whose turn it is may
// skip, unless admin.
func (s *TransferService) SkipTurn(ctx context.Context, manager string, admin bool) error {
	return s.update(ctx, func(state *models.LeagueState) error {
		if !s.engine.WindowOpen(state) {
			return &league.ValidationError{Reason: league.ErrWindowClosed}
		}
		if current := s.engine.CurrentManager(state); current != manager && !admin {
			return &league.ValidationError{
				Reason: league.ErrNotYourTurn,
				Detail: fmt.Sprintf("current turn: %s", current),
			}
		}
		s.engine.AdvanceTurn(state)
		return nil
	})
}

// WindowStatus returns the active window (nil if closed) and whose turn
// it is.
func (s *TransferService) WindowStatus(ctx context.Context) (*models.TransferWindow, string, error) {
	state, _, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	if state.Transfers.ActiveWindow == nil {
		return nil, "", nil
	}
	w := *state.Transfers.ActiveWindow
	return &w, s.engine.CurrentManager(state), nil
}

func (s *TransferService) count(err error, success interface{ Inc() }) {
	var vErr *league.ValidationError
	switch {
	case err == nil:
		success.Inc()
	case errors.As(err, &vErr):
		s.metrics.ValidationRejected.Inc()
	}
}
