package service

import (
	"context"

	"github.com/valdraft/draftd/internal/models"
)

// Read-side attribution facade for the scoring pipeline. The pipeline
// calls these per gameweek, per player, and never writes transfer state.
// An attribution conflict halts the read path for the affected player
// with league.ErrAttributionConflict instead of guessing an owner.

// ShouldScore reports whether playerID's points for gw count toward any
// manager.
func (s *TransferService) ShouldScore(ctx context.Context, playerID, gw int) (bool, error) {
	state, _, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return s.engine.ShouldScore(state, playerID, gw)
}

// OwnerForGw resolves who owned playerID during gw ("" if unowned).
func (s *TransferService) OwnerForGw(ctx context.Context, playerID, gw int) (string, error) {
	state, _, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return s.engine.OwnerForGw(state, playerID, gw)
}

// RosterForGw returns the lineup that scores for manager in gw.
func (s *TransferService) RosterForGw(ctx context.Context, manager string, gw int) ([]models.PlayerRecord, error) {
	state, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return s.engine.RosterForGw(state, manager, gw)
}
