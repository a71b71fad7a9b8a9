package league

import "github.com/valdraft/draftd/internal/models"

// Validate decides whether a proposed swap is legal. First failing check
// wins; no side effects, safe to call repeatedly.
func (e *Engine) Validate(state *models.LeagueState, manager string, outPlayerID int, in models.PlayerRecord) error {
	roster, ok := state.Rosters[manager]
	if !ok {
		return rejectf(ErrManagerNotFound, "manager %q", manager)
	}

	out := findActive(roster, outPlayerID)
	if out == nil {
		return rejectf(ErrPlayerNotFound, "player %d not active in %s's roster", outPlayerID, manager)
	}

	if in.Position != out.Position {
		return rejectf(ErrPositionMismatch, "%s -> %s", out.Position, in.Position)
	}

	if owner := activeOwner(state, in.PlayerID); owner != "" {
		return rejectf(ErrAlreadyOwned, "player %d is active on %s's roster", in.PlayerID, owner)
	}

	if e.Budget != nil {
		if err := e.Budget(state, manager, in); err != nil {
			return &ValidationError{Reason: err}
		}
	}
	return nil
}

func findActive(roster []models.PlayerRecord, playerID int) *models.PlayerRecord {
	for i := range roster {
		if roster[i].PlayerID == playerID && roster[i].Status == models.StatusActive {
			return &roster[i]
		}
	}
	return nil
}

// activeOwner returns the manager holding playerID on an active roster
// slot, or "" if nobody does.
func activeOwner(state *models.LeagueState, playerID int) string {
	for manager, roster := range state.Rosters {
		if findActive(roster, playerID) != nil {
			return manager
		}
	}
	return ""
}

// freeSlot reports whether manager has an open formation slot for pos.
func (e *Engine) freeSlot(state *models.LeagueState, manager string, pos models.Position) bool {
	limit, capped := e.PositionLimits[pos]
	if !capped {
		return true
	}
	occupied := 0
	for _, p := range state.Rosters[manager] {
		if p.Status == models.StatusActive && p.Position == pos {
			occupied++
		}
	}
	return occupied < limit
}
