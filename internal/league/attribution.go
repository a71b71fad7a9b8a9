package league

import "github.com/valdraft/draftd/internal/models"

// OwnerForGw resolves which manager owned playerID during gw, scanning
// active and departed roster records. Returns "" when nobody claims the
// gameweek. Two different managers claiming the same gameweek is a data
// integrity fault and surfaces as ErrAttributionConflict, never a guess.
func (e *Engine) OwnerForGw(state *models.LeagueState, playerID, gw int) (string, error) {
	owner := ""
	for manager, roster := range state.Rosters {
		for i := range roster {
			if roster[i].PlayerID != playerID || !roster[i].ActiveInGw(gw) {
				continue
			}
			if owner != "" && owner != manager {
				return "", rejectf(ErrAttributionConflict,
					"player %d gw %d claimed by %s and %s", playerID, gw, owner, manager)
			}
			owner = manager
		}
	}
	return owner, nil
}

// ShouldScore reports whether playerID's points for gw count toward any
// manager. The scoring pipeline calls this per gameweek, per player.
func (e *Engine) ShouldScore(state *models.LeagueState, playerID, gw int) (bool, error) {
	owner, err := e.OwnerForGw(state, playerID, gw)
	if err != nil {
		return false, err
	}
	return owner != "", nil
}

// RosterForGw returns the lineup that scores for manager in gw: the
// manager's full historical roster filtered to records active that week.
// This can differ from the current roster after transfers.
func (e *Engine) RosterForGw(state *models.LeagueState, manager string, gw int) ([]models.PlayerRecord, error) {
	roster, ok := state.Rosters[manager]
	if !ok {
		return nil, rejectf(ErrManagerNotFound, "manager %q", manager)
	}
	var lineup []models.PlayerRecord
	for i := range roster {
		if roster[i].ActiveInGw(gw) {
			lineup = append(lineup, roster[i].Clone())
		}
	}
	return lineup, nil
}

// VerifyAttribution checks the single-owner invariant across the whole
// document: no (player, gameweek) pair may be claimed by two managers.
func (e *Engine) VerifyAttribution(state *models.LeagueState) error {
	type claim struct{ player, gw int }
	owners := make(map[claim]string)
	for manager, roster := range state.Rosters {
		for i := range roster {
			for _, gw := range roster[i].GwsActive {
				key := claim{roster[i].PlayerID, gw}
				if prev, ok := owners[key]; ok && prev != manager {
					return rejectf(ErrAttributionConflict,
						"player %d gw %d claimed by %s and %s", key.player, key.gw, prev, manager)
				}
				owners[key] = manager
			}
		}
	}
	return nil
}
