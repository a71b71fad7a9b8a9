package league

import "github.com/valdraft/draftd/internal/models"

// Execute applies a validated swap for currentGw. The outgoing player
// scores through currentGw-1; the incoming player scores from currentGw.
// The caller persists the mutated state atomically.
func (e *Engine) Execute(state *models.LeagueState, manager string, outPlayerID int, in models.PlayerRecord, currentGw int) (*models.TransferEntry, error) {
	if err := e.Validate(state, manager, outPlayerID, in); err != nil {
		return nil, err
	}

	roster := state.Rosters[manager]
	slot := -1
	for i := range roster {
		if roster[i].PlayerID == outPlayerID && roster[i].Status == models.StatusActive {
			slot = i
			break
		}
	}
	// unreachable after Validate, kept as a hard stop
	if slot < 0 {
		return nil, rejectf(ErrPlayerNotFound, "player %d", outPlayerID)
	}

	out := roster[slot].Clone()
	out.Status = models.StatusTransferOut
	outGw := currentGw
	out.TransferredOutGw = &outGw
	out.GwsActive = truncateBefore(out.GwsActive, currentGw)

	incoming := in.Clone()
	incoming.Status = models.StatusActive
	incoming.TransferredInGw = currentGw
	incoming.TransferredOutGw = nil
	incoming.GwsActive = models.GwRange(currentGw, e.SeasonEndGw)

	// incoming takes the vacated formation slot; the departed record stays
	// on the roster for historical attribution
	roster[slot] = incoming
	state.Rosters[manager] = append(roster, out)

	pool := removeFromPool(state.Transfers.AvailablePlayers, out.PlayerID)
	pool = removeFromPool(pool, incoming.PlayerID) // re-claim from pool
	state.Transfers.AvailablePlayers = append(pool, out.Clone())

	entry := models.TransferEntry{
		Type:      models.EntrySwap,
		Gw:        currentGw,
		Manager:   manager,
		OutPlayer: ptr(out.Clone()),
		InPlayer:  incoming.Clone(),
		Timestamp: e.now().UTC(),
		DraftType: e.DraftType,
	}
	state.Transfers.History = append(state.Transfers.History, entry)
	return &entry, nil
}

// Pick claims a pooled player into a free roster slot from currentGw
// onward. No outgoing player is named; the ledger entry has no out_player.
func (e *Engine) Pick(state *models.LeagueState, manager string, playerID int, currentGw int) (*models.TransferEntry, error) {
	if _, ok := state.Rosters[manager]; !ok {
		return nil, rejectf(ErrManagerNotFound, "manager %q", manager)
	}

	var picked *models.PlayerRecord
	for i := range state.Transfers.AvailablePlayers {
		if state.Transfers.AvailablePlayers[i].PlayerID == playerID {
			p := state.Transfers.AvailablePlayers[i].Clone()
			picked = &p
			break
		}
	}
	if picked == nil {
		return nil, rejectf(ErrPlayerNotFound, "player %d is not in the transfer pool", playerID)
	}

	if !e.freeSlot(state, manager, picked.Position) {
		return nil, rejectf(ErrSlotUnavailable, "no free %s slot for %s", picked.Position, manager)
	}

	picked.Status = models.StatusActive
	picked.TransferredInGw = currentGw
	picked.TransferredOutGw = nil
	// a fresh range: the pre-transfer gameweeks still attribute to the
	// previous owner through their departed roster record
	picked.GwsActive = models.GwRange(currentGw, e.SeasonEndGw)

	state.Rosters[manager] = append(state.Rosters[manager], picked.Clone())
	state.Transfers.AvailablePlayers = removeFromPool(state.Transfers.AvailablePlayers, playerID)

	entry := models.TransferEntry{
		Type:      models.EntryPickup,
		Gw:        currentGw,
		Manager:   manager,
		InPlayer:  picked.Clone(),
		Timestamp: e.now().UTC(),
		DraftType: e.DraftType,
	}
	state.Transfers.History = append(state.Transfers.History, entry)
	return &entry, nil
}

// AvailablePlayers lists the transfer pool.
func (e *Engine) AvailablePlayers(state *models.LeagueState) []models.PlayerRecord {
	out := make([]models.PlayerRecord, len(state.Transfers.AvailablePlayers))
	for i, p := range state.Transfers.AvailablePlayers {
		out[i] = p.Clone()
	}
	return out
}

// History returns ledger entries, optionally filtered by manager.
func (e *Engine) History(state *models.LeagueState, manager string) []models.TransferEntry {
	var out []models.TransferEntry
	for _, entry := range state.Transfers.History {
		if manager == "" || entry.Manager == manager {
			out = append(out, entry)
		}
	}
	return out
}

func truncateBefore(gws []int, gw int) []int {
	out := make([]int, 0, len(gws))
	for _, g := range gws {
		if g < gw {
			out = append(out, g)
		}
	}
	return out
}

func removeFromPool(pool []models.PlayerRecord, playerID int) []models.PlayerRecord {
	out := pool[:0]
	for _, p := range pool {
		if p.PlayerID != playerID {
			out = append(out, p)
		}
	}
	return out
}

func ptr(p models.PlayerRecord) *models.PlayerRecord { return &p }
