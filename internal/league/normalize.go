package league

import "github.com/valdraft/draftd/internal/models"

// NormalizeReport summarizes what a normalization pass backfilled.
type NormalizeReport struct {
	RecordsUpdated int            `json:"records_updated"`
	PerManager     map[string]int `json:"per_manager,omitempty"`
	Conflicts      string         `json:"conflicts,omitempty"`
}

// Normalize backfills transfer-tracking fields on legacy records that
// predate the attribution scheme: such players are assumed active since
// league start through currentGw. Also repairs the document container
// shape. Idempotent: a second pass reports zero updates.
func (e *Engine) Normalize(state *models.LeagueState, currentGw int) NormalizeReport {
	report := NormalizeReport{PerManager: map[string]int{}}

	if state.Rosters == nil {
		state.Rosters = map[string][]models.PlayerRecord{}
	}
	if state.Transfers.History == nil {
		state.Transfers.History = []models.TransferEntry{}
	}
	if state.Transfers.AvailablePlayers == nil {
		state.Transfers.AvailablePlayers = []models.PlayerRecord{}
	}

	for manager, roster := range state.Rosters {
		for i := range roster {
			if e.normalizeRecord(&roster[i], currentGw) {
				report.RecordsUpdated++
				report.PerManager[manager]++
			}
		}
		state.Rosters[manager] = roster
	}
	for i := range state.Transfers.AvailablePlayers {
		p := &state.Transfers.AvailablePlayers[i]
		changed := false
		if p.Status != models.StatusTransferOut {
			p.Status = models.StatusTransferOut
			changed = true
		}
		if pos, ok := models.ParsePosition(string(p.Position)); ok && pos != p.Position {
			p.Position = pos
			changed = true
		}
		if changed {
			report.RecordsUpdated++
		}
	}

	if len(report.PerManager) == 0 {
		report.PerManager = nil
	}
	if err := e.VerifyAttribution(state); err != nil {
		report.Conflicts = err.Error()
	}
	return report
}

func (e *Engine) normalizeRecord(p *models.PlayerRecord, currentGw int) bool {
	changed := false
	if p.Status == "" {
		p.Status = models.StatusActive
		changed = true
	}
	if pos, ok := models.ParsePosition(string(p.Position)); ok && pos != p.Position {
		p.Position = pos
		changed = true
	}
	if p.TransferredInGw == 0 {
		p.TransferredInGw = 1
		changed = true
	}
	if len(p.GwsActive) == 0 && p.Status == models.StatusActive && currentGw >= p.TransferredInGw {
		p.GwsActive = models.GwRange(p.TransferredInGw, currentGw)
		changed = true
	}
	return changed
}
