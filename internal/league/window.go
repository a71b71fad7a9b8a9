package league

import "github.com/valdraft/draftd/internal/models"

// OpenWindow starts a transfer round for gw with the given manager turn
// order. An empty order defaults to the reverse of the configured manager
// list (worst standing goes first in practice, so callers usually pass an
// explicit order).
func (e *Engine) OpenWindow(state *models.LeagueState, gw int, order []string) error {
	if state.Transfers.ActiveWindow != nil {
		return rejectf(ErrWindowAlreadyOpen, "gw %d", state.Transfers.ActiveWindow.Gw)
	}
	if len(order) == 0 {
		order = make([]string, len(e.Managers))
		for i, m := range e.Managers {
			order[len(e.Managers)-1-i] = m
		}
	}
	for _, m := range order {
		if _, ok := state.Rosters[m]; !ok {
			return rejectf(ErrManagerNotFound, "manager %q in turn order", m)
		}
	}
	state.Transfers.ActiveWindow = &models.TransferWindow{
		Gw:            gw,
		ManagersOrder: order,
		OpenedAt:      e.now().UTC(),
	}
	return nil
}

// CloseWindow archives the active window. Returns false if none is open.
func (e *Engine) CloseWindow(state *models.LeagueState) bool {
	w := state.Transfers.ActiveWindow
	if w == nil {
		return false
	}
	closedAt := e.now().UTC()
	w.ClosedAt = &closedAt
	state.Transfers.LegacyWindows = append(state.Transfers.LegacyWindows, *w)
	state.Transfers.ActiveWindow = nil
	return true
}

// WindowOpen reports whether a transfer window is active.
func (e *Engine) WindowOpen(state *models.LeagueState) bool {
	return state.Transfers.ActiveWindow != nil
}

// CurrentManager returns whose turn it is, or "" when no window is open
// or the queue is exhausted.
func (e *Engine) CurrentManager(state *models.LeagueState) string {
	w := state.Transfers.ActiveWindow
	if w == nil || w.CurrentManagerIndex >= len(w.ManagersOrder) {
		return ""
	}
	return w.ManagersOrder[w.CurrentManagerIndex]
}

// AdvanceTurn moves the window to the next manager, closing the window
// when the queue runs out. Returns false if no window is open.
func (e *Engine) AdvanceTurn(state *models.LeagueState) bool {
	w := state.Transfers.ActiveWindow
	if w == nil {
		return false
	}
	w.CurrentManagerIndex++
	if w.CurrentManagerIndex >= len(w.ManagersOrder) {
		e.CloseWindow(state)
	}
	return true
}
