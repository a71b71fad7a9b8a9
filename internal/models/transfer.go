package models

import "time"

// EntryType distinguishes the two kinds of ledger entries.
type EntryType string

const (
	// EntrySwap is a position-matched swap of an owned player for a new one.
	EntrySwap EntryType = "swap"
	// EntryPickup claims a pooled player into a free slot, no outgoing player.
	EntryPickup EntryType = "pickup"
)

// TransferEntry is one immutable row of the transfer ledger. OutPlayer is
// the pre-transfer snapshot and is nil for pickup entries.
type TransferEntry struct {
	Type      EntryType     `json:"type"`
	Gw        int           `json:"gw"`
	Manager   string        `json:"manager"`
	OutPlayer *PlayerRecord `json:"out_player,omitempty"`
	InPlayer  PlayerRecord  `json:"in_player"`
	Timestamp time.Time     `json:"ts"`
	DraftType string        `json:"draft_type"`
}

// TransferWindow is an open transfer round: an ordered queue of manager
// turns for a given gameweek.
type TransferWindow struct {
	Gw                  int        `json:"gw"`
	ManagersOrder       []string   `json:"managers_order"`
	CurrentManagerIndex int        `json:"current_manager_index"`
	OpenedAt            time.Time  `json:"opened_at"`
	ClosedAt            *time.Time `json:"closed_at,omitempty"`
}

// TransferState groups everything the transfer system owns inside the
// league document.
type TransferState struct {
	History          []TransferEntry  `json:"history"`
	AvailablePlayers []PlayerRecord   `json:"available_players"`
	ActiveWindow     *TransferWindow  `json:"active_window"`
	LegacyWindows    []TransferWindow `json:"legacy_windows,omitempty"`
}

// LeagueState is the whole-league document: one per draft instance.
type LeagueState struct {
	Rosters   map[string][]PlayerRecord `json:"rosters"`
	Transfers TransferState             `json:"transfers"`
}

// NewLeagueState returns an empty document with a roster per manager.
func NewLeagueState(managers []string) *LeagueState {
	rosters := make(map[string][]PlayerRecord, len(managers))
	for _, m := range managers {
		rosters[m] = []PlayerRecord{}
	}
	return &LeagueState{
		Rosters: rosters,
		Transfers: TransferState{
			History:          []TransferEntry{},
			AvailablePlayers: []PlayerRecord{},
		},
	}
}

// Clone returns a deep copy of the document. Operations work on a clone so
// a failed validation never leaves a half-mutated state behind.
func (s *LeagueState) Clone() *LeagueState {
	c := &LeagueState{
		Rosters: make(map[string][]PlayerRecord, len(s.Rosters)),
	}
	for manager, roster := range s.Rosters {
		cr := make([]PlayerRecord, len(roster))
		for i, p := range roster {
			cr[i] = p.Clone()
		}
		c.Rosters[manager] = cr
	}
	c.Transfers.History = make([]TransferEntry, len(s.Transfers.History))
	for i, e := range s.Transfers.History {
		ce := e
		if e.OutPlayer != nil {
			out := e.OutPlayer.Clone()
			ce.OutPlayer = &out
		}
		ce.InPlayer = e.InPlayer.Clone()
		c.Transfers.History[i] = ce
	}
	c.Transfers.AvailablePlayers = make([]PlayerRecord, len(s.Transfers.AvailablePlayers))
	for i, p := range s.Transfers.AvailablePlayers {
		c.Transfers.AvailablePlayers[i] = p.Clone()
	}
	if s.Transfers.ActiveWindow != nil {
		w := cloneWindow(*s.Transfers.ActiveWindow)
		c.Transfers.ActiveWindow = &w
	}
	if s.Transfers.LegacyWindows != nil {
		c.Transfers.LegacyWindows = make([]TransferWindow, len(s.Transfers.LegacyWindows))
		for i, w := range s.Transfers.LegacyWindows {
			c.Transfers.LegacyWindows[i] = cloneWindow(w)
		}
	}
	return c
}

func cloneWindow(w TransferWindow) TransferWindow {
	c := w
	c.ManagersOrder = append([]string(nil), w.ManagersOrder...)
	if w.ClosedAt != nil {
		t := *w.ClosedAt
		c.ClosedAt = &t
	}
	return c
}
