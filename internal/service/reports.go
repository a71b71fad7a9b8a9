package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/valdraft/draftd/internal/models"
)

// Markdown report builders for the bot surface.

// GetAvailablePlayersReport lists the transfer pool, optionally narrowed
// by a fuzzy name query.
func (s *TransferService) GetAvailablePlayersReport(ctx context.Context, query string) (string, error) {
	players, err := s.AvailablePlayers(ctx)
	if err != nil {
		return "", fmt.Errorf("error fetching available players: %w", err)
	}

	if query != "" {
		players = fuzzyFilter(players, query)
	}

	var sb strings.Builder
	sb.WriteString("🔁 *Transfer Pool*\n\n")
	if len(players) == 0 {
		if query != "" {
			sb.WriteString(fmt.Sprintf("No pooled players matching '%s'.", query))
		} else {
			sb.WriteString("The pool is empty.")
		}
		return sb.String(), nil
	}
	for _, p := range players {
		sb.WriteString(fmt.Sprintf("▫️ %s *%s* (%s) — id %d", p.Position, p.FullName, p.ClubName, p.PlayerID))
		if p.Price > 0 {
			sb.WriteString(fmt.Sprintf(", %.1f", p.Price))
		}
		if p.TransferredOutGw != nil {
			sb.WriteString(fmt.Sprintf(" — out since GW%d", *p.TransferredOutGw))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// GetTransferHistoryReport renders the ledger, optionally per manager.
func (s *TransferService) GetTransferHistoryReport(ctx context.Context, manager string) (string, error) {
	entries, err := s.TransferHistory(ctx, manager)
	if err != nil {
		return "", fmt.Errorf("error fetching transfer history: %w", err)
	}

	var sb strings.Builder
	if manager != "" {
		sb.WriteString(fmt.Sprintf("📜 *Transfer History — %s*\n\n", manager))
	} else {
		sb.WriteString("📜 *Transfer History*\n\n")
	}
	if len(entries) == 0 {
		sb.WriteString("No transfers yet.")
		return sb.String(), nil
	}
	for _, e := range entries {
		switch e.Type {
		case models.EntryPickup:
			sb.WriteString(fmt.Sprintf("GW%d — *%s* picked up %s (%s)\n",
				e.Gw, e.Manager, e.InPlayer.FullName, e.InPlayer.Position))
		default:
			out := "?"
			if e.OutPlayer != nil {
				out = e.OutPlayer.FullName
			}
			sb.WriteString(fmt.Sprintf("GW%d — *%s*: %s ➝ %s (%s)\n",
				e.Gw, e.Manager, out, e.InPlayer.FullName, e.InPlayer.Position))
		}
	}
	return sb.String(), nil
}

// GetWindowStatusReport renders the active transfer window and turn queue.
func (s *TransferService) GetWindowStatusReport(ctx context.Context) (string, error) {
	window, current, err := s.WindowStatus(ctx)
	if err != nil {
		return "", fmt.Errorf("error fetching window status: %w", err)
	}
	if window == nil {
		return "🚪 Transfer window is *closed*.", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🚪 *Transfer Window — GW%d*\n\n", window.Gw))
	sb.WriteString(fmt.Sprintf("Current turn: *%s*\n\nOrder:\n", current))
	for i, m := range window.ManagersOrder {
		marker := "  "
		switch {
		case i < window.CurrentManagerIndex:
			marker = "✅"
		case i == window.CurrentManagerIndex:
			marker = "➡️"
		}
		sb.WriteString(fmt.Sprintf("%s %d. %s\n", marker, i+1, m))
	}
	return sb.String(), nil
}

// WhoHas finds a player by fuzzy name across all rosters and the pool.
func (s *TransferService) WhoHas(ctx context.Context, name string) (string, error) {
	state, _, err := s.load(ctx)
	if err != nil {
		return "", fmt.Errorf("error loading state: %w", err)
	}

	type hit struct {
		player   models.PlayerRecord
		holder   string
		rank     int
		departed bool
	}
	var hits []hit
	consider := func(p models.PlayerRecord, holder string, departed bool) {
		rank := fuzzy.RankMatchNormalizedFold(name, p.FullName)
		if rank < 0 {
			return
		}
		hits = append(hits, hit{player: p, holder: holder, rank: rank, departed: departed})
	}
	for manager, roster := range state.Rosters {
		for _, p := range roster {
			consider(p, manager, p.Status == models.StatusTransferOut)
		}
	}
	for _, p := range state.Transfers.AvailablePlayers {
		consider(p, "", false)
	}

	if len(hits) == 0 {
		return fmt.Sprintf("🔍 No player found matching '%s'.", name), nil
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })

	best := hits[0]
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s — %s)\n", best.player.FullName, best.player.Position, best.player.ClubName))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	switch {
	case best.holder == "":
		sb.WriteString("In the transfer pool\n")
	case best.departed:
		sb.WriteString(fmt.Sprintf("Formerly *%s*", best.holder))
		if best.player.TransferredOutGw != nil {
			sb.WriteString(fmt.Sprintf(" (out since GW%d)", *best.player.TransferredOutGw))
		}
		sb.WriteString("\n")
	default:
		sb.WriteString(fmt.Sprintf("*%s*", best.holder))
		if best.player.TransferredInGw > 1 {
			sb.WriteString(fmt.Sprintf(" (since GW%d)", best.player.TransferredInGw))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// GetRosterReport renders a manager's current lineup and departed players.
func (s *TransferService) GetRosterReport(ctx context.Context, manager string) (string, error) {
	state, _, err := s.load(ctx)
	if err != nil {
		return "", fmt.Errorf("error loading state: %w", err)
	}
	roster, ok := state.Rosters[manager]
	if !ok {
		return fmt.Sprintf("🔍 No manager named '%s'.", manager), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s's Roster*\n\n", manager))
	for _, p := range roster {
		if p.Status != models.StatusActive {
			continue
		}
		sb.WriteString(fmt.Sprintf("▫️ %s %s (%s)\n", p.Position, p.FullName, p.ClubName))
	}
	departed := false
	for _, p := range roster {
		if p.Status != models.StatusTransferOut {
			continue
		}
		if !departed {
			sb.WriteString("\n*Departed:*\n")
			departed = true
		}
		out := ""
		if p.TransferredOutGw != nil {
			out = fmt.Sprintf(" — GW%d", *p.TransferredOutGw)
		}
		sb.WriteString(fmt.Sprintf("▫️ %s %s%s\n", p.Position, p.FullName, out))
	}
	return sb.String(), nil
}

func fuzzyFilter(players []models.PlayerRecord, query string) []models.PlayerRecord {
	type ranked struct {
		player models.PlayerRecord
		rank   int
	}
	var matched []ranked
	for _, p := range players {
		if rank := fuzzy.RankMatchNormalizedFold(query, p.FullName); rank >= 0 {
			matched = append(matched, ranked{p, rank})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].rank < matched[j].rank })
	out := make([]models.PlayerRecord, len(matched))
	for i, m := range matched {
		out[i] = m.player
	}
	return out
}
