package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valdraft/draftd/internal/models"
)

func TestReports(t *testing.T) {
	ctx := context.Background()

	// one transfer and one pickup on record
	withHistory := func(t *testing.T) *TransferService {
		t.Helper()
		svc, _ := newTestService(seedStore(t), 0)
		require.NoError(t, svc.OpenWindow(ctx, 4, []string{"Andrey", "Max", "Sasha"}))
		require.NoError(t, svc.ExecuteTransfer(ctx, "Andrey", 491, models.PlayerRecord{PlayerID: 83, FullName: "New Mid", Position: models.PositionMID}, 0))
		return svc
	}

	t.Run("available players", func(t *testing.T) {
		svc := withHistory(t)
		report, err := svc.GetAvailablePlayersReport(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, report, "Mid Fielder")
		assert.Contains(t, report, "out since GW4")
	})

	t.Run("available players with a fuzzy query", func(t *testing.T) {
		svc := withHistory(t)
		report, err := svc.GetAvailablePlayersReport(ctx, "mid fielder")
		require.NoError(t, err)
		assert.Contains(t, report, "Mid Fielder")

		report, err = svc.GetAvailablePlayersReport(ctx, "zzz")
		require.NoError(t, err)
		assert.Contains(t, report, "No pooled players matching")
	})

	t.Run("history", func(t *testing.T) {
		svc := withHistory(t)
		require.NoError(t, svc.PickTransferPlayer(ctx, "Sasha", 491, 0))

		report, err := svc.GetTransferHistoryReport(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, report, "Mid Fielder ➝ New Mid")
		assert.Contains(t, report, "picked up Mid Fielder")

		report, err = svc.GetTransferHistoryReport(ctx, "Sasha")
		require.NoError(t, err)
		assert.NotContains(t, report, "New Mid")
	})

	t.Run("window status", func(t *testing.T) {
		svc := withHistory(t)
		report, err := svc.GetWindowStatusReport(ctx)
		require.NoError(t, err)
		assert.Contains(t, report, "GW4")
		assert.Contains(t, report, "Current turn: *Max*")
		assert.Contains(t, report, "✅ 1. Andrey")
		assert.Contains(t, report, "➡️ 2. Max")

		_, err = svc.CloseWindow(ctx)
		require.NoError(t, err)
		report, err = svc.GetWindowStatusReport(ctx)
		require.NoError(t, err)
		assert.Contains(t, report, "closed")
	})

	t.Run("whohas finds the owner", func(t *testing.T) {
		svc := withHistory(t)
		report, err := svc.WhoHas(ctx, "goal keeper")
		require.NoError(t, err)
		assert.Contains(t, report, "Goal Keeper")
		assert.Contains(t, report, "*Andrey*")
	})

	t.Run("whohas reports new ownership after a swap", func(t *testing.T) {
		svc := withHistory(t)
		report, err := svc.WhoHas(ctx, "new mid")
		require.NoError(t, err)
		assert.Contains(t, report, "*Andrey*")
		assert.Contains(t, report, "since GW4")
	})

	t.Run("whohas misses politely", func(t *testing.T) {
		svc := withHistory(t)
		report, err := svc.WhoHas(ctx, "nonexistent player")
		require.NoError(t, err)
		assert.Contains(t, report, "No player found")
	})

	t.Run("roster shows active and departed sections", func(t *testing.T) {
		svc := withHistory(t)
		report, err := svc.GetRosterReport(ctx, "Andrey")
		require.NoError(t, err)
		assert.Contains(t, report, "New Mid")
		assert.Contains(t, report, "*Departed:*")
		assert.Contains(t, report, "Mid Fielder — GW4")

		report, err = svc.GetRosterReport(ctx, "Nobody")
		require.NoError(t, err)
		assert.Contains(t, report, "No manager named")
	})
}
