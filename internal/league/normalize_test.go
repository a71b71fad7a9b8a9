package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valdraft/draftd/internal/models"
)

func TestNormalize(t *testing.T) {
	engine := newTestEngine()

	t.Run("backfills legacy roster records", func(t *testing.T) {
		state := models.NewLeagueState([]string{"Andrey", "Max", "Sasha"})
		state.Rosters["Andrey"] = []models.PlayerRecord{
			{PlayerID: 491, FullName: "Legacy Mid", Position: "Midfielder"},
		}

		report := engine.Normalize(state, 7)

		assert.Equal(t, 1, report.RecordsUpdated)
		assert.Equal(t, map[string]int{"Andrey": 1}, report.PerManager)
		assert.Empty(t, report.Conflicts)

		p := state.Rosters["Andrey"][0]
		assert.Equal(t, models.StatusActive, p.Status)
		assert.Equal(t, models.PositionMID, p.Position)
		assert.Equal(t, 1, p.TransferredInGw)
		assert.Equal(t, models.GwRange(1, 7), p.GwsActive)
	})

	t.Run("idempotent", func(t *testing.T) {
		state := models.NewLeagueState([]string{"Andrey", "Max", "Sasha"})
		state.Rosters["Andrey"] = []models.PlayerRecord{
			{PlayerID: 491, FullName: "Legacy Mid", Position: "Midfielder"},
		}

		first := engine.Normalize(state, 7)
		require.Equal(t, 1, first.RecordsUpdated)

		second := engine.Normalize(state, 7)
		assert.Zero(t, second.RecordsUpdated)
		assert.Nil(t, second.PerManager)
	})

	t.Run("already normalized records are untouched", func(t *testing.T) {
		state := testState()
		before := state.Clone()

		report := engine.Normalize(state, 7)

		assert.Zero(t, report.RecordsUpdated)
		assert.Equal(t, before.Rosters, state.Rosters)
	})

	t.Run("repairs container shape", func(t *testing.T) {
		state := &models.LeagueState{}

		engine.Normalize(state, 7)

		assert.NotNil(t, state.Rosters)
		assert.NotNil(t, state.Transfers.History)
		assert.NotNil(t, state.Transfers.AvailablePlayers)
	})

	t.Run("pool records get the transfer_out status", func(t *testing.T) {
		state := testState()
		state.Transfers.AvailablePlayers = []models.PlayerRecord{
			{PlayerID: 700, FullName: "Pooled", Position: "Forward", Status: models.StatusActive},
		}

		report := engine.Normalize(state, 7)

		require.Equal(t, 1, report.RecordsUpdated)
		assert.Equal(t, models.StatusTransferOut, state.Transfers.AvailablePlayers[0].Status)
		assert.Equal(t, models.PositionFWD, state.Transfers.AvailablePlayers[0].Position)
	})

	t.Run("reports attribution conflicts instead of fixing them", func(t *testing.T) {
		state := testState()
		state.Rosters["Max"] = append(state.Rosters["Max"], seededPlayer(491, "Mid Fielder", models.PositionMID))

		report := engine.Normalize(state, 7)

		assert.NotEmpty(t, report.Conflicts)
		// both claiming records survive untouched
		assert.Equal(t, models.GwRange(1, 38), state.Rosters["Andrey"][0].GwsActive)
	})
}
