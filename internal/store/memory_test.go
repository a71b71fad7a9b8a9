package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valdraft/draftd/internal/models"
)

func sampleState() *models.LeagueState {
	state := models.NewLeagueState([]string{"Andrey", "Max"})
	state.Rosters["Andrey"] = []models.PlayerRecord{{
		PlayerID:        491,
		FullName:        "Mid Fielder",
		Position:        models.PositionMID,
		Status:          models.StatusActive,
		GwsActive:       models.GwRange(1, 38),
		TransferredInGw: 1,
	}}
	return state
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store reports not found", func(t *testing.T) {
		m := NewMemory()
		_, _, err := m.Load(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create requires RevisionNone", func(t *testing.T) {
		m := NewMemory()
		_, err := m.Save(ctx, sampleState(), Revision("mem-9"))
		assert.ErrorIs(t, err, ErrRevisionMismatch)

		rev, err := m.Save(ctx, sampleState(), RevisionNone)
		require.NoError(t, err)
		assert.NotEqual(t, RevisionNone, rev)
	})

	t.Run("save round trip", func(t *testing.T) {
		m := NewMemory()
		rev, err := m.Save(ctx, sampleState(), RevisionNone)
		require.NoError(t, err)

		loaded, loadedRev, err := m.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, rev, loadedRev)
		assert.Equal(t, sampleState().Rosters, loaded.Rosters)
	})

	t.Run("stale revision is rejected", func(t *testing.T) {
		m := NewMemory()
		rev, err := m.Save(ctx, sampleState(), RevisionNone)
		require.NoError(t, err)

		// first writer wins
		_, err = m.Save(ctx, sampleState(), rev)
		require.NoError(t, err)

		_, err = m.Save(ctx, sampleState(), rev)
		assert.ErrorIs(t, err, ErrRevisionMismatch)
	})

	t.Run("loaded state is a private copy", func(t *testing.T) {
		m := NewMemory()
		_, err := m.Save(ctx, sampleState(), RevisionNone)
		require.NoError(t, err)

		loaded, _, err := m.Load(ctx)
		require.NoError(t, err)
		loaded.Rosters["Andrey"][0].FullName = "Mutated"

		fresh, _, err := m.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Mid Fielder", fresh.Rosters["Andrey"][0].FullName)
	})

	t.Run("backup does not touch the live document", func(t *testing.T) {
		m := NewMemory()
		_, err := m.Save(ctx, sampleState(), RevisionNone)
		require.NoError(t, err)
		_, rev, err := m.Load(ctx)
		require.NoError(t, err)

		require.NoError(t, m.Backup(ctx, sampleState(), "before_transfer_window"))

		_, after, err := m.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, rev, after)
	})
}
