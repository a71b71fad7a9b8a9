package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	for input, want := range map[string]Position{
		"GK":         PositionGK,
		"DEF":        PositionDEF,
		"MID":        PositionMID,
		"FWD":        PositionFWD,
		"Goalkeeper": PositionGK,
		"Defender":   PositionDEF,
		"Midfielder": PositionMID,
		"Forward":    PositionFWD,
	} {
		got, ok := ParsePosition(input)
		assert.Truef(t, ok, "input %q", input)
		assert.Equal(t, want, got)
	}

	_, ok := ParsePosition("Striker")
	assert.False(t, ok)
}

func TestGwRange(t *testing.T) {
	assert.Equal(t, []int{4, 5, 6}, GwRange(4, 6))
	assert.Equal(t, []int{7}, GwRange(7, 7))
	assert.Empty(t, GwRange(5, 4))
}

func TestPlayerRecordCloneIsDeep(t *testing.T) {
	out := 4
	p := PlayerRecord{
		PlayerID:         491,
		GwsActive:        []int{1, 2, 3},
		TransferredOutGw: &out,
	}
	c := p.Clone()
	c.GwsActive[0] = 99
	*c.TransferredOutGw = 99

	assert.Equal(t, []int{1, 2, 3}, p.GwsActive)
	assert.Equal(t, 4, *p.TransferredOutGw)
}

func TestLeagueStateDocumentShape(t *testing.T) {
	state := NewLeagueState([]string{"Andrey"})
	state.Rosters["Andrey"] = []PlayerRecord{{
		PlayerID:        491,
		FullName:        "Mid Fielder",
		Position:        PositionMID,
		Status:          StatusActive,
		GwsActive:       GwRange(1, 3),
		TransferredInGw: 1,
	}}

	raw, err := json.Marshal(state)
	require.NoError(t, err)

	// field names the legacy documents use
	for _, field := range []string{
		`"rosters"`, `"transfers"`, `"history"`, `"available_players"`,
		`"playerId"`, `"gws_active"`, `"transferred_in_gw"`, `"transferred_out_gw"`,
	} {
		assert.Contains(t, string(raw), field)
	}

	var back LeagueState
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, state.Rosters, back.Rosters)
}
