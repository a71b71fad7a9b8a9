package models

// Position is the formation slot class a player occupies.
type Position string

const (
	PositionGK  Position = "GK"
	PositionDEF Position = "DEF"
	PositionMID Position = "MID"
	PositionFWD Position = "FWD"
)

// legacy long-form names still present in old state documents
var legacyPositions = map[string]Position{
	"Goalkeeper": PositionGK,
	"Defender":   PositionDEF,
	"Midfielder": PositionMID,
	"Forward":    PositionFWD,
}

// ParsePosition normalizes a position string, accepting both the short
// enum values and the long-form names written by earlier seasons.
func ParsePosition(s string) (Position, bool) {
	switch Position(s) {
	case PositionGK, PositionDEF, PositionMID, PositionFWD:
		return Position(s), true
	}
	if p, ok := legacyPositions[s]; ok {
		return p, true
	}
	return "", false
}

// Status tracks whether a roster record counts toward the current lineup.
type Status string

const (
	StatusActive      Status = "active"
	StatusTransferOut Status = "transfer_out"
)

// PlayerRecord is one player entry inside a roster or the transfer pool.
// JSON field names match the legacy state document so existing league
// files load unchanged.
type PlayerRecord struct {
	PlayerID int      `json:"playerId"`
	FullName string   `json:"fullName"`
	ClubName string   `json:"clubName"`
	Position Position `json:"position"`
	Price    float64  `json:"price"`
	Status   Status   `json:"status"`

	// GwsActive is the contiguous ascending range of gameweeks during
	// which this record counts for its owner. Bounded by
	// [TransferredInGw, TransferredOutGw-1]; never rewritten for
	// gameweeks already scored.
	GwsActive        []int `json:"gws_active"`
	TransferredInGw  int   `json:"transferred_in_gw,omitempty"`
	TransferredOutGw *int  `json:"transferred_out_gw"`
}

// ActiveInGw reports whether this record claims the given gameweek.
func (p *PlayerRecord) ActiveInGw(gw int) bool {
	for _, g := range p.GwsActive {
		if g == gw {
			return true
		}
	}
	return false
}

// FirstActiveGw returns the first gameweek of the record's range, or 0.
func (p *PlayerRecord) FirstActiveGw() int {
	if len(p.GwsActive) == 0 {
		return 0
	}
	return p.GwsActive[0]
}

// LastActiveGw returns the last gameweek of the record's range, or 0.
func (p *PlayerRecord) LastActiveGw() int {
	if len(p.GwsActive) == 0 {
		return 0
	}
	return p.GwsActive[len(p.GwsActive)-1]
}

// Clone returns a deep copy of the record.
func (p PlayerRecord) Clone() PlayerRecord {
	c := p
	if p.GwsActive != nil {
		c.GwsActive = append([]int(nil), p.GwsActive...)
	}
	if p.TransferredOutGw != nil {
		out := *p.TransferredOutGw
		c.TransferredOutGw = &out
	}
	return c
}

// GwRange materializes the contiguous range [from, to].
func GwRange(from, to int) []int {
	if to < from {
		return []int{}
	}
	gws := make([]int, 0, to-from+1)
	for gw := from; gw <= to; gw++ {
		gws = append(gws, gw)
	}
	return gws
}
