package league

import (
	"time"

	"github.com/valdraft/draftd/internal/models"
)

// BudgetRule is an optional league-specific constraint on the incoming
// player of a transfer, checked after the standard validation.
type BudgetRule func(state *models.LeagueState, manager string, in models.PlayerRecord) error

// Engine applies transfer operations to a league state document. All
// methods are pure over the state they are given: callers pass a snapshot
// and persist the mutated document atomically.
type Engine struct {
	DraftType      string
	SeasonEndGw    int
	PositionLimits map[models.Position]int
	Managers       []string
	Budget         BudgetRule

	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the ledger timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithBudgetRule installs a league-specific budget/cap check.
func WithBudgetRule(rule BudgetRule) Option {
	return func(e *Engine) { e.Budget = rule }
}

// NewEngine builds an engine for one draft instance. seasonEndGw bounds the
// materialized gws_active range of incoming players; positionLimits caps
// active roster slots per position (a missing position means no cap).
func NewEngine(draftType string, seasonEndGw int, positionLimits map[models.Position]int, managers []string, opts ...Option) *Engine {
	e := &Engine{
		DraftType:      draftType,
		SeasonEndGw:    seasonEndGw,
		PositionLimits: positionLimits,
		Managers:       managers,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
