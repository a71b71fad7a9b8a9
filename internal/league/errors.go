package league

import (
	"errors"
	"fmt"
)

var (
	ErrManagerNotFound     = errors.New("manager not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPositionMismatch    = errors.New("position mismatch")
	ErrAlreadyOwned        = errors.New("player already owned")
	ErrSlotUnavailable     = errors.New("no free roster slot")
	ErrWindowClosed        = errors.New("transfer window not open")
	ErrWindowAlreadyOpen   = errors.New("transfer window already open")
	ErrNotYourTurn         = errors.New("not this manager's turn")
	ErrAttributionConflict = errors.New("attribution conflict")
)

// ValidationError wraps a rejection reason with the detail of what was
// being attempted. errors.Is matches the underlying reason.
type ValidationError struct {
	Reason error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %s", e.Reason.Error(), e.Detail)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

func rejectf(reason error, format string, args ...any) error {
	return &ValidationError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}
