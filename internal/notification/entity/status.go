package entity

import "strings"

// Status is the notification lifecycle state. PENDING is the only
// non-terminal state; every other state is final.
type Status int16

const (
	StatusUnknown  Status = 0
	StatusPending  Status = 1
	StatusSent     Status = 2
	StatusPartial  Status = 3
	StatusFailed   Status = 4
	StatusCanceled Status = 5
)

func StatusFromString(raw string) Status {
	switch strings.TrimSpace(strings.ToUpper(raw)) {
	case "PENDING":
		return StatusPending
	case "SENT":
		return StatusSent
	case "PARTIAL":
		return StatusPartial
	case "FAILED":
		return StatusFailed
	case "CANCELED":
		return StatusCanceled
	default:
		return StatusUnknown
	}
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusSent:
		return "SENT"
	case StatusPartial:
		return "PARTIAL"
	case StatusFailed:
		return "FAILED"
	case StatusCanceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the state admits no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusSent, StatusPartial, StatusFailed, StatusCanceled:
		return true
	default:
		return false
	}
}
