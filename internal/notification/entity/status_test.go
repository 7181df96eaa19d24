package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromString(t *testing.T) {
	tests := map[string]Status{
		"PENDING":   StatusPending,
		"pending":   StatusPending,
		" sent ":    StatusSent,
		"PARTIAL":   StatusPartial,
		"FAILED":    StatusFailed,
		"CANCELED":  StatusCanceled,
		"CANCELLED": StatusUnknown,
		"":          StatusUnknown,
	}
	for raw, want := range tests {
		assert.Equal(t, want, StatusFromString(raw), "raw=%q", raw)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusUnknown.Terminal())

	for _, st := range []Status{StatusSent, StatusPartial, StatusFailed, StatusCanceled} {
		assert.True(t, st.Terminal(), st.String())
	}
}

func TestStatusStringRoundTrip(t *testing.T) {
	for _, st := range []Status{StatusPending, StatusSent, StatusPartial, StatusFailed, StatusCanceled} {
		assert.Equal(t, st, StatusFromString(st.String()))
	}
}
