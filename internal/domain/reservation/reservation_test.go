package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	when := time.Now().Add(48 * time.Hour)

	r, err := NewReservation("Guest@Bistro.example", "Guest", "555-0100", 4, when, "window seat")
	require.NoError(t, err)
	assert.Equal(t, "guest@bistro.example", r.Email)
	assert.Equal(t, 4, r.Guests)

	_, err = NewReservation("guest@bistro.example", "Guest", "", 0, when, "")
	assert.Error(t, err)

	_, err = NewReservation("guest@bistro.example", "Guest", "", 2, time.Time{}, "")
	assert.Error(t, err)

	_, err = NewReservation("bad", "Guest", "", 2, when, "")
	assert.Error(t, err)
}
