package trade

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	cartIDs := []uuid.UUID{uuid.New(), uuid.New()}
	menuIDs := []uuid.UUID{uuid.New()}

	t.Run("starts pending with uncleared cart", func(t *testing.T) {
		p, err := NewPayment("Guest@Bistro.example", decimal.NewFromInt(25), "pi_123", cartIDs, menuIDs)
		require.NoError(t, err)
		assert.Equal(t, "guest@bistro.example", p.Email)
		assert.Equal(t, PaymentStatusPending, p.Status)
		assert.False(t, p.CartCleared)
		assert.Equal(t, cartIDs, p.CartIDs)
		assert.Equal(t, p.CreatedAt, p.Date)
	})

	t.Run("copies id slices", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New()}
		p, err := NewPayment("guest@bistro.example", decimal.NewFromInt(1), "", ids, nil)
		require.NoError(t, err)
		ids[0] = uuid.Nil
		assert.NotEqual(t, uuid.Nil, p.CartIDs[0])
	})

	t.Run("requires cart ids", func(t *testing.T) {
		_, err := NewPayment("guest@bistro.example", decimal.NewFromInt(25), "", nil, menuIDs)
		assert.Error(t, err)
	})

	t.Run("requires email", func(t *testing.T) {
		_, err := NewPayment("", decimal.NewFromInt(25), "", cartIDs, menuIDs)
		assert.Error(t, err)
	})
}

func TestPayment_SetStatus(t *testing.T) {
	p, err := NewPayment("guest@bistro.example", decimal.NewFromInt(25), "", []uuid.UUID{uuid.New()}, nil)
	require.NoError(t, err)

	require.NoError(t, p.SetStatus(PaymentStatusDone))
	assert.Equal(t, PaymentStatusDone, p.Status)
	assert.Error(t, p.SetStatus(PaymentStatus("refunded")))
}

func TestParsePaymentStatus(t *testing.T) {
	s, err := ParsePaymentStatus("DONE")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusDone, s)

	_, err = ParsePaymentStatus("shipped")
	assert.Error(t, err)
}

func TestCartItem(t *testing.T) {
	item, err := NewCartItem("Guest@Bistro.example", uuid.New(), "Soup", "", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, item.OwnedBy("guest@bistro.example"))
	assert.False(t, item.OwnedBy("other@bistro.example"))

	_, err = NewCartItem("guest@bistro.example", uuid.Nil, "Soup", "", decimal.NewFromInt(5))
	assert.Error(t, err)
}

func TestPartialSettlementError(t *testing.T) {
	cause := errors.New("connection reset")
	id := uuid.New()
	var err error = &PartialSettlementError{PaymentID: id, Cause: cause}

	partial, ok := AsPartialSettlement(err)
	require.True(t, ok)
	assert.Equal(t, id, partial.PaymentID)
	assert.ErrorIs(t, err, cause)

	_, ok = AsPartialSettlement(cause)
	assert.False(t, ok)
}
