package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bistro/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func unclearedPayment(t *testing.T) *trade.Payment {
	t.Helper()
	p, err := trade.NewPayment(owner, decimal.NewFromInt(10), "", []uuid.UUID{uuid.New()}, nil)
	require.NoError(t, err)
	return p
}

func TestCartReconciler_RunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ok, failing := unclearedPayment(t), unclearedPayment(t)

	payments := new(MockPaymentRepository)
	payments.On("FindUncleared", ctx, now.Add(-30*time.Second), 10).Return([]*trade.Payment{failing, ok}, nil)
	cleaner := new(MockCartCleaner)
	cleaner.On("ReconcileCart", ctx, failing.ID).Return(nil, errors.New("still down"))
	cleaner.On("ReconcileCart", ctx, ok.ID).Return(&CleanupResult{PaymentID: ok.ID, DeletedCartCount: 1}, nil)

	r := NewCartReconciler(ReconcilerConfig{Interval: time.Minute, Grace: 30 * time.Second, BatchSize: 10},
		payments, cleaner, zap.NewNop())
	r.now = func() time.Time { return now }

	handled, err := r.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, handled)
	cleaner.AssertExpectations(t)
}

func TestCartReconciler_RunOnce_ScanFailure(t *testing.T) {
	payments := new(MockPaymentRepository)
	payments.On("FindUncleared", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db gone"))

	r := NewCartReconciler(DefaultReconcilerConfig(), payments, new(MockCartCleaner), zap.NewNop())
	_, err := r.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestCartReconciler_StartStop(t *testing.T) {
	payments := new(MockPaymentRepository)
	payments.On("FindUncleared", mock.Anything, mock.Anything, mock.Anything).Return([]*trade.Payment{}, nil).Maybe()

	r := NewCartReconciler(ReconcilerConfig{Interval: 5 * time.Millisecond}, payments, new(MockCartCleaner), zap.NewNop())
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Start(context.Background()))
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, r.Stop(ctx))
	assert.NoError(t, r.Stop(ctx))
}
