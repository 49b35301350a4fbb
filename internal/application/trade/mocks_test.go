package trade

import (
	"context"
	"time"

	"github.com/bistro/backend/internal/domain/catalog"
	"github.com/bistro/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of trade.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context, item *trade.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) FindByEmail(ctx context.Context, email string) ([]*trade.CartItem, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*trade.CartItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.CartItem), args.Error(1)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID, email string) (int64, error) {
	args := m.Called(ctx, id, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository is a mock implementation of trade.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *trade.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context) ([]*trade.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByEmail(ctx context.Context, email string) ([]*trade.Payment, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status trade.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPaymentRepository) MarkCartCleared(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindUncleared(ctx context.Context, before time.Time, limit int) ([]*trade.Payment, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*trade.Payment), args.Error(1)
}

// MockSettlementUnitOfWork is a mock implementation of trade.SettlementUnitOfWork
type MockSettlementUnitOfWork struct {
	mock.Mock
}

func (m *MockSettlementUnitOfWork) SettleAtomically(ctx context.Context, payment *trade.Payment) (int64, error) {
	args := m.Called(ctx, payment)
	return args.Get(0).(int64), args.Error(1)
}

// MockMenuItemRepository is a mock implementation of catalog.MenuItemRepository
type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.MenuItem, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*catalog.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) FindAll(ctx context.Context) ([]*catalog.MenuItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*catalog.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Save(ctx context.Context, item *catalog.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentGateway is a mock implementation of PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, amount int64) (string, error) {
	args := m.Called(ctx, amount)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Currency() string {
	return "usd"
}

// MockCartCleaner is a mock implementation of CartCleaner
type MockCartCleaner struct {
	mock.Mock
}

func (m *MockCartCleaner) ReconcileCart(ctx context.Context, paymentID uuid.UUID) (*CleanupResult, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CleanupResult), args.Error(1)
}

// countingRecorder tallies settlement outcomes
type countingRecorder struct {
	settled    map[bool]int
	partial    int
	duplicates int
	cleanups   map[string][]bool
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{settled: map[bool]int{}, cleanups: map[string][]bool{}}
}

func (r *countingRecorder) Settled(_ context.Context, atomic bool) { r.settled[atomic]++ }
func (r *countingRecorder) PartialSettlement(context.Context)      { r.partial++ }
func (r *countingRecorder) DuplicateCheckout(context.Context)      { r.duplicates++ }
func (r *countingRecorder) CartCleanup(_ context.Context, source string, ok bool) {
	r.cleanups[source] = append(r.cleanups[source], ok)
}
