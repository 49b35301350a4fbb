package trade

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/bistro/backend/internal/domain/shared"
	"github.com/bistro/backend/internal/domain/shared/valueobject"
	"github.com/bistro/backend/internal/domain/trade"
	"github.com/bistro/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentGateway creates payment intents on the payment network
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64) (string, error)
	Currency() string
}

// SettlementRecorder counts checkout outcomes
type SettlementRecorder interface {
	Settled(ctx context.Context, atomic bool)
	PartialSettlement(ctx context.Context)
	DuplicateCheckout(ctx context.Context)
	CartCleanup(ctx context.Context, source string, ok bool)
}

// Cart cleanup sources reported to the SettlementRecorder
const (
	CleanupByRequest    = "request"
	CleanupByReconciler = "reconciler"
)

type nopRecorder struct{}

func (nopRecorder) Settled(context.Context, bool)             {}
func (nopRecorder) PartialSettlement(context.Context)         {}
func (nopRecorder) DuplicateCheckout(context.Context)         {}
func (nopRecorder) CartCleanup(context.Context, string, bool) {}

// SettlementOptions tunes the checkout flow
type SettlementOptions struct {
	// Atomic settles through the unit of work in one store transaction
	Atomic bool
	// GuardTTL is how long a settled cart set is refused a second checkout
	GuardTTL time.Duration
	// Recorder receives settlement outcomes; nil records nothing
	Recorder SettlementRecorder
}

// PaymentService settles carts into payments and manages recorded payments
type PaymentService struct {
	cartRepo    trade.CartRepository
	paymentRepo trade.PaymentRepository
	uow         trade.SettlementUnitOfWork
	guard       shared.IdempotencyStore
	gateway     PaymentGateway
	opts        SettlementOptions
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService. uow, guard and gateway may be nil:
// without uow atomic mode is unavailable, without guard duplicate checkouts are not
// suppressed, without gateway payment intents cannot be created.
func NewPaymentService(
	cartRepo trade.CartRepository,
	paymentRepo trade.PaymentRepository,
	uow trade.SettlementUnitOfWork,
	guard shared.IdempotencyStore,
	gateway PaymentGateway,
	opts SettlementOptions,
	logger *zap.Logger,
) *PaymentService {
	if opts.GuardTTL <= 0 {
		opts.GuardTTL = shared.DefaultIdempotencyConfig().TTL
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	return &PaymentService{
		cartRepo:    cartRepo,
		paymentRepo: paymentRepo,
		uow:         uow,
		guard:       guard,
		gateway:     gateway,
		opts:        opts,
		logger:      logger,
	}
}

// Settle turns the requester's cart lines into a recorded payment.
//
// The payment insert is the durability point. When the cart lines cannot be
// removed afterwards the returned error is a *trade.PartialSettlementError:
// the payment stands and ReconcileCart can finish the cleanup later.
func (s *PaymentService) Settle(ctx context.Context, requester string, req SettleRequest) (*SettleResult, error) {
	log := logger.FromContextOr(ctx, s.logger)

	email := shared.NormalizeEmail(req.Email)
	if err := shared.ValidateEmail(email); err != nil {
		return nil, err
	}
	if !shared.SameEmail(email, requester) {
		return nil, shared.NewDomainError("FORBIDDEN", "Cannot check out another user's cart")
	}
	cartIDs := uniqueSorted(req.CartIDs)
	if len(cartIDs) == 0 {
		return nil, shared.NewDomainError("VALIDATION_REQUIRED", "At least one cart item is required")
	}

	key := checkoutKey(email, cartIDs)
	release, err := s.acquire(ctx, key, log)
	if err != nil {
		return nil, err
	}
	durable := false
	defer func() {
		if !durable {
			release()
		}
	}()

	lines, err := s.cartRepo.FindByIDs(ctx, cartIDs)
	if err != nil {
		log.Error("Failed to load cart for checkout", zap.String("email", email), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to load cart")
	}
	if len(lines) != len(cartIDs) {
		return nil, shared.NewDomainError("NOT_FOUND", "One or more cart items do not exist")
	}
	byID := make(map[uuid.UUID]decimal.Decimal, len(lines))
	menuRefs := make(map[uuid.UUID]uuid.UUID, len(lines))
	for _, line := range lines {
		if !line.OwnedBy(email) {
			return nil, shared.NewDomainError("FORBIDDEN", "Cart item belongs to another user")
		}
		byID[line.ID] = line.Price
		menuRefs[line.ID] = line.MenuItemID
	}

	prices := make([]decimal.Decimal, 0, len(cartIDs))
	for _, id := range cartIDs {
		prices = append(prices, byID[id])
	}
	total := valueobject.Sum(s.currency(), prices...)
	if req.Price != nil && !req.Price.Equal(total.Amount()) {
		return nil, shared.NewDomainError("PRICE_MISMATCH",
			"Submitted price "+req.Price.StringFixed(2)+" does not match cart total "+total.Amount().StringFixed(2))
	}

	menuItemIDs := req.MenuItemIDs
	if len(menuItemIDs) == 0 {
		menuItemIDs = make([]uuid.UUID, 0, len(cartIDs))
		for _, id := range cartIDs {
			menuItemIDs = append(menuItemIDs, menuRefs[id])
		}
	}

	payment, err := trade.NewPayment(email, total.Amount(), req.TransactionID, cartIDs, menuItemIDs)
	if err != nil {
		return nil, err
	}

	if s.opts.Atomic && s.uow != nil {
		deleted, err := s.uow.SettleAtomically(ctx, payment)
		if err != nil {
			log.Error("Atomic settlement failed", zap.String("email", email), zap.Error(err))
			return nil, shared.NewPersistenceError("Failed to record payment")
		}
		durable = true
		s.opts.Recorder.Settled(ctx, true)
		log.Info("Payment settled",
			zap.String("payment_id", payment.ID.String()),
			zap.String("price", payment.Price.String()),
			zap.Int64("deleted_cart_count", deleted),
			zap.Bool("atomic", true))
		return &SettleResult{PaymentID: payment.ID, Price: payment.Price, DeletedCartCount: deleted}, nil
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		log.Error("Failed to record payment", zap.String("email", email), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to record payment")
	}
	durable = true

	deleted, err := s.clearCart(ctx, payment, log)
	if err != nil {
		s.opts.Recorder.PartialSettlement(ctx)
		return nil, &trade.PartialSettlementError{PaymentID: payment.ID, Cause: err}
	}
	s.opts.Recorder.Settled(ctx, false)

	log.Info("Payment settled",
		zap.String("payment_id", payment.ID.String()),
		zap.String("price", payment.Price.String()),
		zap.Int64("deleted_cart_count", deleted))
	return &SettleResult{PaymentID: payment.ID, Price: payment.Price, DeletedCartCount: deleted}, nil
}

// ReconcileCart removes the cart lines of a recorded payment. Running it
// again after a successful run deletes nothing and is not an error.
func (s *PaymentService) ReconcileCart(ctx context.Context, paymentID uuid.UUID) (*CleanupResult, error) {
	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, payment, CleanupByReconciler)
}

// ReconcileOwnedCart is ReconcileCart restricted to the payment's owner
func (s *PaymentService) ReconcileOwnedCart(ctx context.Context, requester string, paymentID uuid.UUID) (*CleanupResult, error) {
	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.OwnedBy(requester) {
		return nil, shared.NewDomainError("FORBIDDEN", "Payment belongs to another user")
	}
	return s.reconcile(ctx, payment, CleanupByRequest)
}

func (s *PaymentService) reconcile(ctx context.Context, payment *trade.Payment, source string) (*CleanupResult, error) {
	deleted, err := s.clearCart(ctx, payment, logger.FromContextOr(ctx, s.logger))
	s.opts.Recorder.CartCleanup(ctx, source, err == nil)
	if err != nil {
		return nil, shared.NewPersistenceError("Failed to remove cart items")
	}
	return &CleanupResult{PaymentID: payment.ID, DeletedCartCount: deleted}, nil
}

// clearCart deletes the payment's cart lines and records that it did
func (s *PaymentService) clearCart(ctx context.Context, payment *trade.Payment, log *zap.Logger) (int64, error) {
	deleted, err := s.cartRepo.DeleteByIDs(ctx, payment.CartIDs)
	if err != nil {
		log.Error("Cart cleanup failed; payment stands",
			zap.String("payment_id", payment.ID.String()),
			zap.Int("cart_count", len(payment.CartIDs)),
			zap.Error(err))
		return 0, err
	}

	if !payment.CartCleared {
		if err := s.paymentRepo.MarkCartCleared(ctx, payment.ID); err != nil {
			log.Warn("Failed to mark cart cleared",
				zap.String("payment_id", payment.ID.String()),
				zap.Error(err))
		} else {
			payment.CartCleared = true
		}
	}
	return deleted, nil
}

// UpdateStatus sets a payment's status; an empty status means done
func (s *PaymentService) UpdateStatus(ctx context.Context, paymentID uuid.UUID, req UpdatePaymentStatusRequest) (*PaymentResponse, error) {
	raw := req.Status
	if strings.TrimSpace(raw) == "" {
		raw = trade.PaymentStatusDone.String()
	}
	status, err := trade.ParsePaymentStatus(raw)
	if err != nil {
		return nil, err
	}

	payment, err := s.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := payment.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.UpdateStatus(ctx, paymentID, status); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
		}
		s.logger.Error("Failed to update payment status", zap.String("payment_id", paymentID.String()), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to update payment status")
	}

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// List returns every payment, newest first
func (s *PaymentService) List(ctx context.Context) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list payments", zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to list payments")
	}
	return toPaymentResponses(payments), nil
}

// ListByEmail returns the payments made by email, newest first
func (s *PaymentService) ListByEmail(ctx context.Context, email string) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByEmail(ctx, shared.NormalizeEmail(email))
	if err != nil {
		s.logger.Error("Failed to list payments", zap.String("email", email), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to list payments")
	}
	return toPaymentResponses(payments), nil
}

// CreateIntent asks the payment network for a card intent of price
func (s *PaymentService) CreateIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error) {
	if s.gateway == nil {
		return nil, shared.NewDomainError("PAYMENT_NETWORK_ERROR", "Payment network is not configured")
	}

	money, err := valueobject.NewMoney(req.Price, s.currency())
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}
	amount, err := money.MinorUnits()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price is too large to charge")
	}
	if amount <= 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price must be at least one minor currency unit")
	}

	secret, err := s.gateway.CreateIntent(ctx, amount)
	if err != nil {
		s.logger.Error("Payment intent failed", zap.Int64("amount", amount), zap.Error(err))
		return nil, shared.NewDomainError("PAYMENT_NETWORK_ERROR", "Failed to create payment intent")
	}

	return &PaymentIntentResponse{
		ClientSecret: secret,
		Amount:       amount,
		Currency:     s.gateway.Currency(),
	}, nil
}

func (s *PaymentService) findPayment(ctx context.Context, id uuid.UUID) (*trade.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Payment not found")
		}
		s.logger.Error("Failed to find payment", zap.String("payment_id", id.String()), zap.Error(err))
		return nil, shared.NewPersistenceError("Failed to find payment")
	}
	return payment, nil
}

func (s *PaymentService) currency() valueobject.Currency {
	if s.gateway == nil {
		return valueobject.DefaultCurrency
	}
	return valueobject.ParseCurrency(s.gateway.Currency())
}

// acquire takes the checkout guard for key. The returned func frees it.
// An unreachable guard store does not block checkout.
func (s *PaymentService) acquire(ctx context.Context, key string, log *zap.Logger) (func(), error) {
	noop := func() {}
	if s.guard == nil {
		return noop, nil
	}

	fresh, err := s.guard.MarkProcessed(ctx, key, s.opts.GuardTTL)
	if err != nil {
		log.Warn("Checkout guard unavailable", zap.Error(err))
		return noop, nil
	}
	if !fresh {
		s.opts.Recorder.DuplicateCheckout(ctx)
		return nil, shared.ErrDuplicateCheckout
	}

	return func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), key); err != nil {
			log.Warn("Failed to release checkout guard", zap.Error(err))
		}
	}, nil
}

// checkoutKey identifies a cart set independent of submission order
func checkoutKey(email string, sortedIDs []uuid.UUID) string {
	h := sha256.New()
	for _, id := range sortedIDs {
		h.Write(id[:])
	}
	return email + ":" + hex.EncodeToString(h.Sum(nil))
}

func uniqueSorted(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
