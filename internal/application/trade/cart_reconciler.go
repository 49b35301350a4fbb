package trade

import (
	"context"
	"sync"
	"time"

	"github.com/bistro/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconcilerConfig holds configuration for the cart reconciler
type ReconcilerConfig struct {
	// Interval is how often uncleared payments are scanned
	Interval time.Duration
	// Grace skips payments younger than this, leaving them to the request that created them
	Grace time.Duration
	// BatchSize caps the payments handled per scan
	BatchSize int
}

// DefaultReconcilerConfig returns default reconciler configuration
func DefaultReconcilerConfig() ReconcilerConfig {
	return ReconcilerConfig{
		Interval:  time.Minute,
		Grace:     30 * time.Second,
		BatchSize: 50,
	}
}

// CartCleaner removes the cart lines of a recorded payment
type CartCleaner interface {
	ReconcileCart(ctx context.Context, paymentID uuid.UUID) (*CleanupResult, error)
}

// CartReconciler retries cart cleanup for payments whose checkout
// ended in a partial settlement
type CartReconciler struct {
	config      ReconcilerConfig
	paymentRepo trade.PaymentRepository
	cleaner     CartCleaner
	logger      *zap.Logger
	now         func() time.Time

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewCartReconciler creates a new cart reconciler
func NewCartReconciler(
	config ReconcilerConfig,
	paymentRepo trade.PaymentRepository,
	cleaner CartCleaner,
	logger *zap.Logger,
) *CartReconciler {
	defaults := DefaultReconcilerConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.Grace < 0 {
		config.Grace = 0
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	return &CartReconciler{
		config:      config,
		paymentRepo: paymentRepo,
		cleaner:     cleaner,
		logger:      logger.Named("cart_reconciler"),
		now:         time.Now,
	}
}

// Start starts the background loop
func (r *CartReconciler) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = true
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.runLoop(ctx)

	r.logger.Info("Cart reconciler started",
		zap.Duration("interval", r.config.Interval),
		zap.Duration("grace", r.config.Grace),
		zap.Int("batch_size", r.config.BatchSize),
	)
	return nil
}

// Stop stops the loop and waits for an in-flight scan to finish
func (r *CartReconciler) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = false
	r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("Cart reconciler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *CartReconciler) runLoop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("Reconcile scan failed", zap.Error(err))
			}
		}
	}
}

// RunOnce cleans up one batch of uncleared payments and returns how many
// were handled. A failure on one payment does not stop the batch.
func (r *CartReconciler) RunOnce(ctx context.Context) (int, error) {
	payments, err := r.paymentRepo.FindUncleared(ctx, r.now().Add(-r.config.Grace), r.config.BatchSize)
	if err != nil {
		return 0, err
	}

	handled := 0
	for _, p := range payments {
		if ctx.Err() != nil {
			break
		}
		result, err := r.cleaner.ReconcileCart(ctx, p.ID)
		if err != nil {
			r.logger.Warn("Cart cleanup retry failed",
				zap.String("payment_id", p.ID.String()),
				zap.Error(err))
			continue
		}
		handled++
		r.logger.Info("Cart cleanup completed",
			zap.String("payment_id", p.ID.String()),
			zap.Int64("deleted_cart_count", result.DeletedCartCount))
	}
	return handled, nil
}
