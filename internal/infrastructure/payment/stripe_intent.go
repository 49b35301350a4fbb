package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bistro/backend/internal/infrastructure/config"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no Stripe secret key is set
var ErrNotConfigured = errors.New("stripe: secret key not configured")

// StripeIntentClient creates card payment intents on Stripe
type StripeIntentClient struct {
	secretKey string
	currency  string
	logger    *zap.Logger
}

// NewStripeIntentClient creates a client and registers the API key with stripe-go
func NewStripeIntentClient(cfg config.StripeConfig, logger *zap.Logger) *StripeIntentClient {
	currency := strings.ToLower(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	if cfg.SecretKey != "" {
		stripe.Key = cfg.SecretKey
	}
	return &StripeIntentClient{
		secretKey: cfg.SecretKey,
		currency:  currency,
		logger:    logger,
	}
}

// Currency returns the configured charge currency
func (c *StripeIntentClient) Currency() string {
	return c.currency
}

// CreateIntent creates a card-only payment intent for amount minor units
// and returns its client secret
func (c *StripeIntentClient) CreateIntent(ctx context.Context, amount int64) (string, error) {
	if c.secretKey == "" {
		return "", ErrNotConfigured
	}
	if amount <= 0 {
		return "", fmt.Errorf("stripe: amount must be positive, got %d", amount)
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(c.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		c.logger.Error("Failed to create payment intent",
			zap.Int64("amount", amount),
			zap.String("currency", c.currency),
			zap.Error(err))
		return "", fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}

	c.logger.Info("Created payment intent",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount", amount))

	return intent.ClientSecret, nil
}
