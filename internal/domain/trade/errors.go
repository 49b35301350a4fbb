package trade

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// PartialSettlementError reports a checkout whose payment was recorded
// but whose cart lines could not be removed. The payment stands and the
// cleanup can be retried for PaymentID.
type PartialSettlementError struct {
	PaymentID uuid.UUID
	Cause     error
}

func (e *PartialSettlementError) Error() string {
	return fmt.Sprintf("payment %s recorded but cart cleanup failed: %v", e.PaymentID, e.Cause)
}

func (e *PartialSettlementError) Unwrap() error {
	return e.Cause
}

// AsPartialSettlement extracts a PartialSettlementError from err
func AsPartialSettlement(err error) (*PartialSettlementError, bool) {
	var partial *PartialSettlementError
	if errors.As(err, &partial) {
		return partial, true
	}
	return nil, false
}
