package shared

import (
	"time"

	"github.com/google/uuid"
)

// Now is the clock used to stamp entities. Tests may replace it.
var Now = func() time.Time { return time.Now().UTC() }

// BaseEntity carries the identity and audit timestamps every stored record has.
// IDs are generated on the server; clients never choose them.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Touch bumps the update timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = Now()
}

// NewBaseEntity stamps a fresh ID and creation time
func NewBaseEntity() BaseEntity {
	now := Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
