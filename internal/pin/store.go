package pin

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/study-service/internal/domain"
)

// Errors surfaced by the pairing subsystem.
var (
	// ErrPinNotFound means no live ticket exists for the PIN. Claims
	// lost to a concurrent winner also report this.
	ErrPinNotFound = errors.New("pin not found")
	// ErrPinExpired means the ticket was claimed but its logical
	// expiry had already passed. The ticket is gone either way.
	ErrPinExpired = errors.New("pin expired")
	// ErrAllocationExhausted means every generation attempt collided
	// with a live ticket.
	ErrAllocationExhausted = errors.New("pin allocation exhausted")
	// ErrUserNotFound means the PIN requester does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Store is an ephemeral shared key-value store for PIN tickets, keyed
// by the PIN itself. Both operations are atomic with respect to
// concurrent callers on any replica; the store is never read and then
// separately mutated around them.
type Store interface {
	// Reserve creates the ticket only if the PIN is absent. It
	// returns false without side effect on collision. The physical
	// TTL is a garbage-collection backstop, not the authoritative
	// expiry.
	Reserve(ctx context.Context, pin string, ticket domain.PinTicket, physicalTTL time.Duration) (bool, error)

	// Claim fetches and deletes the ticket in a single indivisible
	// operation. Under concurrent claims of the same PIN exactly one
	// caller observes the ticket; the rest get ErrPinNotFound.
	Claim(ctx context.Context, pin string) (domain.PinTicket, error)
}
