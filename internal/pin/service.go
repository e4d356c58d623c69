package pin

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/study-service/internal/auth"
	"github.com/spec-kit/study-service/internal/config"
	"github.com/spec-kit/study-service/internal/domain"
	"github.com/spec-kit/study-service/internal/events"
	"github.com/spec-kit/study-service/internal/observability"
)

// UserLookup is the collaborator used to confirm a PIN requester
// exists before anything is reserved.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Service orchestrates device pairing: an authenticated device requests
// a short-lived PIN, relays it out of band, and a second device redeems
// it for its own access token. All shared state lives in the Store so
// any replica can serve either side of the exchange.
type Service struct {
	store       Store
	users       UserLookup
	tokens      *auth.TokenManager
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	metrics     *observability.Metrics
	pinTTL      time.Duration
	storeTTL    time.Duration
	maxAttempts int
	now         func() time.Time
}

// NewService builds the pairing service.
func NewService(cfg config.PairingConfig, store Store, users UserLookup, tokens *auth.TokenManager, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *Service {
	maxAttempts := cfg.PinMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &Service{
		store:       store,
		users:       users,
		tokens:      tokens,
		dispatcher:  dispatcher,
		logger:      logger,
		metrics:     metrics,
		pinTTL:      cfg.PinTTL(),
		storeTTL:    cfg.PinStoreTTL(),
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// RequestPin reserves a fresh random PIN bound to the user and returns
// it with its logical expiry. Collisions with live tickets trigger a
// bounded regenerate-and-retry loop.
func (s *Service) RequestPin(ctx context.Context, userID string) (string, time.Time, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, ErrUserNotFound
		}
		return "", time.Time{}, fmt.Errorf("lookup user: %w", err)
	}

	expiresAt := s.now().Add(s.pinTTL)
	ticket := domain.PinTicket{
		Version:   domain.PinTicketVersion,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		pin, err := generatePin()
		if err != nil {
			return "", time.Time{}, fmt.Errorf("generate pin: %w", err)
		}

		reserved, err := s.store.Reserve(ctx, pin, ticket, s.storeTTL)
		if err != nil {
			return "", time.Time{}, err
		}
		if reserved {
			s.metrics.RecordPairing("pin_issued")
			s.logger.Debug("pin reserved",
				zap.String("user_id", userID),
				zap.Time("expires_at", expiresAt),
				zap.Int("attempts", attempt+1))
			return pin, expiresAt, nil
		}
	}

	s.metrics.RecordPairing("pin_allocation_exhausted")
	return "", time.Time{}, ErrAllocationExhausted
}

// LoginWithPin redeems a PIN for an access token belonging to the user
// that requested it. The claim is destructive: win or lose, the ticket
// is gone afterwards. Logical expiry is checked after the claim and
// before any token is issued.
func (s *Service) LoginWithPin(ctx context.Context, pinCode string) (string, time.Time, error) {
	ticket, err := s.store.Claim(ctx, pinCode)
	if err != nil {
		if errors.Is(err, ErrPinNotFound) {
			return "", time.Time{}, ErrPinNotFound
		}
		return "", time.Time{}, err
	}

	if s.now().After(ticket.ExpiresAt) {
		s.metrics.RecordPairing("pin_expired")
		return "", time.Time{}, ErrPinExpired
	}

	token, tokenExpiresAt, err := s.tokens.GenerateToken(ticket.UserID, domain.RoleUser)
	if err != nil {
		return "", time.Time{}, err
	}

	s.metrics.RecordPairing("pin_claimed")
	s.logger.Info("pin redeemed", zap.String("user_id", ticket.UserID))
	s.publishEvent(ctx, events.Event{
		Type:      events.EventPinRedeemed,
		SubjectID: ticket.UserID,
		Payload:   events.PinRedeemedPayload{UserID: ticket.UserID},
	})
	return token, tokenExpiresAt, nil
}

func (s *Service) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// generatePin draws a uniformly random 6-digit numeric code.
func generatePin() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
