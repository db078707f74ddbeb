package payment

import (
	"context"
	"time"

	"petmarket/internal/domain"
)

// Outcome is the terminal result the gateway asserts through its webhook.
type Outcome string

const (
	OutcomePaid   Outcome = "paid"
	OutcomeFailed Outcome = "failed"
)

type IntentInput struct {
	BookingID      int64
	AmountCents    int64
	Currency       string
	IdempotencyKey string
}

type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway is the injected payment-provider handle. The production
// implementation wraps the Stripe client; tests substitute their own.
type Gateway interface {
	CreateIntent(ctx context.Context, in IntentInput) (*Intent, error)
}

type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetPaymentIntentIfEmpty(ctx context.Context, id int64, intentID string) (bool, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

type RecordStore interface {
	Create(ctx context.Context, p *domain.PaymentRecord) error
	MarkPaidIdempotent(ctx context.Context, intentID, rawBody string, paidAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, intentID, rawBody string) error
}
