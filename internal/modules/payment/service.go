package payment

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"petmarket/internal/domain"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingStore
	records  RecordStore
	gateway  Gateway

	currency         string
	gatewayTimeout   time.Duration
	webhookSecret    string
	webhookTolerance time.Duration
}

type Options struct {
	Currency         string
	GatewayTimeout   time.Duration
	WebhookSecret    string
	WebhookTolerance time.Duration
}

func NewService(bookings BookingStore, records RecordStore, gateway Gateway, opts Options) *Service {
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	if opts.GatewayTimeout <= 0 {
		opts.GatewayTimeout = 10 * time.Second
	}
	if opts.WebhookTolerance <= 0 {
		opts.WebhookTolerance = 5 * time.Minute
	}
	return &Service{
		bookings:         bookings,
		records:          records,
		gateway:          gateway,
		currency:         opts.Currency,
		gatewayTimeout:   opts.GatewayTimeout,
		webhookSecret:    opts.WebhookSecret,
		webhookTolerance: opts.WebhookTolerance,
	}
}

// CreateIntent opens a payment intent at the gateway for a confirmed
// booking and stores its id exactly once. The gateway call is bounded and
// retried a single time; a failure leaves no local state behind, so the
// caller may retry safely.
func (s *Service) CreateIntent(ctx context.Context, bookingID, actorID int64) (*CreateIntentResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.OwnerID != actorID {
		return nil, ErrUnauthorized
	}
	if b.PaymentIntentID != nil {
		return nil, ErrAlreadyProcessed
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrNotPayable
	}

	intent, err := s.callGateway(ctx, IntentInput{
		BookingID:      b.ID,
		AmountCents:    b.AmountCents,
		Currency:       s.currency,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		log.Printf("payment_gateway_failed booking_id=%d err=%v", b.ID, err)
		return nil, ErrGateway
	}

	ok, err := s.bookings.SetPaymentIntentIfEmpty(ctx, b.ID, intent.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent request recorded its intent first; this one is an
		// orphan on the gateway side.
		log.Printf("payment_intent_orphaned booking_id=%d intent_id=%s", b.ID, intent.ID)
		return nil, ErrAlreadyProcessed
	}

	rec := &domain.PaymentRecord{
		BookingID:   b.ID,
		IntentID:    intent.ID,
		AmountCents: b.AmountCents,
		Status:      domain.PaymentRecordCreated,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		log.Printf("payment_record_create_failed booking_id=%d intent_id=%s err=%v", b.ID, intent.ID, err)
	}

	return &CreateIntentResponse{PaymentIntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// callGateway bounds the provider call and retries once on failure with the
// same idempotency key, so a retried create cannot double-charge.
func (s *Service) callGateway(ctx context.Context, in IntentInput) (*Intent, error) {
	attempt := func() (*Intent, error) {
		cctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
		defer cancel()
		return s.gateway.CreateIntent(cctx, in)
	}

	intent, err := attempt()
	if err == nil {
		return intent, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	return attempt()
}

// HandleWebhook verifies the gateway signature and applies the asserted
// outcome. Signature verification is the only authentication on this path.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEventWithTolerance(payload, sigHeader, s.webhookSecret, s.webhookTolerance)
	if err != nil {
		return ErrBadSignature
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			log.Printf("stripe_event_parse_failed type=%s err=%v", event.Type, err)
			return nil
		}
		outcome := OutcomePaid
		if event.Type == "payment_intent.payment_failed" {
			outcome = OutcomeFailed
		}
		return s.ApplyOutcome(ctx, pi.ID, outcome, string(event.Data.Raw))
	default:
		log.Printf("stripe_event_ignored type=%s", event.Type)
	}
	return nil
}

// ApplyOutcome records the terminal payment result for the booking that
// owns the intent. Replays are idempotent; a failed event after a paid one
// is ignored because paid is terminal. Booking status is never touched.
func (s *Service) ApplyOutcome(ctx context.Context, intentID string, outcome Outcome, rawBody string) error {
	b, err := s.bookings.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Not ours (or not recorded): acknowledge so the gateway stops
			// redelivering.
			log.Printf("payment_outcome_unmatched intent_id=%s outcome=%s", intentID, outcome)
			return nil
		}
		return err
	}

	switch outcome {
	case OutcomePaid:
		changed, err := s.records.MarkPaidIdempotent(ctx, intentID, rawBody, time.Now().UTC())
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if !changed {
			log.Printf("payment_outcome_replayed intent_id=%s", intentID)
		}
		return s.bookings.UpdatePaymentStatus(ctx, b.ID, domain.PaymentPaid)
	case OutcomeFailed:
		if b.PaymentStatus == domain.PaymentPaid {
			log.Printf("payment_failed_after_paid_ignored intent_id=%s", intentID)
			return nil
		}
		if err := s.records.MarkFailed(ctx, intentID, rawBody); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.bookings.UpdatePaymentStatus(ctx, b.ID, domain.PaymentFailed)
	}
	return nil
}
