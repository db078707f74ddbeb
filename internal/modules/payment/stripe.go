package payment

import (
	"context"
	"strconv"

	"github.com/stripe/stripe-go/v82"
)

// StripeGateway implements Gateway on top of the Stripe client. The client
// is built once in main and injected; nothing here is package-level state.
type StripeGateway struct {
	client *stripe.Client
}

func NewStripeGateway(apiKey string) *StripeGateway {
	return &StripeGateway{client: stripe.NewClient(apiKey)}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, in IntentInput) (*Intent, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(in.AmountCents),
		Currency: stripe.String(in.Currency),
		Metadata: map[string]string{
			"booking_id": strconv.FormatInt(in.BookingID, 10),
		},
	}
	if in.IdempotencyKey != "" {
		params.IdempotencyKey = stripe.String(in.IdempotencyKey)
	}

	pi, err := g.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
