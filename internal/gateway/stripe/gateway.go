package stripegw

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v74"
)

// Intent is the slice of a Stripe payment intent the service cares about.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
	AmountCents  int64
	Currency     string
}

// IntentsClient is the part of the Stripe SDK the gateway uses. The
// client.API's PaymentIntents field satisfies it.
type IntentsClient interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Gateway creates and reads payment intents through the Stripe API.
type Gateway struct {
	intents  IntentsClient
	currency string
}

// NewGateway creates a Stripe payment gateway.
func NewGateway(intents IntentsClient, currency string) *Gateway {
	if intents == nil {
		return nil
	}
	return &Gateway{intents: intents, currency: currency}
}

func mapIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
	}
}

// CreateIntent opens a payment intent for one parcel. The tracking code rides
// along as metadata so charges reconcile against parcels in the dashboard.
func (g *Gateway) CreateIntent(ctx context.Context, amountCents int64, trackingCode string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("tracking_code", trackingCode)

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: create intent: %w", err)
	}
	return mapIntent(pi), nil
}

// GetIntent fetches a payment intent by its ID.
func (g *Gateway) GetIntent(ctx context.Context, id string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}

	pi, err := g.intents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: get intent: %w", err)
	}
	return mapIntent(pi), nil
}
