package lib

import (
	"context"
	"encoding/json"
	"os"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

type StripeGateway struct{}

func (s *StripeGateway) Name() string { return "stripe" }

func (s *StripeGateway) CreatePaymentLink(ctx context.Context, opts *PaymentLinkOptions) (string, error) {
	sc := GetStripeClient()
	params := stripe.CheckoutSessionCreateParams{
		SuccessURL:        stripe.String(opts.ReturnURL),
		CancelURL:         stripe.String(opts.ReturnURL),
		Mode:              stripe.String("payment"),
		ClientReferenceID: stripe.String(opts.OrderCode),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(opts.Currency),
					UnitAmount: stripe.Int64(opts.Amount),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(opts.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{"order_code": opts.OrderCode},
	}
	session, err := sc.V1CheckoutSessions.Create(ctx, &params)
	if err != nil {
		return "", err
	}
	return session.URL, nil
}

func (s *StripeGateway) ParseCallback(req *CallbackRequest) (*CallbackData, error) {
	whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	event, err := webhook.ConstructEvent(req.Body, req.Signature, whsecret)
	if err != nil {
		return nil, err
	}
	switch event.Type {
	case "checkout.session.completed", "checkout.session.expired":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return nil, err
		}
		orderCode := cs.Metadata["order_code"]
		if orderCode == "" {
			orderCode = cs.ClientReferenceID
		}
		referenceId := cs.ID
		if cs.PaymentIntent != nil {
			referenceId = cs.PaymentIntent.ID
		}
		return &CallbackData{
			Success:     event.Type == "checkout.session.completed" && cs.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
			OrderCode:   orderCode,
			ReferenceID: referenceId,
			RawStatus:   string(cs.PaymentStatus),
		}, nil
	default:
		return &CallbackData{Success: false, RawStatus: string(event.Type)}, nil
	}
}
