package lib

import (
	"context"
	"crs/src/types"
)

type PaymentLinkOptions struct {
	Amount      int64
	Currency    string
	OrderCode   string
	Description string
	ClientIP    string
	Host        string
	ReturnURL   string
}

// CallbackRequest carries the raw inbound notification: Stripe signs the JSON
// body, VNPay signs the query string, so both shapes are passed through.
type CallbackRequest struct {
	Body      []byte
	Signature string
	Params    map[string]string
}

type CallbackData struct {
	Success     bool
	OrderCode   string
	ReferenceID string
	RawStatus   string
}

type PaymentGateway interface {
	Name() string
	CreatePaymentLink(ctx context.Context, opts *PaymentLinkOptions) (string, error)
	ParseCallback(req *CallbackRequest) (*CallbackData, error)
}

// The registry is populated once during startup and read-only afterwards, so
// lookups from request handlers need no locking.
var gateways = map[string]PaymentGateway{}

func RegisterGateway(g PaymentGateway) {
	gateways[g.Name()] = g
}

func GetGateway(name string) (PaymentGateway, error) {
	g, ok := gateways[name]
	if !ok {
		return nil, types.ErrUnsupportedGateway
	}
	return g, nil
}

func RegisterDefaultGateways() {
	RegisterGateway(&StripeGateway{})
	RegisterGateway(NewVNPayGateway())
}
