package paypal

import (
	"context"

	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"
)

// Client is the narrow slice of the payment provider the storefront needs:
// create a provider-side order for an amount, capture it once the buyer has
// approved, and read it back.
type Client interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, reference string) (*paypal.Order, error)
	CaptureOrder(ctx context.Context, providerOrderID string) (*paypal.CaptureOrderResponse, error)
	GetOrder(ctx context.Context, providerOrderID string) (*paypal.Order, error)
	Ping(ctx context.Context) error
}

type paypalClient struct {
	client *paypal.Client
}

func NewClient(clientID, secret string, live bool) (Client, error) {

	base := paypal.APIBaseSandBox
	if live {
		base = paypal.APIBaseLive
	}

	c, err := paypal.NewClient(clientID, secret, base)
	if err != nil {
		return nil, err
	}

	if _, err := c.GetAccessToken(context.Background()); err != nil {
		return nil, err
	}

	return &paypalClient{client: c}, nil
}

// CreateOrder implements Client.
func (p *paypalClient) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, reference string) (*paypal.Order, error) {

	units := []paypal.PurchaseUnitRequest{
		{
			ReferenceID: reference,
			Amount: &paypal.PurchaseUnitAmount{
				Currency: currency,
				Value:    amount.StringFixed(2),
			},
		},
	}

	return p.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, nil)
}

// CaptureOrder implements Client.
func (p *paypalClient) CaptureOrder(ctx context.Context, providerOrderID string) (*paypal.CaptureOrderResponse, error) {
	return p.client.CaptureOrder(ctx, providerOrderID, paypal.CaptureOrderRequest{})
}

// GetOrder implements Client.
func (p *paypalClient) GetOrder(ctx context.Context, providerOrderID string) (*paypal.Order, error) {
	return p.client.GetOrder(ctx, providerOrderID)
}

// Ping refreshes the OAuth token, which exercises credentials and
// connectivity without touching any order.
func (p *paypalClient) Ping(ctx context.Context) error {
	_, err := p.client.GetAccessToken(ctx)

	return err
}

// ApproveURL picks the buyer-approval link out of a provider order, empty if
// the provider did not include one.
func ApproveURL(order *paypal.Order) string {
	for _, link := range order.Links {
		if link.Rel == "approve" {
			return link.Href
		}
	}

	return ""
}
