package refund

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// Gateway issues refunds against the payment processor. Implementations
// return the processor's refund reference.
type Gateway interface {
	Refund(ctx context.Context, orderID string, amount int64, reason string) (string, error)
}

// MidtransGateway refunds captured payments through Midtrans.
type MidtransGateway struct {
	client coreapi.Client
}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	var client coreapi.Client
	client.New(serverKey, env)
	return &MidtransGateway{client: client}
}

func (g *MidtransGateway) Refund(ctx context.Context, orderID string, amount int64, reason string) (string, error) {
	req := &coreapi.RefundReq{
		Amount: amount,
		Reason: reason,
	}

	resp, mErr := g.client.RefundTransaction(orderID, req)
	if mErr != nil {
		return "", fmt.Errorf("midtrans refund for %s: %v", orderID, mErr.GetMessage())
	}
	return resp.RefundKey, nil
}

// NoopGateway is used when no payment processor is configured; refunds
// are recorded locally only.
type NoopGateway struct{}

func (NoopGateway) Refund(ctx context.Context, orderID string, amount int64, reason string) (string, error) {
	return "local-" + orderID, nil
}
