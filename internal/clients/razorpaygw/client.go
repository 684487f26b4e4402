// Package razorpaygw wraps the Razorpay Go SDK behind a small
// order-creation surface so the payment service can be tested with a
// fake.
package razorpaygw

import (
	"fmt"
	"os"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
)

type Order struct {
	ID          string
	AmountPaise int64
	Currency    string
	Receipt     string
	Status      string
}

type OrderCreator interface {
	CreateOrder(amountPaise int64, currency, receipt string, notes map[string]any) (Order, error)
}

type client struct {
	log   *logger.Logger
	rz    *razorpay.Client
	keyID string
}

func NewClient(log *logger.Logger) (OrderCreator, error) {
	keyID := strings.TrimSpace(os.Getenv("RAZORPAY_KEY_ID"))
	keySecret := strings.TrimSpace(os.Getenv("RAZORPAY_KEY_SECRET"))
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("missing RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET")
	}
	return &client{
		log:   log.With("client", "RazorpayClient"),
		rz:    razorpay.NewClient(keyID, keySecret),
		keyID: keyID,
	}, nil
}

func (c *client) CreateOrder(amountPaise int64, currency, receipt string, notes map[string]any) (Order, error) {
	if amountPaise <= 0 {
		return Order{}, fmt.Errorf("razorpay order: positive amount required")
	}
	if currency == "" {
		currency = "INR"
	}

	data := map[string]any{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := c.rz.Order.Create(data, nil)
	if err != nil {
		return Order{}, fmt.Errorf("razorpay create order: %w", err)
	}

	out := Order{AmountPaise: amountPaise, Currency: currency, Receipt: receipt}
	if id, ok := body["id"].(string); ok {
		out.ID = id
	}
	if status, ok := body["status"].(string); ok {
		out.Status = status
	}
	if out.ID == "" {
		return Order{}, fmt.Errorf("razorpay create order: response missing id")
	}
	return out, nil
}
