// Package poller consumes checkout-completed events and empties the
// corresponding carts. Checkout itself happens in another system; only the
// cart-clearing reaction lives here.
package poller

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/diazmg/phone-store/internal/domain"
	"github.com/diazmg/phone-store/internal/repository"
	"github.com/segmentio/kafka-go"
)

// CartClearer is the slice of the cart service the poller needs.
type CartClearer interface {
	Clear(ctx context.Context, cartID string) (*domain.ResolvedCart, error)
}

type Poller struct {
	carts  CartClearer
	reader *kafka.Reader
}

type checkoutCompletedEvent struct {
	CartID string `json:"cart_id"`
}

func NewPoller(carts CartClearer, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "checkout-completed",
		GroupID:  "phone-store-consumer",
		MaxBytes: 10e6, // 10MB
	})
	return &Poller{carts: carts, reader: reader}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		p.consumeAndClearCart(ctx)
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		log.Printf("error closing reader: %v", err)
	}
}

func (p *Poller) consumeAndClearCart(ctx context.Context) {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		log.Printf("error reading message: %v", err)
		return
	}

	var event checkoutCompletedEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		log.Printf("error parsing message: %v", err)
		return
	}
	if event.CartID == "" {
		log.Println("missing cart_id in checkout-completed event")
		return
	}

	if _, err := p.carts.Clear(ctx, event.CartID); err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		log.Printf("failed to clear cart %s: %v", event.CartID, err)
	}
}
