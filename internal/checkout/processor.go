package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/egorv/homebook/internal/domain"
)

// DefaultProcessingDelay is how long the simulated payment step takes.
const DefaultProcessingDelay = 2 * time.Second

// PaymentProcessor charges the given amount and returns a transaction id.
type PaymentProcessor interface {
	Charge(ctx context.Context, amount float64, method domain.PaymentMethod) (string, error)
}

// SimulatedProcessor stands in for a real payment network. It waits for
// the configured delay and always succeeds.
type SimulatedProcessor struct {
	Delay time.Duration
}

func NewSimulatedProcessor() *SimulatedProcessor {
	return &SimulatedProcessor{Delay: DefaultProcessingDelay}
}

func (p *SimulatedProcessor) Charge(ctx context.Context, _ float64, _ domain.PaymentMethod) (string, error) {
	select {
	case <-time.After(p.Delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return "TXN-" + uuid.NewString(), nil
}
