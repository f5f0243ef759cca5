package checkout

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/egorv/homebook/internal/domain"
	"github.com/egorv/homebook/internal/pricing"
	"github.com/egorv/homebook/internal/store"
)

// Result carries the outcome of a commit once processing finishes.
type Result struct {
	Order domain.Order
	Err   error
}

// Pipeline drives one checkout at a time through
// Draft -> Validated -> Processing -> Committed. At most one checkout may
// be processing; a second commit while one is in flight is a no-op so
// repeated taps cannot produce duplicate orders.
type Pipeline struct {
	mu        sync.Mutex
	state     domain.CheckoutState
	details   domain.BookingDetails
	method    domain.PaymentMethod
	cart      *store.CartStore
	history   *store.OrderHistory
	pricer    *pricing.Normalizer
	processor PaymentProcessor
	now       func() time.Time
	pending   chan Result
}

func NewPipeline(cart *store.CartStore, history *store.OrderHistory, pricer *pricing.Normalizer, processor PaymentProcessor) *Pipeline {
	return &Pipeline{
		state:     domain.StateDraft,
		cart:      cart,
		history:   history,
		pricer:    pricer,
		processor: processor,
		now:       time.Now,
	}
}

func (p *Pipeline) State() domain.CheckoutState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) Details() domain.BookingDetails {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.details
}

func (p *Pipeline) Method() domain.PaymentMethod {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.method
}

// SetDetails stores booking details while the checkout is still a draft.
func (p *Pipeline) SetDetails(d domain.BookingDetails) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != domain.StateDraft {
		return ErrIllegalState
	}
	p.details = d
	return nil
}

// SelectPayment records the chosen payment method while drafting.
func (p *Pipeline) SelectPayment(m domain.PaymentMethod) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != domain.StateDraft {
		return ErrIllegalState
	}
	if !m.Valid() {
		return domain.ErrUnknownPaymentMethod
	}
	p.method = m
	return nil
}

// Validate moves Draft to Validated. Guard order is fixed: an empty cart
// wins over incomplete details, which win over a missing payment method,
// so repeated calls always surface the same reason. On refusal the
// pipeline stays in Draft.
func (p *Pipeline) Validate() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == domain.StateValidated {
		return nil
	}
	if !domain.CanTransition(p.state, domain.StateValidated) {
		return ErrIllegalState
	}
	if p.cart.Len() == 0 {
		return ErrEmptyCart
	}
	if !p.details.Complete() {
		return ErrMissingFields
	}
	if !p.method.Valid() {
		return ErrNoPaymentMethod
	}
	p.state = domain.StateValidated
	return nil
}

// Commit moves Validated to Processing, freezes the cart snapshot and
// schedules the payment step. It returns a channel that delivers the
// finalized order to a single receiver once processing completes. A
// commit while another is already processing returns the in-flight
// channel and changes nothing.
func (p *Pipeline) Commit() (<-chan Result, error) {
	p.mu.Lock()
	if p.state == domain.StateProcessing {
		ch := p.pending
		p.mu.Unlock()
		return ch, nil
	}
	if !domain.CanTransition(p.state, domain.StateProcessing) {
		p.mu.Unlock()
		return nil, ErrIllegalState
	}

	snapshot := p.cart.Snapshot()
	total := p.pricer.Sum(snapshot)
	method := p.method
	p.state = domain.StateProcessing
	p.pending = make(chan Result, 1)
	ch := p.pending
	p.mu.Unlock()

	go p.process(snapshot, total, method, ch)
	return ch, nil
}

// Abort cancels a draft or validated checkout and returns to a fresh
// draft. It never touches the cart or the order history.
func (p *Pipeline) Abort() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !domain.CanTransition(p.state, domain.StateAborted) {
		return ErrIllegalState
	}
	p.state = domain.StateAborted
	p.resetLocked()
	return nil
}

// process runs on its own goroutine. The delay always runs to completion;
// there is no cancellation path once processing has started.
func (p *Pipeline) process(snapshot []domain.CartItem, total float64, method domain.PaymentMethod, ch chan Result) {
	txn, err := p.processor.Charge(context.Background(), total, method)
	if err != nil {
		// Nothing was appended or cleared, so there is nothing to roll
		// back. The checkout stays validated and can be committed again.
		log.Printf("payment processing failed: %v", err)
		p.mu.Lock()
		p.state = domain.StateValidated
		p.pending = nil
		p.mu.Unlock()
		ch <- Result{Err: err}
		return
	}

	now := p.now()
	order := domain.Order{
		ID:            uuid.New(),
		OrderDate:     domain.DateOnly(now),
		PaymentMethod: method,
		TotalAmount:   pricing.FormatAmount(total),
		Services:      snapshot,
		TransactionID: txn,
	}

	p.mu.Lock()
	p.history.CommitOrder(order)
	p.state = domain.StateCommitted
	p.resetLocked()
	p.mu.Unlock()

	ch <- Result{Order: order}
}

// resetLocked returns the pipeline to a fresh draft for the next checkout.
func (p *Pipeline) resetLocked() {
	p.state = domain.StateDraft
	p.details = domain.BookingDetails{}
	p.method = ""
	p.pending = nil
}
