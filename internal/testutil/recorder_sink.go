package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/subcycle/subcycle/internal/domain/customer"
	"github.com/subcycle/subcycle/internal/domain/invoice"
	"github.com/subcycle/subcycle/internal/domain/payment"
)

const (
	EventInvoiceGenerated  = "invoice_generated"
	EventPaymentSuccessful = "payment_successful"
	EventPaymentFailed     = "payment_failed"
)

// SinkEvent captures one notification emitted by a service
type SinkEvent struct {
	Kind        string
	CustomerID  string
	InvoiceID   string
	PaymentID   string
	PaymentDate time.Time
}

// RecorderSink records notifications instead of sending them
type RecorderSink struct {
	mu     sync.Mutex
	events []SinkEvent
}

func NewRecorderSink() *RecorderSink {
	return &RecorderSink{}
}

func (s *RecorderSink) SendInvoiceGenerated(_ context.Context, c *customer.Customer, inv *invoice.Invoice) {
	s.append(SinkEvent{
		Kind:       EventInvoiceGenerated,
		CustomerID: c.ID,
		InvoiceID:  inv.ID,
	})
}

func (s *RecorderSink) SendPaymentSuccessful(_ context.Context, c *customer.Customer, p *payment.Payment) {
	s.append(SinkEvent{
		Kind:        EventPaymentSuccessful,
		CustomerID:  c.ID,
		InvoiceID:   p.InvoiceID,
		PaymentID:   p.ID,
		PaymentDate: p.PaymentDate,
	})
}

func (s *RecorderSink) SendPaymentFailed(_ context.Context, c *customer.Customer, inv *invoice.Invoice) {
	s.append(SinkEvent{
		Kind:       EventPaymentFailed,
		CustomerID: c.ID,
		InvoiceID:  inv.ID,
	})
}

func (s *RecorderSink) append(e SinkEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns a copy of the recorded notifications in emission order
func (s *RecorderSink) Events() []SinkEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SinkEvent, len(s.events))
	copy(out, s.events)
	return out
}

// Clear drops all recorded notifications
func (s *RecorderSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}
