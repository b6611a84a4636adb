package consumer

import (
	"context"

	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
)

// Envelope carries a parsed ticket together with the callbacks that settle its queue message
type Envelope struct {
	Ticket *domain.Ticket
	ack    func(context.Context) error
	nack   func(context.Context) error
}

// NewEnvelope creates a new message envelope
func NewEnvelope(ticket *domain.Ticket, ack, nack func(context.Context) error) *Envelope {
	return &Envelope{
		Ticket: ticket,
		ack:    ack,
		nack:   nack,
	}
}

// Ack marks the ticket as stored
func (e *Envelope) Ack(ctx context.Context) error {
	if e.ack == nil {
		return nil
	}
	return e.ack(ctx)
}

// Nack leaves the ticket to be redelivered
func (e *Envelope) Nack(ctx context.Context) error {
	if e.nack == nil {
		return nil
	}
	return e.nack(ctx)
}
