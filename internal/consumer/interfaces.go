package consumer

import (
	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
)

// MessageParser turns a raw queue message body into a validated ticket
type MessageParser interface {
	Parse(body []byte) (*domain.Ticket, error)
}
