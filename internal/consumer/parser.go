package consumer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
)

// JSONTicketParser implements MessageParser for JSON-encoded ticket records
type JSONTicketParser struct {
	now func() time.Time
}

// NewJSONTicketParser creates a new JSON ticket parser
func NewJSONTicketParser() *JSONTicketParser {
	return &JSONTicketParser{now: time.Now}
}

// Parse decodes and validates a ticket message
func (p *JSONTicketParser) Parse(body []byte) (*domain.Ticket, error) {
	var rec domain.TicketRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	ticket, err := domain.ParseTicket(rec)
	if err != nil {
		return nil, err
	}

	now := p.now()
	ticket.ProcessedAt = now
	ticket.Version = uint64(now.UnixNano())

	return ticket, nil
}
