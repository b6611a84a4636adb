package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// maxBuyerAge bounds plausible ages; anything outside 0..maxBuyerAge is treated as unknown
const maxBuyerAge = 120

// ErrInvalidTicket is wrapped by every ParseError
var ErrInvalidTicket = errors.New("invalid ticket record")

// ParseError describes why a TicketRecord could not become a Ticket
type ParseError struct {
	TicketID string
	Field    string
	Reason   string
}

func (e *ParseError) Error() string {
	if e.TicketID == "" {
		return fmt.Sprintf("invalid ticket record: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid ticket record %s: %s: %s", e.TicketID, e.Field, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidTicket
}

// TicketRecord is a ticket as it arrives from an untyped source (queue message or query row).
// Every field may be missing.
type TicketRecord struct {
	TicketID         *string `json:"ticket_id"`
	EventID          *string `json:"event_id"`
	Price            *string `json:"price"`
	SoldAt           *int64  `json:"sold_at"`
	Provider         *string `json:"provider"`
	Zone             *string `json:"zone"`
	Channel          *string `json:"channel"`
	Status           *string `json:"status"`
	BuyerAge         *int    `json:"buyer_age"`
	BuyerProvince    *string `json:"buyer_province"`
	BuyerCity        *string `json:"buyer_city"`
	HasEmail         *bool   `json:"has_email"`
	HasPhone         *bool   `json:"has_phone"`
	MarketingConsent *bool   `json:"marketing_consent"`
}

// ParseTicket validates a record and converts it into a Ticket.
// SoldAt is a unix timestamp in seconds. A missing status means confirmed.
func ParseTicket(rec TicketRecord) (*Ticket, error) {
	id := strings.TrimSpace(deref(rec.TicketID))
	if id == "" {
		return nil, &ParseError{Field: "ticket_id", Reason: "missing"}
	}

	eventID := strings.TrimSpace(deref(rec.EventID))
	if eventID == "" {
		return nil, &ParseError{TicketID: id, Field: "event_id", Reason: "missing"}
	}

	if rec.Price == nil {
		return nil, &ParseError{TicketID: id, Field: "price", Reason: "missing"}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(*rec.Price))
	if err != nil {
		return nil, &ParseError{TicketID: id, Field: "price", Reason: err.Error()}
	}
	if price.IsNegative() {
		return nil, &ParseError{TicketID: id, Field: "price", Reason: "negative"}
	}

	if rec.SoldAt == nil || *rec.SoldAt <= 0 {
		return nil, &ParseError{TicketID: id, Field: "sold_at", Reason: "missing"}
	}

	status := strings.ToLower(strings.TrimSpace(deref(rec.Status)))
	switch status {
	case "":
		status = StatusConfirmed
	case StatusConfirmed, StatusCancelled, StatusRefunded:
	default:
		return nil, &ParseError{TicketID: id, Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}

	var age *int
	if rec.BuyerAge != nil && *rec.BuyerAge > 0 && *rec.BuyerAge <= maxBuyerAge {
		a := *rec.BuyerAge
		age = &a
	}

	return &Ticket{
		TicketID:         id,
		EventID:          eventID,
		Price:            price,
		SoldAt:           time.Unix(*rec.SoldAt, 0).UTC(),
		Provider:         deref(rec.Provider),
		Zone:             deref(rec.Zone),
		Channel:          deref(rec.Channel),
		Status:           status,
		BuyerAge:         age,
		BuyerProvince:    strings.TrimSpace(deref(rec.BuyerProvince)),
		BuyerCity:        strings.TrimSpace(deref(rec.BuyerCity)),
		HasEmail:         rec.HasEmail != nil && *rec.HasEmail,
		HasPhone:         rec.HasPhone != nil && *rec.HasPhone,
		MarketingConsent: rec.MarketingConsent != nil && *rec.MarketingConsent,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
