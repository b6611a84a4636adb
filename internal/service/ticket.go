package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Villegascvrr/tricketv0-sub002/internal/dto"
	"github.com/Villegascvrr/tricketv0-sub002/internal/queue"
)

// TicketService validates ticket sales and hands them to the import queue
type TicketService struct {
	publisher queue.TicketPublisher
	now       func() time.Time
	log       *zap.Logger
}

// NewTicketService creates a new ticket service
func NewTicketService(publisher queue.TicketPublisher, log *zap.Logger) *TicketService {
	return &TicketService{
		publisher: publisher,
		now:       time.Now,
		log:       log,
	}
}

// computeTicketID derives a deterministic id from the provider's external reference so that
// resubmitting the same sale does not create a second ticket. Sales without a reference get a random id.
func computeTicketID(ticket *dto.PublishTicketRequest) string {
	if ticket.ExternalRef == "" {
		return uuid.NewString()
	}

	data := fmt.Sprintf("%s|%s|%s", ticket.EventID, ticket.Provider, ticket.ExternalRef)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// ProcessTicket validates a single ticket and publishes it
func (s *TicketService) ProcessTicket(ctx context.Context, ticket *dto.PublishTicketRequest) (string, error) {
	if err := s.validate(ticket); err != nil {
		s.log.Warn("Ticket validation failed",
			zap.String("event_id", ticket.EventID),
			zap.Error(err))
		return "", err
	}

	ticketID := computeTicketID(ticket)

	if err := s.publisher.PublishTicket(ctx, ticket, ticketID); err != nil {
		return "", fmt.Errorf("failed to publish ticket to queue: %w", err)
	}

	return ticketID, nil
}

// ProcessBulkTickets processes tickets one by one; failures are reported per ticket
func (s *TicketService) ProcessBulkTickets(ctx context.Context, tickets []dto.PublishTicketRequest) ([]string, []string, error) {
	var ticketIDs []string
	var errs []string

	for i := range tickets {
		ticketID, err := s.ProcessTicket(ctx, &tickets[i])
		if err != nil {
			errs = append(errs, fmt.Sprintf("ticket %d: %s", i, err.Error()))
			continue
		}
		ticketIDs = append(ticketIDs, ticketID)
	}

	return ticketIDs, errs, nil
}

func (s *TicketService) validate(ticket *dto.PublishTicketRequest) error {
	if ticket.EventID == "" {
		return fmt.Errorf("%w: event_id is required", ErrValidation)
	}

	price, err := decimal.NewFromString(ticket.Price)
	if err != nil {
		return fmt.Errorf("%w: price %q is not a number", ErrValidation, ticket.Price)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	currentTime := s.now().Unix()
	if ticket.SoldAt > currentTime+1 {
		return fmt.Errorf("%w: sold_at cannot be in the future: %d > %d", ErrValidation, ticket.SoldAt, currentTime)
	}

	return nil
}
