package repository

import (
	"context"

	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
)

// TicketRepository defines the interface for ticket storage operations
type TicketRepository interface {
	// InsertBatch inserts a batch of tickets into the storage
	InsertBatch(ctx context.Context, tickets []*domain.Ticket) (int, error)

	// InitSchema initializes the database schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error

	// ListConfirmedTickets returns the raw confirmed ticket rows of an event
	ListConfirmedTickets(ctx context.Context, eventID string) ([]domain.TicketRecord, error)

	// ListProviderCapacities returns the provider allocations of an event
	ListProviderCapacities(ctx context.Context, eventID string) ([]domain.ProviderCapacity, error)

	// ListZoneCapacities returns the zone definitions of an event
	ListZoneCapacities(ctx context.Context, eventID string) ([]domain.ZoneCapacity, error)

	// UpsertProviderCapacities writes the given provider allocations; other providers are left as stored
	UpsertProviderCapacities(ctx context.Context, eventID string, capacities []domain.ProviderCapacity) error

	// UpsertZoneCapacities writes the given zone definitions; other zones are left as stored
	UpsertZoneCapacities(ctx context.Context, eventID string, capacities []domain.ZoneCapacity) error
}
