package service

import (
	"context"

	"github.com/Villegascvrr/tricketv0-sub002/internal/dto"
	"github.com/Villegascvrr/tricketv0-sub002/internal/stats"
)

// TicketServicer defines the ticket intake operations
type TicketServicer interface {
	ProcessTicket(ctx context.Context, ticket *dto.PublishTicketRequest) (string, error)
	ProcessBulkTickets(ctx context.Context, tickets []dto.PublishTicketRequest) ([]string, []string, error)
}

// StatsServicer defines the statistics operations
type StatsServicer interface {
	GetStatistics(ctx context.Context, eventID, sessionID string) (*stats.Snapshot, error)
}

// CapacityServicer defines the capacity administration operations
type CapacityServicer interface {
	SetCapacities(ctx context.Context, eventID string, req *dto.SetCapacitiesRequest) (*dto.SetCapacitiesResponse, error)
}
