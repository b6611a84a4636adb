package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
	"github.com/Villegascvrr/tricketv0-sub002/internal/dto"
	"github.com/Villegascvrr/tricketv0-sub002/internal/repository"
)

// CapacityService maintains provider allocations and zone definitions
type CapacityService struct {
	repository repository.TicketRepository
	log        *zap.Logger
}

// NewCapacityService creates a new capacity service
func NewCapacityService(repo repository.TicketRepository, log *zap.Logger) *CapacityService {
	return &CapacityService{
		repository: repo,
		log:        log,
	}
}

// SetCapacities writes the provider and zone capacities of an event
func (s *CapacityService) SetCapacities(ctx context.Context, eventID string, req *dto.SetCapacitiesRequest) (*dto.SetCapacitiesResponse, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: event_id is required", ErrValidation)
	}
	if len(req.Providers) == 0 && len(req.Zones) == 0 {
		return nil, fmt.Errorf("%w: at least one provider or zone is required", ErrValidation)
	}

	providers := make([]domain.ProviderCapacity, 0, len(req.Providers))
	for _, p := range req.Providers {
		providers = append(providers, domain.ProviderCapacity{EventID: eventID, Provider: p.Name, Capacity: p.Capacity})
	}
	zones := make([]domain.ZoneCapacity, 0, len(req.Zones))
	for _, z := range req.Zones {
		zones = append(zones, domain.ZoneCapacity{EventID: eventID, Zone: z.Name, Capacity: z.Capacity})
	}

	if err := s.repository.UpsertProviderCapacities(ctx, eventID, providers); err != nil {
		return nil, fmt.Errorf("failed to store provider capacities: %w", err)
	}
	if err := s.repository.UpsertZoneCapacities(ctx, eventID, zones); err != nil {
		return nil, fmt.Errorf("failed to store zone capacities: %w", err)
	}

	s.log.Info("Capacities updated",
		zap.String("event_id", eventID),
		zap.Int("providers", len(providers)),
		zap.Int("zones", len(zones)))

	return &dto.SetCapacitiesResponse{
		EventID:   eventID,
		Providers: len(providers),
		Zones:     len(zones),
	}, nil
}
