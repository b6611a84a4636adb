package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS tickets (
		ticket_id String,
		event_id LowCardinality(String),
		price Decimal(10, 2),
		sold_at DateTime64(3, 'UTC'),
		provider Nullable(String),
		zone Nullable(String),
		channel Nullable(String),
		status LowCardinality(String),
		buyer_age Nullable(UInt8),
		buyer_province Nullable(String),
		buyer_city Nullable(String),
		has_email Bool,
		has_phone Bool,
		marketing_consent Bool,
		processed_at DateTime64(3) DEFAULT now64(3),
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	PARTITION BY toYYYYMM(sold_at)
	ORDER BY (event_id, ticket_id)
	SETTINGS index_granularity = 8192`,
	`CREATE TABLE IF NOT EXISTS provider_capacities (
		event_id LowCardinality(String),
		provider String,
		capacity UInt32,
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	ORDER BY (event_id, provider)`,
	`CREATE TABLE IF NOT EXISTS zone_capacities (
		event_id LowCardinality(String),
		zone String,
		capacity UInt32,
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	ORDER BY (event_id, zone)`,
}

// Repository implements TicketRepository for ClickHouse
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema creates the ticket and capacity tables
func (r *Repository) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if err := r.client.Conn().Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// InsertBatch inserts a batch of tickets into ClickHouse
func (r *Repository) InsertBatch(ctx context.Context, tickets []*domain.Ticket) (int, error) {
	if len(tickets) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO tickets")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, t := range tickets {
		if t.Version == 0 {
			t.Version = uint64(time.Now().UnixNano())
		}
		if t.ProcessedAt.IsZero() {
			t.ProcessedAt = time.Now()
		}

		var age *uint8
		if t.BuyerAge != nil {
			a := uint8(*t.BuyerAge)
			age = &a
		}

		err := batch.Append(
			t.TicketID,
			t.EventID,
			t.Price,
			t.SoldAt,
			nullable(t.Provider),
			nullable(t.Zone),
			nullable(t.Channel),
			t.Status,
			age,
			nullable(t.BuyerProvince),
			nullable(t.BuyerCity),
			t.HasEmail,
			t.HasPhone,
			t.MarketingConsent,
			t.ProcessedAt,
			t.Version,
		)
		if err != nil {
			_ = batch.Abort()
			return 0, fmt.Errorf("failed to append ticket %s to batch: %w", t.TicketID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	return len(tickets), nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}

// ListConfirmedTickets reads the confirmed tickets of an event. Values are returned untyped so
// validation happens in one place, domain.ParseTicket.
func (r *Repository) ListConfirmedTickets(ctx context.Context, eventID string) ([]domain.TicketRecord, error) {
	query := `
		SELECT
			ticket_id,
			event_id,
			toString(price) AS price,
			toInt64(toUnixTimestamp(sold_at)) AS sold_at,
			provider,
			zone,
			channel,
			status,
			buyer_age,
			buyer_province,
			buyer_city,
			has_email,
			has_phone,
			marketing_consent
		FROM tickets FINAL
		WHERE event_id = ? AND status = ?
		ORDER BY sold_at ASC
	`

	rows, err := r.client.Conn().Query(ctx, query, eventID, domain.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer r.closeRows(rows, "tickets")

	records := []domain.TicketRecord{}
	for rows.Next() {
		var (
			ticketID, evID, price, status      string
			soldAt                             int64
			provider, zone, channel            *string
			age                                *uint8
			province, city                     *string
			hasEmail, hasPhone, marketingOptIn bool
		)
		if err := rows.Scan(&ticketID, &evID, &price, &soldAt, &provider, &zone, &channel, &status,
			&age, &province, &city, &hasEmail, &hasPhone, &marketingOptIn); err != nil {
			return nil, fmt.Errorf("failed to scan ticket row: %w", err)
		}

		rec := domain.TicketRecord{
			TicketID:         &ticketID,
			EventID:          &evID,
			Price:            &price,
			SoldAt:           &soldAt,
			Provider:         provider,
			Zone:             zone,
			Channel:          channel,
			Status:           &status,
			BuyerProvince:    province,
			BuyerCity:        city,
			HasEmail:         &hasEmail,
			HasPhone:         &hasPhone,
			MarketingConsent: &marketingOptIn,
		}
		if age != nil {
			a := int(*age)
			rec.BuyerAge = &a
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket rows: %w", err)
	}

	return records, nil
}

// ListProviderCapacities reads provider allocations of an event
func (r *Repository) ListProviderCapacities(ctx context.Context, eventID string) ([]domain.ProviderCapacity, error) {
	rows, err := r.client.Conn().Query(ctx,
		`SELECT provider, capacity FROM provider_capacities FINAL WHERE event_id = ? ORDER BY provider`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query provider capacities: %w", err)
	}
	defer r.closeRows(rows, "provider capacities")

	result := []domain.ProviderCapacity{}
	for rows.Next() {
		var (
			provider string
			capacity uint32
		)
		if err := rows.Scan(&provider, &capacity); err != nil {
			return nil, fmt.Errorf("failed to scan provider capacity row: %w", err)
		}
		result = append(result, domain.ProviderCapacity{EventID: eventID, Provider: provider, Capacity: int(capacity)})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating provider capacity rows: %w", err)
	}
	return result, nil
}

// ListZoneCapacities reads the zone definitions of an event
func (r *Repository) ListZoneCapacities(ctx context.Context, eventID string) ([]domain.ZoneCapacity, error) {
	rows, err := r.client.Conn().Query(ctx,
		`SELECT zone, capacity FROM zone_capacities FINAL WHERE event_id = ? ORDER BY zone`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query zone capacities: %w", err)
	}
	defer r.closeRows(rows, "zone capacities")

	result := []domain.ZoneCapacity{}
	for rows.Next() {
		var (
			zone     string
			capacity uint32
		)
		if err := rows.Scan(&zone, &capacity); err != nil {
			return nil, fmt.Errorf("failed to scan zone capacity row: %w", err)
		}
		result = append(result, domain.ZoneCapacity{EventID: eventID, Zone: zone, Capacity: int(capacity)})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating zone capacity rows: %w", err)
	}
	return result, nil
}

// UpsertProviderCapacities writes provider allocations; the newest version of a row wins
func (r *Repository) UpsertProviderCapacities(ctx context.Context, eventID string, capacities []domain.ProviderCapacity) error {
	if len(capacities) == 0 {
		return nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO provider_capacities")
	if err != nil {
		return fmt.Errorf("failed to prepare provider capacity batch: %w", err)
	}

	version := uint64(time.Now().UnixNano())
	for _, c := range capacities {
		if err := batch.Append(eventID, c.Provider, uint32(c.Capacity), version); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("failed to append provider capacity: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send provider capacity batch: %w", err)
	}
	return nil
}

// UpsertZoneCapacities writes zone definitions; the newest version of a row wins
func (r *Repository) UpsertZoneCapacities(ctx context.Context, eventID string, capacities []domain.ZoneCapacity) error {
	if len(capacities) == 0 {
		return nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO zone_capacities")
	if err != nil {
		return fmt.Errorf("failed to prepare zone capacity batch: %w", err)
	}

	version := uint64(time.Now().UnixNano())
	for _, c := range capacities {
		if err := batch.Append(eventID, c.Zone, uint32(c.Capacity), version); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("failed to append zone capacity: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send zone capacity batch: %w", err)
	}
	return nil
}

func (r *Repository) closeRows(rows driver.Rows, what string) {
	if err := rows.Close(); err != nil {
		r.log.Error("Failed to close rows", zap.String("query", what), zap.Error(err))
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
