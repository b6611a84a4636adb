package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket statuses as written by the import pipeline
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
)

// Ticket represents one ticket sale stored in ClickHouse
type Ticket struct {
	TicketID         string          `ch:"ticket_id"`
	EventID          string          `ch:"event_id"`
	Price            decimal.Decimal `ch:"price"`
	SoldAt           time.Time       `ch:"sold_at"`
	Provider         string          `ch:"provider"`
	Zone             string          `ch:"zone"`
	Channel          string          `ch:"channel"`
	Status           string          `ch:"status"`
	BuyerAge         *int            `ch:"buyer_age"`
	BuyerProvince    string          `ch:"buyer_province"`
	BuyerCity        string          `ch:"buyer_city"`
	HasEmail         bool            `ch:"has_email"`
	HasPhone         bool            `ch:"has_phone"`
	MarketingConsent bool            `ch:"marketing_consent"`
	ProcessedAt      time.Time       `ch:"processed_at"`
	Version          uint64          `ch:"version"`
}

// ProviderCapacity is the number of tickets allocated to a sales provider
type ProviderCapacity struct {
	EventID  string
	Provider string
	Capacity int
}

// ZoneCapacity is the number of places available in a venue zone
type ZoneCapacity struct {
	EventID  string
	Zone     string
	Capacity int
}
