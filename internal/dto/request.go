package dto

// PublishTicketRequest represents a ticket sale submitted for import
type PublishTicketRequest struct {
	EventID          string `json:"event_id" binding:"required" example:"fest-2027"`
	Price            string `json:"price" binding:"required" example:"49.00"`
	SoldAt           int64  `json:"sold_at" binding:"required" example:"1766702551"`
	Provider         string `json:"provider" example:"Ticketmaster"`
	Zone             string `json:"zone" example:"General"`
	Channel          string `json:"channel" example:"online"`
	Status           string `json:"status" binding:"omitempty,oneof=confirmed cancelled refunded" example:"confirmed"`
	ExternalRef      string `json:"external_ref" example:"TM-000123"`
	BuyerAge         *int   `json:"buyer_age" binding:"omitempty,min=0,max=120" example:"24"`
	BuyerProvince    string `json:"buyer_province" example:"Sevilla"`
	BuyerCity        string `json:"buyer_city" example:"Dos Hermanas"`
	HasEmail         bool   `json:"has_email" example:"true"`
	HasPhone         bool   `json:"has_phone" example:"false"`
	MarketingConsent bool   `json:"marketing_consent" example:"true"`
}

// PublishTicketsBulkRequest represents a bulk ticket import request
type PublishTicketsBulkRequest struct {
	Tickets []PublishTicketRequest `json:"tickets" binding:"required,min=1,max=1000,dive"`
}

// CapacityEntry is the capacity of one provider or zone
type CapacityEntry struct {
	Name     string `json:"name" binding:"required" example:"General"`
	Capacity int    `json:"capacity" binding:"min=0" example:"14000"`
}

// SetCapacitiesRequest upserts provider allocations and zone definitions of an event.
// Entries left out keep their stored capacity; a capacity of 0 clears an entry.
type SetCapacitiesRequest struct {
	Providers []CapacityEntry `json:"providers" binding:"dive"`
	Zones     []CapacityEntry `json:"zones" binding:"dive"`
}
