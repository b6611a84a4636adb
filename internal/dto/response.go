package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"event_id is required"`
}

// PublishTicketResponse represents a successful ticket intake response
type PublishTicketResponse struct {
	TicketID string `json:"ticket_id" example:"5f1c9e0a7b..."`
	Status   string `json:"status" example:"accepted"`
}

// PublishBulkTicketsResponse represents a successful bulk ticket intake response
type PublishBulkTicketsResponse struct {
	Accepted  int      `json:"accepted" example:"5"`
	Rejected  int      `json:"rejected" example:"0"`
	TicketIDs []string `json:"ticket_ids,omitempty"`
	Errors    []string `json:"errors,omitempty" example:"ticket 3: price must not be negative"`
}

// SetCapacitiesResponse reports how many capacity rows were written
type SetCapacitiesResponse struct {
	EventID   string `json:"event_id" example:"fest-2027"`
	Providers int    `json:"providers" example:"4"`
	Zones     int    `json:"zones" example:"3"`
}
