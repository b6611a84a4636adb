// Package docs holds the Swagger description of the ticket statistics API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Check if the service is running",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/tickets": {
            "post": {
                "description": "Validate a ticket sale and queue it for import",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Import a single ticket",
                "parameters": [
                    {
                        "description": "Ticket sale",
                        "name": "ticket",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.PublishTicketRequest"}
                    }
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/dto.PublishTicketResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/tickets/bulk": {
            "post": {
                "description": "Validate up to 1000 ticket sales and queue the valid ones for import",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Import tickets in bulk",
                "parameters": [
                    {
                        "description": "Ticket sales",
                        "name": "tickets",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.PublishTicketsBulkRequest"}
                    }
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/dto.PublishBulkTicketsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/events/{event_id}/stats": {
            "get": {
                "description": "Compute KPIs, targets, trends, breakdowns and demographics of an event.\nEvent ids with the demo prefix return the demo dataset; read failures fall back to it.",
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Ticket sales statistics",
                "parameters": [
                    {"type": "string", "example": "fest-2027", "description": "Event id", "name": "event_id", "in": "path", "required": true},
                    {"type": "string", "description": "Dashboard session; newer requests supersede older ones", "name": "X-Dashboard-Session", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/stats.Snapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/events/{event_id}/capacities": {
            "put": {
                "description": "Upsert provider allocations and zone capacities used for occupancy figures. Entries left out keep their stored capacity; send 0 to clear one",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Set capacities",
                "parameters": [
                    {"type": "string", "example": "fest-2027", "description": "Event id", "name": "event_id", "in": "path", "required": true},
                    {
                        "description": "Capacities",
                        "name": "capacities",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.SetCapacitiesRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SetCapacitiesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "validation_error"},
                "message": {"type": "string", "example": "event_id is required"}
            }
        },
        "dto.PublishTicketRequest": {
            "type": "object",
            "required": ["event_id", "price", "sold_at"],
            "properties": {
                "event_id": {"type": "string", "example": "fest-2027"},
                "price": {"type": "string", "example": "49.00"},
                "sold_at": {"type": "integer", "example": 1766702551},
                "provider": {"type": "string", "example": "Ticketmaster"},
                "zone": {"type": "string", "example": "General"},
                "channel": {"type": "string", "example": "online"},
                "status": {"type": "string", "example": "confirmed"},
                "external_ref": {"type": "string", "example": "TM-000123"},
                "buyer_age": {"type": "integer", "example": 24},
                "buyer_province": {"type": "string", "example": "Sevilla"},
                "buyer_city": {"type": "string", "example": "Dos Hermanas"},
                "has_email": {"type": "boolean", "example": true},
                "has_phone": {"type": "boolean", "example": false},
                "marketing_consent": {"type": "boolean", "example": true}
            }
        },
        "dto.PublishTicketsBulkRequest": {
            "type": "object",
            "required": ["tickets"],
            "properties": {
                "tickets": {"type": "array", "items": {"$ref": "#/definitions/dto.PublishTicketRequest"}}
            }
        },
        "dto.PublishTicketResponse": {
            "type": "object",
            "properties": {
                "ticket_id": {"type": "string"},
                "status": {"type": "string", "example": "accepted"}
            }
        },
        "dto.PublishBulkTicketsResponse": {
            "type": "object",
            "properties": {
                "accepted": {"type": "integer", "example": 5},
                "rejected": {"type": "integer", "example": 0},
                "ticket_ids": {"type": "array", "items": {"type": "string"}},
                "errors": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.CapacityEntry": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "General"},
                "capacity": {"type": "integer", "example": 14000}
            }
        },
        "dto.SetCapacitiesRequest": {
            "type": "object",
            "properties": {
                "providers": {"type": "array", "items": {"$ref": "#/definitions/dto.CapacityEntry"}},
                "zones": {"type": "array", "items": {"$ref": "#/definitions/dto.CapacityEntry"}}
            }
        },
        "dto.SetCapacitiesResponse": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string", "example": "fest-2027"},
                "providers": {"type": "integer", "example": 4},
                "zones": {"type": "integer", "example": 3}
            }
        },
        "stats.Snapshot": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "generated_at": {"type": "string"},
                "total_sold": {"type": "integer"},
                "gross_revenue": {"type": "string"},
                "capacity": {"type": "integer"},
                "occupancy_rate": {"type": "number"},
                "avg_ticket_price": {"type": "string"},
                "target_sales": {"type": "integer"},
                "sales_gap": {"type": "integer"},
                "target_progress": {"type": "number"},
                "days_to_festival": {"type": "integer"},
                "required_daily_rate": {"type": "integer"},
                "last_day_sales": {"type": "integer"},
                "seven_day_average": {"type": "number"},
                "sales_trend": {"type": "number"},
                "by_provider": {"type": "array", "items": {"type": "object"}},
                "by_zone": {"type": "array", "items": {"type": "object"}},
                "by_channel": {"type": "array", "items": {"type": "object"}},
                "daily": {"type": "array", "items": {"type": "object"}},
                "demographics": {"type": "object"},
                "source": {"type": "string", "example": "live"},
                "is_demo": {"type": "boolean"},
                "has_real_data": {"type": "boolean"},
                "fallback_reason": {"type": "string"},
                "rejected_records": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Festival Ticket Statistics API",
	Description:      "Ticket import and sales statistics for the festival command center",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
