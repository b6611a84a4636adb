package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Villegascvrr/tricketv0-sub002/docs"
	"github.com/Villegascvrr/tricketv0-sub002/internal/dto"
	"github.com/Villegascvrr/tricketv0-sub002/internal/service"
	"github.com/Villegascvrr/tricketv0-sub002/internal/stats"
)

// SessionHeader identifies a dashboard session; newer requests of a session supersede older ones
const SessionHeader = "X-Dashboard-Session"

type Handler struct {
	ticketService   service.TicketServicer
	statsService    service.StatsServicer
	capacityService service.CapacityServicer
	router          *gin.Engine
	log             *zap.Logger
}

func NewHandler(tickets service.TicketServicer, statistics service.StatsServicer, capacities service.CapacityServicer, log *zap.Logger) *Handler {
	h := &Handler{
		ticketService:   tickets,
		statsService:    statistics,
		capacityService: capacities,
		router:          gin.New(),
		log:             log,
	}

	h.router.Use(gin.Recovery(), h.requestLogger())
	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/tickets", h.publishTicket)
	h.router.POST("/tickets/bulk", h.publishTicketsBulk)
	h.router.GET("/events/:event_id/stats", h.getStatistics)
	h.router.PUT("/events/:event_id/capacities", h.setCapacities)
	h.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// publishTicket handles POST /tickets
// @Summary Import a single ticket
// @Description Validate a ticket sale and queue it for import
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticket body dto.PublishTicketRequest true "Ticket sale"
// @Success 202 {object} dto.PublishTicketResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickets [post]
func (h *Handler) publishTicket(c *gin.Context) {
	var req dto.PublishTicketRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid ticket request",
			zap.Error(err),
			zap.String("event_id", req.EventID))
		h.respondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	ticketID, err := h.ticketService.ProcessTicket(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to process ticket",
			zap.Error(err),
			zap.String("event_id", req.EventID))
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.PublishTicketResponse{
		TicketID: ticketID,
		Status:   "accepted",
	})
}

// publishTicketsBulk handles POST /tickets/bulk
// @Summary Import tickets in bulk
// @Description Validate up to 1000 ticket sales and queue the valid ones for import
// @Tags tickets
// @Accept json
// @Produce json
// @Param tickets body dto.PublishTicketsBulkRequest true "Ticket sales"
// @Success 202 {object} dto.PublishBulkTicketsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tickets/bulk [post]
func (h *Handler) publishTicketsBulk(c *gin.Context) {
	var bulkRequest dto.PublishTicketsBulkRequest

	if err := c.ShouldBindJSON(&bulkRequest); err != nil {
		h.log.Warn("Invalid bulk ticket request", zap.Error(err))
		h.respondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	ticketIDs, errs, err := h.ticketService.ProcessBulkTickets(c.Request.Context(), bulkRequest.Tickets)
	if err != nil {
		h.log.Error("Failed to process bulk tickets",
			zap.Error(err),
			zap.Int("ticket_count", len(bulkRequest.Tickets)))
		h.respondServiceError(c, err)
		return
	}

	h.log.Info("Bulk tickets processed",
		zap.Int("accepted", len(ticketIDs)),
		zap.Int("rejected", len(errs)),
		zap.Int("total", len(bulkRequest.Tickets)))

	c.JSON(http.StatusAccepted, dto.PublishBulkTicketsResponse{
		Accepted:  len(ticketIDs),
		Rejected:  len(errs),
		TicketIDs: ticketIDs,
		Errors:    errs,
	})
}

// getStatistics handles GET /events/{event_id}/stats
// @Summary Ticket sales statistics
// @Description Compute KPIs, targets, trends, breakdowns and demographics of an event.
// @Description Event ids with the demo prefix return the demo dataset; read failures fall back to it.
// @Tags stats
// @Produce json
// @Param event_id path string true "Event id" example:"fest-2027"
// @Param X-Dashboard-Session header string false "Dashboard session; newer requests supersede older ones"
// @Success 200 {object} stats.Snapshot
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{event_id}/stats [get]
func (h *Handler) getStatistics(c *gin.Context) {
	eventID := c.Param("event_id")
	sessionID := c.GetHeader(SessionHeader)

	snap, err := h.statsService.GetStatistics(c.Request.Context(), eventID, sessionID)
	if err != nil {
		if errors.Is(err, stats.ErrSuperseded) {
			h.log.Debug("Statistics request superseded",
				zap.String("event_id", eventID),
				zap.String("session", sessionID))
		} else {
			h.log.Error("Failed to get statistics",
				zap.Error(err),
				zap.String("event_id", eventID))
		}
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}

// setCapacities handles PUT /events/{event_id}/capacities
// @Summary Set capacities
// @Description Upsert provider allocations and zone capacities used for occupancy figures. Entries left out keep their stored capacity; send 0 to clear one
// @Tags stats
// @Accept json
// @Produce json
// @Param event_id path string true "Event id" example:"fest-2027"
// @Param capacities body dto.SetCapacitiesRequest true "Capacities"
// @Success 200 {object} dto.SetCapacitiesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/{event_id}/capacities [put]
func (h *Handler) setCapacities(c *gin.Context) {
	var req dto.SetCapacitiesRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid capacities request", zap.Error(err))
		h.respondError(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	resp, err := h.capacityService.SetCapacities(c.Request.Context(), c.Param("event_id"), &req)
	if err != nil {
		h.log.Error("Failed to set capacities",
			zap.Error(err),
			zap.String("event_id", c.Param("event_id")))
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		h.respondError(c, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, stats.ErrSuperseded):
		h.respondError(c, http.StatusConflict, "superseded", err)
	default:
		h.respondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}

func (h *Handler) respondError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, dto.ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}
