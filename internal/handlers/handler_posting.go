package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/dto"
	"github.com/KANAL1234/business-erp-system-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler exposes automatic posting, the posting outbox and document numbering.
type postingHandler struct {
	postingService  portssvc.PostingSvcFacade
	outboxService   portssvc.OutboxSvc
	sequenceService portssvc.SequenceSvc
}

// RegisterPostingRoutes registers automatic posting, outbox and sequence routes.
func RegisterPostingRoutes(rg *gin.RouterGroup, posting portssvc.PostingSvcFacade, outbox portssvc.OutboxSvc, sequences portssvc.SequenceSvc) {
	h := &postingHandler{
		postingService:  posting,
		outboxService:   outbox,
		sequenceService: sequences,
	}

	rg.POST("/postings/:eventType/:eventID", h.postForEvent)
	rg.POST("/posting-intents", h.enqueueIntent)
	rg.POST("/sequences/:series/next", h.nextNumber)
}

// postForEvent godoc
// @Summary Post a business event to the ledger
// @Description Builds and posts the journal entry for a POS sale, vendor bill, stock adjustment or fuel log. Repeating the call returns ALREADY_POSTED with the existing entry. Events that need a missing or inactive role account are SKIPPED.
// @Tags postings
// @Produce  json
// @Param   eventType path string true "POS_SALE, VENDOR_BILL, STOCK_ADJUSTMENT or FUEL_LOG"
// @Param   eventID path string true "Business record ID"
// @Success 201 {object} dto.PostingResultResponse "Entry posted"
// @Success 200 {object} dto.PostingResultResponse "Already posted or skipped"
// @Failure 400 {object} map[string]string "Unknown event type or invalid event"
// @Failure 404 {object} map[string]string "Event not found"
// @Failure 500 {object} map[string]string "Failed to post event"
// @Security BearerAuth
// @Router /postings/{eventType}/{eventID} [post]
func (h *postingHandler) postForEvent(c *gin.Context) {
	eventType := domain.EventType(strings.ToUpper(c.Param("eventType")))
	eventID := c.Param("eventID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("event_type", string(eventType)),
		slog.String("event_id", eventID))

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	result, err := h.postingService.PostForEvent(c.Request.Context(), eventType, eventID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to post event")
		return
	}

	status := http.StatusOK
	if result.Outcome == domain.OutcomePosted {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToPostingResultResponse(result))
}

// enqueueIntent godoc
// @Summary Queue a business event for posting
// @Description Records a posting intent for the outbox worker. Queuing the same event twice keeps a single intent.
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   intent body dto.EnqueuePostingIntentRequest true "Event to post"
// @Success 202 {object} dto.PostingIntentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to queue posting"
// @Security BearerAuth
// @Router /posting-intents [post]
func (h *postingHandler) enqueueIntent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.EnqueuePostingIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EnqueuePostingIntent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	intent, err := h.outboxService.Enqueue(c.Request.Context(), req.EventType, req.EventID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to queue posting")
		return
	}

	c.JSON(http.StatusAccepted, dto.ToPostingIntentResponse(intent))
}

// nextNumber godoc
// @Summary Issue the next document number of a series
// @Description JE, VB, ADJ and FUEL are gap-free counters; POS and GRN are unique time-ordered numbers.
// @Tags sequences
// @Produce  json
// @Param   series path string true "Series prefix"
// @Success 200 {object} dto.DocumentNumberResponse
// @Failure 400 {object} map[string]string "Unknown series"
// @Failure 500 {object} map[string]string "Failed to issue document number"
// @Security BearerAuth
// @Router /sequences/{series}/next [post]
func (h *postingHandler) nextNumber(c *gin.Context) {
	series := strings.ToUpper(c.Param("series"))
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("series", series))

	number, err := h.sequenceService.Next(c.Request.Context(), series)
	if err != nil {
		respondError(c, logger, err, "Failed to issue document number")
		return
	}

	c.JSON(http.StatusOK, dto.DocumentNumberResponse{Series: series, DocumentNumber: number})
}
