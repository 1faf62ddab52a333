package handlers

import (
	"log/slog"
	"net/http"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/dto"
	"github.com/KANAL1234/business-erp-system-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler exposes manual journal entry management.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// RegisterJournalRoutes registers routes for journal entries.
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID/lines", h.updateLines)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/cancel", h.cancelEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Creates a balanced DRAFT entry. Lines must reference active accounts and debits must equal credits.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create journal entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first, optionally filtered by status and type. Pages are continued with nextToken.
// @Tags journal-entries
// @Produce  json
// @Param   status query string false "DRAFT, POSTED or CANCELLED"
// @Param   entryType query string false "Entry type"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListJournalEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_id", c.Param("entryID")))

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), c.Param("entryID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateLines godoc
// @Summary Replace the lines of a draft entry
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   lines body dto.UpdateJournalLinesRequest true "Replacement lines"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced lines"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Failure 500 {object} map[string]string "Failed to update journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/lines [put]
func (h *journalHandler) updateLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_id", c.Param("entryID")))
	var req dto.UpdateJournalLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournalLines", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalService.UpdateJournalLines(c.Request.Context(), c.Param("entryID"), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// entryTransition runs a lifecycle action that takes only the entry ID and actor.
func (h *journalHandler) entryTransition(c *gin.Context, action string, fn func(c *gin.Context, entryID, actorID string) (*domain.JournalEntry, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("entry_id", c.Param("entryID")),
		slog.String("action", action))

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	entry, err := fn(c, c.Param("entryID"), actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to "+action+" journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft entry
// @Description Moves a DRAFT entry to POSTED and refreshes account balances. Posting into a closed fiscal period is rejected.
// @Tags journal-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Fiscal period closed"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	h.entryTransition(c, "post", func(c *gin.Context, entryID, actorID string) (*domain.JournalEntry, error) {
		return h.journalService.PostJournalEntry(c.Request.Context(), entryID, actorID)
	})
}

// cancelEntry godoc
// @Summary Cancel a draft entry
// @Tags journal-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Failure 500 {object} map[string]string "Failed to cancel journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/cancel [post]
func (h *journalHandler) cancelEntry(c *gin.Context) {
	h.entryTransition(c, "cancel", func(c *gin.Context, entryID, actorID string) (*domain.JournalEntry, error) {
		return h.journalService.CancelJournalEntry(c.Request.Context(), entryID, actorID)
	})
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Creates and posts a mirror entry numbered REV-<original>. An entry can be reversed once.
// @Tags journal-entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry not posted or already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	h.entryTransition(c, "reverse", func(c *gin.Context, entryID, actorID string) (*domain.JournalEntry, error) {
		return h.journalService.ReverseJournalEntry(c.Request.Context(), entryID, actorID)
	})
}

// deleteEntry godoc
// @Summary Delete a draft entry
// @Tags journal-entries
// @Param   entryID path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft"
// @Failure 500 {object} map[string]string "Failed to delete journal entry"
// @Security BearerAuth
// @Router /journal-entries/{entryID} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_id", c.Param("entryID")))

	actorID, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	if err := h.journalService.DeleteJournalEntry(c.Request.Context(), c.Param("entryID"), actorID); err != nil {
		respondError(c, logger, err, "Failed to delete journal entry")
		return
	}

	c.Status(http.StatusNoContent)
}
