package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/bazaarhq/storefront_backoffice/internal/middleware"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/export"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers journal routes. Entries are immutable, so
// there is no update or delete.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.postJournalEntry)
		journals.GET("", h.listJournalEntries)
		journals.GET("/export", h.exportJournalEntries)
		journals.POST("/sales", h.postSale)
		journals.GET("/:entryID", h.getJournalEntry)
	}
}

// postJournalEntry godoc
// @Summary Post a journal entry
// @Description Records a balanced manual journal entry. Debits and credits must agree within 0.001.
// @Tags journals
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.UnbalancedEntryResponse "Entry does not balance or references an unknown account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) postJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.journalService.PostJournalEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID), slog.Int("line_count", len(entry.Lines)))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postSale godoc
// @Summary Post a sale
// @Description Records a POS sale or online order using the default accounts from settings.
// @Tags journals
// @Accept json
// @Produce json
// @Param sale body dto.PostSaleRequest true "Sale"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or default accounts not configured"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /journals/sales [post]
func (h *journalHandler) postSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.PostSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	entry, err := h.journalService.PostSale(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to post sale")
		return
	}

	logger.Info("Sale posted", slog.String("entry_id", entry.EntryID), slog.String("ref", entry.Ref))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Tags journals
// @Produce json
// @Param entryID path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Journal entry not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /journals/{entryID} [get]
func (h *journalHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetJournalEntry(c.Request.Context(), entryID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists entries most recent first. Without a limit every entry in range is returned.
// @Tags journals
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD)"
// @Param limit query int false "Page size (1-500)"
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListJournalEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// exportJournalEntries godoc
// @Summary Export journal entries
// @Description Downloads every journal line in range as an .xlsx workbook.
// @Tags journals
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /journals/export [get]
func (h *journalHandler) exportJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, accounts, err := h.journalService.ExportJournalEntries(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to export journal entries")
		return
	}

	wb, err := export.JournalWorkbook(entries, accounts)
	if err != nil {
		respondWithError(c, logger, err, "Failed to export journal entries")
		return
	}
	writeWorkbook(c, logger, "journal.xlsx", wb)
}

// writeWorkbook sets download headers and streams the workbook.
func writeWorkbook(c *gin.Context, logger *slog.Logger, filename string, wb *excelize.File) {
	c.Header("Content-Type", export.ContentTypeXLSX)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := export.Write(c.Writer, wb); err != nil {
		// Headers are already out; all we can do is log.
		logger.Error("Failed to write workbook", slog.String("filename", filename), slog.String("error", err.Error()))
	}
}
