package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	portssvc "github.com/bazaarhq/storefront_backoffice/internal/core/ports/services"
	"github.com/bazaarhq/storefront_backoffice/internal/dto"
	"github.com/bazaarhq/storefront_backoffice/internal/middleware"
	"github.com/bazaarhq/storefront_backoffice/internal/utils/export"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
		reports.GET("/profit-and-loss/export", h.exportProfitAndLoss)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Generates a trial balance report as of a specific date
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	asOf := time.Now().UTC()
	if params.AsOf != "" {
		parsed, err := dto.ParseDate(params.AsOf)
		if err != nil {
			logger.Warn("Invalid asOf date format", slog.String("asOf", params.AsOf), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid date format. Use YYYY-MM-DD"})
			return
		}
		asOf = *dto.EndOfDay(&parsed)
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate trial balance report")
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(report.Rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getProfitAndLoss godoc
// @Summary Generate profit and loss report
// @Description Recomputes revenue, COGS, expenses, gross and net profit over every entry in range. method=keyword is the legacy approximation that classifies lines by description substrings instead of account type.
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD)"
// @Param method query string false "account_type (default) or keyword"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, ok := h.profitAndLoss(c, logger)
	if !ok {
		return
	}

	logger.Info("Profit and loss report generated successfully",
		slog.String("method", string(report.Method)),
		slog.String("net_profit", report.NetProfit.String()))
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

// exportProfitAndLoss godoc
// @Summary Export profit and loss report
// @Description Same report as /reports/profit-and-loss as an .xlsx workbook.
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD)"
// @Param method query string false "account_type (default) or keyword"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/profit-and-loss/export [get]
func (h *reportingHandler) exportProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, ok := h.profitAndLoss(c, logger)
	if !ok {
		return
	}

	wb, err := export.ProfitAndLossWorkbook(*report)
	if err != nil {
		respondWithError(c, logger, err, "Failed to export profit and loss report")
		return
	}
	writeWorkbook(c, logger, "profit-and-loss.xlsx", wb)
}

// profitAndLoss parses the shared query and runs the report, writing the
// error response itself when it fails.
func (h *reportingHandler) profitAndLoss(c *gin.Context, logger *slog.Logger) (*domain.PAndLReport, bool) {
	var params dto.ProfitAndLossParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return nil, false
	}

	from, err := dto.ParseOptionalDate(params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid from date. Use YYYY-MM-DD"})
		return nil, false
	}
	to, err := dto.ParseOptionalDate(params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid to date. Use YYYY-MM-DD"})
		return nil, false
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, dto.EndOfDay(to), domain.PAndLMethod(params.Method))
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate profit and loss report")
		return nil, false
	}
	return report, true
}
