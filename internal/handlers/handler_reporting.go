package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/dto"
	"github.com/KANAL1234/business-erp-system-sub002/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles the trial balance and balance maintenance.
type reportingHandler struct {
	balanceService portssvc.BalanceSvc
}

func newReportingHandler(bs portssvc.BalanceSvc) *reportingHandler {
	return &reportingHandler{
		balanceService: bs,
	}
}

// RegisterReportingRoutes registers report and balance routes.
func RegisterReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvc) {
	h := newReportingHandler(balanceService)

	rg.GET("/reports/trial-balance", h.getTrialBalance)
	rg.POST("/balances/recompute", h.recomputeBalances)
}

// getTrialBalance godoc
// @Summary Generate the trial balance
// @Description Sums posted lines per account. Balanced is false if posted debits and credits ever diverge.
// @Tags reports
// @Produce json
// @Success 200 {object} domain.TrialBalance
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tb, err := h.balanceService.TrialBalance(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to generate report")
		return
	}
	if !tb.Balanced {
		logger.Error("Trial balance does not balance",
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()))
	}

	c.JSON(http.StatusOK, tb)
}

// recomputeBalances godoc
// @Summary Recompute stored account balances
// @Description Rewrites every account balance from posted lines.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.RecomputeBalancesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to recompute balances"
// @Security BearerAuth
// @Router /balances/recompute [post]
func (h *reportingHandler) recomputeBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	n, err := h.balanceService.Recompute(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to recompute balances")
		return
	}

	logger.Info("Account balances recomputed", slog.Int("accounts", n))
	c.JSON(http.StatusOK, dto.RecomputeBalancesResponse{AccountsUpdated: n})
}
