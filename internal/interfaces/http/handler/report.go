package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/pos/backend/internal/application/report"
)

// ReportHandler handles dashboard and period report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetDashboard returns today's headline figures
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.reportService.GetDashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// GetSalesReport returns per-day sales totals for a date range.
// Defaults to the last 30 days when no range is given.
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	from, to, ok := h.reportRange(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetSalesReport(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// GetPurchasesReport returns per-day purchase totals for a date range.
// Defaults to the last 30 days when no range is given.
func (h *ReportHandler) GetPurchasesReport(c *gin.Context) {
	from, to, ok := h.reportRange(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetPurchasesReport(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// reportRange parses the from/to query pair shared by the period reports
func (h *ReportHandler) reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}

	now := time.Now()
	if to == nil {
		to = &now
	}
	if from == nil {
		start := to.AddDate(0, 0, -30)
		from = &start
	}
	if from.After(*to) {
		h.BadRequest(c, "From date must not be after to date")
		return time.Time{}, time.Time{}, false
	}
	return *from, *to, true
}
