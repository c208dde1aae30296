package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"fuelpos/internal/dto"
	"fuelpos/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportsHandler struct {
	svc service.ReportService
	now func() time.Time
}

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc, now: time.Now}
}

// Dashboard godoc
// @Summary Income and volume for today, this week, month, year and lifetime
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/reports/dashboard [get]
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context(), h.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Series godoc
// @Summary Income and volume per fuel over time
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param granularity query string true "day, week, month or year"
// @Param from query string true "First day, YYYY-MM-DD"
// @Param to query string true "Last day, YYYY-MM-DD"
// @Success 200 {object} dto.SeriesResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/reports/series [get]
func (h *ReportsHandler) Series(c *gin.Context) {
	var req dto.SeriesRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.svc.Series(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary Download the dashboard and transaction log as a spreadsheet
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /v1/reports/export.xlsx [get]
func (h *ReportsHandler) Export(c *gin.Context) {
	now := h.now()
	var buf bytes.Buffer
	if err := h.svc.ExportXLSX(c.Request.Context(), &buf, now); err != nil {
		writeError(c, err)
		return
	}
	name := fmt.Sprintf("fuelpos-report-%s.xlsx", now.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
