package handler

import (
	"net/http"

	"fuelpos/internal/apierror"
	"fuelpos/internal/dto"
	"fuelpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShiftsHandler struct{ svc service.ShiftService }

func NewShiftsHandler(svc service.ShiftService) *ShiftsHandler { return &ShiftsHandler{svc: svc} }

// Current godoc
// @Summary Shift session status
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ShiftStatusResponse
// @Router /v1/shifts/current [get]
func (h *ShiftsHandler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Status(c.Request.Context()))
}

// Start godoc
// @Summary Start a shift
// @Description AM before 12:00 local time, PM from 12:00.
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.ShiftResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/shifts/start [post]
func (h *ShiftsHandler) Start(c *gin.Context) {
	resp, err := h.svc.Start(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// End godoc
// @Summary End the open shift
// @Description Returns the per-pump totals of the closed shift. The shift report is produced asynchronously.
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ShiftSummaryResponse
// @Failure 403 {object} apierror.APIError
// @Failure 412 {object} apierror.APIError
// @Router /v1/shifts/end [post]
func (h *ShiftsHandler) End(c *gin.Context) {
	resp, err := h.svc.End(c.Request.Context(), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary Shift history, newest first
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.ShiftListResponse
// @Router /v1/shifts [get]
func (h *ShiftsHandler) List(c *gin.Context) {
	page, limit := pagination(c, 20, 100)
	resp, err := h.svc.List(c.Request.Context(), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary Per-pump totals of one shift
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Shift ID"
// @Success 200 {object} dto.ShiftSummaryResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/shifts/{id}/summary [get]
func (h *ShiftsHandler) Summary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid shift id"))
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Stale godoc
// @Summary Shift rows that are still open
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StaleShiftsResponse
// @Router /v1/shifts/stale [get]
func (h *ShiftsHandler) Stale(c *gin.Context) {
	resp, err := h.svc.ListStale(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CloseStale godoc
// @Summary Force-close every open shift row
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CloseStaleResponse
// @Router /v1/shifts/stale/close [post]
func (h *ShiftsHandler) CloseStale(c *gin.Context) {
	n, err := h.svc.CloseStale(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CloseStaleResponse{Closed: n})
}
