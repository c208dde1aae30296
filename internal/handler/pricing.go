package handler

import (
	"net/http"

	"fuelpos/internal/dto"
	"fuelpos/internal/service"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct{ svc service.PricingService }

func NewPricingHandler(svc service.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// Pumps godoc
// @Summary List pumps with their fuel type
// @Tags pricing
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PumpResponse
// @Router /v1/pumps [get]
func (h *PricingHandler) Pumps(c *gin.Context) {
	resp, err := h.svc.ListPumps(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Quote godoc
// @Summary Price a volume on a pump without recording it
// @Tags pricing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.QuoteRequest true "Pump and volume"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} apierror.APIError
// @Failure 412 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/pricing/quote [post]
func (h *PricingHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Quote(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Current godoc
// @Summary Current price of every bucket
// @Tags prices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CurrentPricesResponse
// @Router /v1/prices [get]
func (h *PricingHandler) Current(c *gin.Context) {
	resp, err := h.svc.CurrentPrices(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary Price history, newest first
// @Tags prices
// @Produce json
// @Security BearerAuth
// @Param name query string false "Bucket name, e.g. Diesel100"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} dto.PriceHistoryResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/prices/history [get]
func (h *PricingHandler) History(c *gin.Context) {
	page, limit := pagination(c, 50, 200)
	resp, err := h.svc.History(c.Request.Context(), c.Query("name"), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Set godoc
// @Summary Append new prices
// @Description Every given bucket gets a new row with the same effective date. Older rows are kept.
// @Tags prices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SetPricesRequest true "Prices by bucket"
// @Success 201 {object} dto.CurrentPricesResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/prices [post]
func (h *PricingHandler) Set(c *gin.Context) {
	var req dto.SetPricesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	by := actorFrom(c).ID
	resp, err := h.svc.SetPrices(c.Request.Context(), &by, req.Prices)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
