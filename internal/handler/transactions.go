package handler

import (
	"net/http"

	"fuelpos/internal/dto"
	"fuelpos/internal/service"

	"github.com/gin-gonic/gin"
)

type TransactionsHandler struct{ svc service.TransactionService }

func NewTransactionsHandler(svc service.TransactionService) *TransactionsHandler {
	return &TransactionsHandler{svc: svc}
}

// Submit godoc
// @Summary Record pump transactions on the open shift
// @Description All entries are priced and stored together, or none is. confirm must be true.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubmitTransactionsRequest true "Entries"
// @Success 201 {object} dto.SubmitTransactionsResponse
// @Failure 400 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Failure 412 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/transactions [post]
func (h *TransactionsHandler) Submit(c *gin.Context) {
	var req dto.SubmitTransactionsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Transaction history, newest first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param shift_id query string false "Shift ID"
// @Param pump_id query int false "Pump ID"
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} dto.TransactionListResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/transactions [get]
func (h *TransactionsHandler) List(c *gin.Context) {
	var filter dto.TransactionFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
