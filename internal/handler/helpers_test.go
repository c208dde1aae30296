package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fuelpos/internal/middleware"
	"fuelpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() { gin.SetMode(gin.TestMode) }

func TestWriteError_MapsServiceErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrNotShiftOwner, http.StatusForbidden},
		{fmt.Errorf("%w: 9", service.ErrUnknownPump), http.StatusNotFound},
		{service.ErrShiftAlreadyOpen, http.StatusConflict},
		{service.ErrNoOpenShift, http.StatusPreconditionFailed},
		{fmt.Errorf("%w for Diesel100", service.ErrPriceNotSet), http.StatusPreconditionFailed},
		{fmt.Errorf("entry 1 (pump 2): %w", service.ErrInvalidVolume), http.StatusUnprocessableEntity},
		{service.ErrNotConfirmed, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		r := gin.New()
		r.Use(middleware.ErrorHandler())
		r.GET("/", func(c *gin.Context) { writeError(c, tc.err) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		if tc.status == http.StatusInternalServerError {
			assert.NotContains(t, w.Body.String(), "disk on fire")
		}
	}
}

func TestPagination(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		page, limit := pagination(c, 20, 100)
		c.JSON(http.StatusOK, gin.H{"page": page, "limit": limit})
	})

	for query, want := range map[string]string{
		"":                   `{"page":1,"limit":20}`,
		"?page=3&limit=50":   `{"page":3,"limit":50}`,
		"?page=-1&limit=500": `{"page":1,"limit":20}`,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+query, nil))
		assert.JSONEq(t, want, w.Body.String(), query)
	}
}
