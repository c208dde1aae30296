package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"fuelpos/internal/apierror"
	"fuelpos/internal/middleware"
	"fuelpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// bindQuery is bindAndValidate for query-string parameters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var ves validator.ValidationErrors
		if errors.As(err, &ves) {
			for _, fe := range ves {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// pagination reads page/limit query params, falling back to defaults.
func pagination(c *gin.Context, defLimit, maxLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defLimit
	}
	return page, limit
}

// actorFrom builds the service actor from the JWT claims set by middleware.JWTAuth.
func actorFrom(c *gin.Context) service.Actor {
	claims := middleware.GetClaims(c)
	return service.Actor{ID: claims.UserUUID(), Username: claims.Username, Role: claims.Role}
}

// errorStatus maps service errors onto HTTP status codes.
var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrNotShiftOwner, http.StatusForbidden},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrShiftNotFound, http.StatusNotFound},
	{service.ErrUnknownPump, http.StatusNotFound},
	{service.ErrShiftAlreadyOpen, http.StatusConflict},
	{service.ErrShiftOpen, http.StatusConflict},
	{service.ErrUserExists, http.StatusConflict},
	{service.ErrNoOpenShift, http.StatusPreconditionFailed},
	{service.ErrPriceNotSet, http.StatusPreconditionFailed},
	{service.ErrInvalidVolume, http.StatusUnprocessableEntity},
	{service.ErrInvalidPrice, http.StatusUnprocessableEntity},
	{service.ErrUnknownBucket, http.StatusUnprocessableEntity},
	{service.ErrNoEntries, http.StatusUnprocessableEntity},
	{service.ErrInvalidFilter, http.StatusBadRequest},
	{service.ErrNotConfirmed, http.StatusBadRequest},
}

// writeError responds with the status mapped from err. Unknown errors are
// attached to the context for middleware.ErrorHandler, which logs them and
// answers 500 without leaking internals.
func writeError(c *gin.Context, err error) {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			c.JSON(m.status, apierror.New(err.Error()))
			return
		}
	}
	_ = c.Error(err)
}
