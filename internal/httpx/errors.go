package httpx

import (
	"errors"
	"net/http"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx answer.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Details any    `json:"details,omitempty"`
}

// StatusFor maps an error kind onto its HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindItemsUnavailable, apperr.KindConflict, apperr.KindInvalidTransition:
		return http.StatusConflict
	case apperr.KindRateNotFound:
		return http.StatusUnprocessableEntity
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindHandoff:
		return http.StatusBadGateway
	case apperr.KindPersistence:
		return http.StatusServiceUnavailable
	case apperr.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

var publicMessage = map[apperr.Kind]string{
	apperr.KindValidation:        "invalid request data",
	apperr.KindItemsUnavailable:  "some products are not available",
	apperr.KindRateNotFound:      "no shipping rate for the destination",
	apperr.KindConflict:          "conflicting size values",
	apperr.KindNotFound:          "resource not found",
	apperr.KindInvalidTransition: "status change not allowed",
	apperr.KindHandoff:           "handoff link could not be generated",
	apperr.KindPersistence:       "storage temporarily unavailable, retry",
	apperr.KindTimeout:           "request timed out",
	apperr.KindInternal:          "internal error",
}

// RenderError writes err as an ErrorResponse and logs it at a level that
// follows the status: 5xx are errors, the rest warnings.
func RenderError(c *gin.Context, log logger.Logger, op string, err error) {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)

	body := ErrorResponse{Error: publicMessage[kind], Kind: string(kind)}

	var (
		ve *apperr.ValidationError
		ue *apperr.UnavailableError
		de *apperr.DuplicateSizeError
	)
	switch {
	case errors.As(err, &ve):
		body.Details = ve.Fields
	case errors.As(err, &ue):
		body.Details = gin.H{"productIds": ue.ProductIDs}
	case errors.As(err, &de):
		body.Details = gin.H{"value": de.Value}
	case kind == apperr.KindNotFound || kind == apperr.KindInvalidTransition || kind == apperr.KindRateNotFound:
		body.Error = err.Error()
	}

	l := log.Ctx(c.Request.Context())
	fields := []any{"op", op, "kind", kind, "status", status, "error", err, "path", c.Request.URL.Path}
	if status >= http.StatusInternalServerError {
		l.Errorw(op+" failed", fields...)
	} else {
		l.Warnw(op+" rejected", fields...)
	}

	c.AbortWithStatusJSON(status, body)
}

// BadBody answers 400 for a payload gin could not decode or bind.
func BadBody(c *gin.Context, log logger.Logger, op string, err error) {
	log.Ctx(c.Request.Context()).Warnw(op+" bad body", "error", err, "client_ip", c.ClientIP())
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid request body",
		Kind:    string(apperr.KindValidation),
		Details: err.Error(),
	})
}
