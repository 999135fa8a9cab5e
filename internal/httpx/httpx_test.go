package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
}

type httpCall struct {
	method, path string
	status       int
}

type fakeHTTPMetrics struct {
	requests []httpCall
	slow     int
}

func (f *fakeHTTPMetrics) Request(method, path string, status int, _ time.Duration) {
	f.requests = append(f.requests, httpCall{method, path, status})
}

func (f *fakeHTTPMetrics) SlowRequest(string, string, int, time.Duration) { f.slow++ }

func TestRequestID(t *testing.T) {
	log := logger.NewNop()
	r := gin.New()
	r.Use(RequestID(log))
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, log.GetRequestID(c.Request.Context()))
	})

	// se respeta el id entrante
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", w.Body.String())

	// sin header se genera uno
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	rid := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, rid)
	assert.Equal(t, rid, w.Body.String())
}

func TestLogger_RecordsRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := gin.New()
	r.Use(Logger(logger.NewNop(), m))
	r.GET("/orders/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/123", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	require.Len(t, m.requests, 2)
	assert.Equal(t, httpCall{http.MethodGet, "/orders/:id", http.StatusNoContent}, m.requests[0])
	assert.Equal(t, httpCall{http.MethodGet, "unmatched", http.StatusNotFound}, m.requests[1])
	assert.Zero(t, m.slow)
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
		RenderError(c, logger.NewNop(), "slow", fmt.Errorf("query: %w", c.Request.Context().Err()))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestAdminKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	r := gin.New()
	r.Use(AdminKey(string(hash), logger.NewNop()))
	r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name string
		key  string
		want int
	}{
		{"sin clave", "", http.StatusUnauthorized},
		{"clave incorrecta", "nope", http.StatusUnauthorized},
		{"clave correcta", "s3cret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.key != "" {
				req.Header.Set(HeaderAdminKey, tt.key)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAdminKey_EmptyHashLeavesRoutesOpen(t *testing.T) {
	r := gin.New()
	r.Use(AdminKey("", logger.NewNop()))
	r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		kind    apperr.Kind
		details bool
	}{
		{"validación", apperr.NewValidation("dni", "is required"), http.StatusBadRequest, apperr.KindValidation, true},
		{"sin stock", &apperr.UnavailableError{ProductIDs: []string{"p1"}}, http.StatusConflict, apperr.KindItemsUnavailable, true},
		{"sin tarifa", fmt.Errorf("x: %w", apperr.ErrRateNotFound), http.StatusUnprocessableEntity, apperr.KindRateNotFound, false},
		{"talla duplicada", &apperr.DuplicateSizeError{Value: "M"}, http.StatusConflict, apperr.KindConflict, true},
		{"no existe", fmt.Errorf("x: %w", apperr.ErrDataNotFound), http.StatusNotFound, apperr.KindNotFound, false},
		{"transición", fmt.Errorf("x: %w", apperr.ErrInvalidTransition), http.StatusConflict, apperr.KindInvalidTransition, false},
		{"handoff", fmt.Errorf("x: %w", apperr.ErrHandoff), http.StatusBadGateway, apperr.KindHandoff, false},
		{"persistencia", apperr.Persistence("op", errors.New("boom")), http.StatusServiceUnavailable, apperr.KindPersistence, false},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, apperr.KindTimeout, false},
		{"interno", errors.New("boom"), http.StatusInternalServerError, apperr.KindInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/orders", nil)

			RenderError(c, logger.NewNop(), "test", tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, string(tt.kind), body.Kind)
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tt.details, body.Details != nil)
		})
	}
}

func TestRenderError_InternalDetailsStayPrivate(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RenderError(c, logger.NewNop(), "test", errors.New("password authentication failed for user admin"))

	assert.NotContains(t, w.Body.String(), "password")
}
