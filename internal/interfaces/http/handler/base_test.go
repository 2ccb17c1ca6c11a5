package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ideagen/backend/internal/domain/shared"
	"github.com/ideagen/backend/internal/interfaces/http/dto"
	"github.com/ideagen/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(requestID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if requestID != "" {
		c.Set(middleware.RequestIDKey, requestID)
	}
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_SuccessResponses(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext("")
	h.Success(c, map[string]string{"key": "value"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"key":"value"}}`, w.Body.String())

	c, w = newTestContext("")
	h.Created(c, map[string]int{"n": 1})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decodeResponse(t, w).Success)
}

func TestBaseHandler_ErrorResponses(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name   string
		call   func(c *gin.Context)
		status int
		code   string
	}{
		{"not found", func(c *gin.Context) { h.NotFound(c, "missing") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"internal", func(c *gin.Context) { h.InternalError(c, "oops") }, http.StatusInternalServerError, dto.ErrCodeInternal},
		{"explicit status", func(c *gin.Context) { h.Error(c, http.StatusTooManyRequests, dto.ErrCodeRateLimited, "slow down") }, http.StatusTooManyRequests, dto.ErrCodeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("req-123")
			tt.call(c)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, "req-123", resp.Error.RequestID)
		})
	}
}

func TestBaseHandler_HandleError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "not found",
			err:     shared.ErrNotFound,
			status:  http.StatusNotFound,
			code:    dto.ErrCodeNotFound,
			message: "Resource not found",
		},
		{
			name:    "validation error",
			err:     shared.NewValidationError("Website idea is required"),
			status:  http.StatusBadRequest,
			code:    dto.ErrCodeInvalidInput,
			message: "Website idea is required",
		},
		{
			name:    "already exists",
			err:     shared.NewDomainError("ALREADY_EXISTS", "Website idea has already been stored"),
			status:  http.StatusConflict,
			code:    dto.ErrCodeAlreadyExists,
			message: "Website idea has already been stored",
		},
		{
			name:    "wrapped domain error",
			err:     fmt.Errorf("lookup: %w", shared.ErrNotFound),
			status:  http.StatusNotFound,
			code:    dto.ErrCodeNotFound,
			message: "Resource not found",
		},
		{
			name:    "unknown error",
			err:     errors.New("dial tcp: connection refused"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrCodeInternal,
			message: "Failed to fetch sections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext("req-1")
			h.HandleError(c, tt.err, "Failed to fetch sections")

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
		})
	}

	t.Run("internal errors are recorded on the context", func(t *testing.T) {
		c, _ := newTestContext("")
		h.HandleError(c, errors.New("boom"), "Failed")
		require.Len(t, c.Errors, 1)
		assert.Equal(t, "boom", c.Errors[0].Error())
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext("")
		h.HandleError(c, nil, "Failed")
		assert.False(t, c.Writer.Written())
		assert.Empty(t, w.Body.String())
	})
}

func TestBaseHandler_HandleBindError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("oversized body", func(t *testing.T) {
		c, w := newTestContext("")
		h.HandleBindError(c, fmt.Errorf("decode: %w", &http.MaxBytesError{Limit: 10}))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, dto.ErrCodeRequestTooLarge, decodeResponse(t, w).Error.Code)
	})

	t.Run("other decode failure", func(t *testing.T) {
		c, w := newTestContext("")
		h.HandleBindError(c, errors.New("unexpected EOF"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decodeResponse(t, w).Error.Code)
	})
}
