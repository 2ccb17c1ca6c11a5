package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ideagen/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ideaInput struct {
	Idea string `json:"idea" binding:"required,min=5,max=200"`
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(ideaInput{})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "idea", verrs[0].Field())
}

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req ideaInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(req.Idea))
	})

	post := func(body string) (*httptest.ResponseRecorder, dto.Response) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(RequestIDHeader, "req-validation")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return w, resp
	}

	t.Run("missing idea", func(t *testing.T) {
		w, resp := post(`{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		assert.Equal(t, "req-validation", resp.Error.RequestID)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "idea", resp.Error.Details[0].Field)
		assert.Equal(t, "required", resp.Error.Details[0].Tag)
		assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
	})

	t.Run("idea too short", func(t *testing.T) {
		w, resp := post(`{"idea":"abc"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "min", resp.Error.Details[0].Tag)
		assert.Equal(t, "Must be at least 5 characters", resp.Error.Details[0].Message)
	})

	t.Run("idea too long", func(t *testing.T) {
		w, resp := post(`{"idea":"` + strings.Repeat("x", 201) + `"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "Must be at most 200 characters", resp.Error.Details[0].Message)
	})

	t.Run("valid idea", func(t *testing.T) {
		w, resp := post(`{"idea":"bakery landing page"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		assert.Equal(t, "bakery landing page", resp.Data)
	})

	t.Run("non-validator error has no details", func(t *testing.T) {
		resp := FormatValidationErrors(errors.New("boom"), "req-1")

		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type sample struct {
		Required string `binding:"required"`
		MinStr   string `binding:"min=5"`
		MaxStr   string `binding:"max=3"`
		MinInt   int    `binding:"min=10"`
		MaxInt   int    `binding:"max=2"`
		ID       string `binding:"uuid"`
		Kind     string `binding:"oneof=hero about contact"`
		Email    string `binding:"email"`
	}

	v := validator.New()
	v.SetTagName("binding")

	err := v.Struct(sample{
		MinStr: "ab",
		MaxStr: "abcdef",
		MinInt: 1,
		MaxInt: 9,
		ID:     "not-a-uuid",
		Kind:   "footer",
		Email:  "nope",
	})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	got := make(map[string]string, len(verrs))
	for _, e := range verrs {
		got[e.Field()] = getValidationMessage(e)
	}

	assert.Equal(t, map[string]string{
		"Required": "This field is required",
		"MinStr":   "Must be at least 5 characters",
		"MaxStr":   "Must be at most 3 characters",
		"MinInt":   "Must be at least 10",
		"MaxInt":   "Must be at most 2",
		"ID":       "Invalid UUID format",
		"Kind":     "Must be one of: hero about contact",
		"Email":    "Invalid value",
	}, got)
}
