package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	ideaapp "github.com/ideagen/backend/internal/application/idea"
	"github.com/ideagen/backend/internal/domain/shared"
)

// IdeaHandler handles the website idea endpoints
type IdeaHandler struct {
	BaseHandler
	ideaService *ideaapp.Service
}

// NewIdeaHandler creates a new IdeaHandler
func NewIdeaHandler(ideaService *ideaapp.Service) *IdeaHandler {
	return &IdeaHandler{
		ideaService: ideaService,
	}
}

// Generate godoc
// @ID           generateSections
// @Summary      Generate website sections
// @Description  Generates hero, about and contact sections from an idea and stores the result
// @Tags         sections
// @Accept       json
// @Produce      json
// @Param        request body ideaapp.CreateIdeaRequest true "Website idea"
// @Success      201 {object} APIResponse[IdeaResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /sections/generate [post]
func (h *IdeaHandler) Generate(c *gin.Context) {
	var req ideaapp.CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}
	if err := req.Normalize(); err != nil {
		h.HandleError(c, err, "Invalid website idea")
		return
	}

	resp, err := h.ideaService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err, "Failed to generate sections")
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @ID           getSections
// @Summary      Get a website idea
// @Description  Returns a stored idea with its generated sections
// @Tags         sections
// @Produce      json
// @Param        id path string true "Website idea ID" format(uuid)
// @Success      200 {object} APIResponse[IdeaResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /sections/{id} [get]
func (h *IdeaHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// no record can have a malformed id
		h.NotFound(c, ideaapp.ErrIdeaNotFound.Message)
		return
	}

	resp, err := h.ideaService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, ideaapp.ErrIdeaNotFound.Message)
			return
		}
		h.HandleError(c, err, "Failed to fetch sections")
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listSections
// @Summary      List website ideas
// @Description  Returns every stored idea in creation order
// @Tags         sections
// @Produce      json
// @Success      200 {object} APIResponse[[]IdeaResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /sections [get]
func (h *IdeaHandler) List(c *gin.Context) {
	resp, err := h.ideaService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err, "Failed to fetch all sections")
		return
	}

	h.Success(c, resp)
}
