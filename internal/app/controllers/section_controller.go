package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/enlistment/internal/app/models"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/app/services"
	"github.com/yigit/enlistment/internal/middleware"
	"github.com/yigit/enlistment/internal/pkg/helpers"
)

// SectionController handles section endpoints
type SectionController struct {
	sectionService *services.SectionService
}

// NewSectionController creates a new SectionController
func NewSectionController(sectionService *services.SectionService) *SectionController {
	return &SectionController{sectionService: sectionService}
}

func (c *SectionController) respondList(ctx *gin.Context, list func(context.Context) ([]models.Section, error)) {
	sections, err := list(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sections)
}

// GetSections lists every section with its subject and teacher
// @Summary List sections
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Section
// @Router /sections [get]
func (c *SectionController) GetSections(ctx *gin.Context) {
	c.respondList(ctx, c.sectionService.List)
}

// GetArchivedSections lists archived sections
// @Summary List archived sections
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Section
// @Router /sections/archived [get]
func (c *SectionController) GetArchivedSections(ctx *gin.Context) {
	c.respondList(ctx, c.sectionService.ListArchived)
}

// GetActiveSections lists sections open for enlistment
// @Summary List active sections
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Section
// @Router /sections/active [get]
func (c *SectionController) GetActiveSections(ctx *gin.Context) {
	c.respondList(ctx, c.sectionService.ListActive)
}

// GetSection returns one section
// @Summary Get section by ID
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Success 200 {object} models.Section
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{id} [get]
func (c *SectionController) GetSection(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	section, err := c.sectionService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, section)
}

// CreateSection adds a section
// @Summary Create a section
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SectionRequest true "Section information"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Subject or teacher does not exist"
// @Router /sections [post]
func (c *SectionController) CreateSection(ctx *gin.Context) {
	var req dto.SectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.sectionService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.CreatedResponse{Message: "Section created successfully", ID: id})
}

// UpdateSection replaces a section
// @Summary Update a section
// @Tags sections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Param request body dto.SectionRequest true "Section information"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{id} [put]
func (c *SectionController) UpdateSection(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.sectionService.Update(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Section updated successfully"})
}

// ArchiveSection archives a section
// @Summary Archive a section
// @Description Archiving is permanent and blocks new enrollments
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{id}/archive [put]
func (c *SectionController) ArchiveSection(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sectionService.Archive(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Section archived successfully"})
}

// DeleteSection removes a section
// @Summary Delete a section
// @Tags sections
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 409 {object} dto.ErrorResponse "Section still has enrollments"
// @Router /sections/{id} [delete]
func (c *SectionController) DeleteSection(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sectionService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Section deleted successfully"})
}
