package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/yigit/enlistment/internal/app/auth"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/app/services"
	"github.com/yigit/enlistment/internal/middleware"
	"github.com/yigit/enlistment/internal/pkg/helpers"
)

// EnrollmentController handles enlistment endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	authz             *appauth.AuthorizationService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, authz *appauth.AuthorizationService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService, authz: authz}
}

// authorizeOwners checks the caller may write enrollments of the given students
func (c *EnrollmentController) authorizeOwners(ctx *gin.Context, studentIDs ...int64) error {
	actorID, _ := middleware.CurrentUserID(ctx)
	return c.authz.AuthorizeEnrollmentChange(ctx.Request.Context(), actorID, studentIDs...)
}

// authorizeExisting loads enrollment id and checks the caller may write it and,
// when given, the students it would be reassigned to
func (c *EnrollmentController) authorizeExisting(ctx *gin.Context, id int64, newOwners ...int64) error {
	current, err := c.enrollmentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		return err
	}
	return c.authorizeOwners(ctx, append([]int64{current.StudentID}, newOwners...)...)
}

// GetEnrollments lists enrollments
// @Summary List enrollments
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Enrollment
// @Router /enrollment/enrollments [get]
func (c *EnrollmentController) GetEnrollments(ctx *gin.Context) {
	enrollments, err := c.enrollmentService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, enrollments)
}

// GetEnrollment returns one enrollment
// @Summary Get enrollment by ID
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} models.Enrollment
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollment/enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	enrollment, err := c.enrollmentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, enrollment)
}

// GetStudentEnrollments lists the enrollments of a student
// @Summary List a student's enrollments
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student user ID"
// @Success 200 {array} models.Enrollment
// @Router /enrollment/students/{id}/enrollments [get]
func (c *EnrollmentController) GetStudentEnrollments(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	enrollments, err := c.enrollmentService.ListByStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, enrollments)
}

// GetSectionEnrollments lists the enrollments of a section
// @Summary List a section's enrollments
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Section ID"
// @Success 200 {array} models.Enrollment
// @Router /enrollment/sections/{id}/enrollments [get]
func (c *EnrollmentController) GetSectionEnrollments(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	enrollments, err := c.enrollmentService.ListBySection(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, enrollments)
}

// CreateEnrollment enlists a student in a section
// @Summary Enlist a student
// @Tags enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEnrollmentRequest true "Enrollment information"
// @Success 201 {object} dto.CreatedResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Enrolling another student needs enrollments:manage"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 409 {object} dto.ErrorResponse "Section archived or full, or duplicate enrollment"
// @Router /enrollment/enrollments [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authorizeOwners(ctx, req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id, err := c.enrollmentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.CreatedResponse{Message: "Enrollment created successfully", ID: id})
}

// UpdateEnrollment replaces an enrollment
// @Summary Update an enrollment
// @Tags enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.UpdateEnrollmentRequest true "Enrollment information"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not the caller's enrollment"
// @Failure 404 {object} dto.ErrorResponse "Enrollment or target section not found"
// @Failure 409 {object} dto.ErrorResponse "Target section archived or full, or duplicate enrollment"
// @Router /enrollment/enrollments/{id} [put]
func (c *EnrollmentController) UpdateEnrollment(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateEnrollmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authorizeExisting(ctx, id, req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.enrollmentService.Update(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Enrollment updated successfully"})
}

// DeleteEnrollment removes an enrollment
// @Summary Delete an enrollment
// @Tags enrollment
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not the caller's enrollment"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollment/enrollments/{id} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.authorizeExisting(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.enrollmentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Enrollment deleted successfully"})
}
