// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/enlistment/internal/app/auth"
	"github.com/yigit/enlistment/internal/app/models/dto"
	"github.com/yigit/enlistment/internal/app/services"
	"github.com/yigit/enlistment/internal/middleware"
	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"github.com/yigit/enlistment/internal/pkg/helpers"
)

// UserController handles accounts, sessions and passwords
type UserController struct {
	userService *services.UserService
	authz       *appauth.AuthorizationService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, authz *appauth.AuthorizationService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		authz:       authz,
		logger:      logger,
	}
}

// Login handles user login
// @Summary Log in
// @Description Verifies a username and password and returns a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid username or password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.userService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Logout revokes the token used for the request
// @Summary Log out
// @Description Revokes the bearer token that authenticated this request
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/logout [post]
func (c *UserController) Logout(ctx *gin.Context) {
	tokenID, expiresAt, ok := middleware.CurrentToken(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	if err := c.userService.Logout(ctx.Request.Context(), tokenID, expiresAt); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out successfully"})
}

// CreateUser handles user registration
// @Summary Create a user
// @Description Registers a new user. This endpoint is public; assigning role_id requires a token with users:write.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.CreatedResponse "User created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Role assignment not allowed"
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if req.RoleID != nil && c.authz.Enforced() {
		actorID, ok := middleware.CurrentUserID(ctx)
		if !ok {
			middleware.HandleAPIError(ctx, appauth.ErrPermissionDenied)
			return
		}
		if err := c.authz.Authorize(ctx.Request.Context(), actorID, appauth.CapUsersWrite); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	id, err := c.userService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreatedResponse{Message: "User created successfully", ID: id})
}

// GetUsers lists users
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	users, err := c.userService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUser returns one user
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// UpdateUser replaces a user's profile
// @Summary Update a user
// @Description Replaces every profile field. Password is optional and kept when omitted. Users may update themselves; changing anyone else, or one's own role, requires users:write.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "User information"
// @Success 200 {object} dto.SuccessResponse "User updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actorID, _ := middleware.CurrentUserID(ctx)
	if err := c.authorizeProfileChange(ctx, actorID, id, req.RoleID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.userService.Update(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "User updated successfully"})
}

// authorizeProfileChange lets users edit themselves but not their own role
func (c *UserController) authorizeProfileChange(ctx *gin.Context, actorID, targetID int64, roleID *int64) error {
	if err := c.authz.AuthorizeUserChange(ctx.Request.Context(), actorID, targetID); err != nil {
		return err
	}
	if actorID != targetID {
		return nil
	}

	canManage, err := c.authz.HasCapability(ctx.Request.Context(), actorID, appauth.CapUsersWrite)
	if err != nil || canManage {
		return err
	}

	current, err := c.userService.GetByID(ctx.Request.Context(), targetID)
	if err != nil {
		return err
	}
	if !sameRole(current.RoleID, roleID) {
		c.logger.Warn().Int64("userID", actorID).Msg("Rejected self-service role change")
		return appauth.ErrPermissionDenied
	}
	return nil
}

func sameRole(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ChangePassword changes a user's password
// @Summary Change password
// @Description Verifies the current password and stores the new one
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.SuccessResponse "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid current password"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/change-password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ChangePasswordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actorID, _ := middleware.CurrentUserID(ctx)
	if err := c.authz.AuthorizeUserChange(ctx.Request.Context(), actorID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.userService.ChangePassword(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Password changed successfully"})
}

// DeleteUser removes a user
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.SuccessResponse "User deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "User is still referenced"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "User deleted successfully"})
}
