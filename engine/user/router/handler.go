package router

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/slowerai/backend/engine/core"
	"github.com/slowerai/backend/engine/user"
	"github.com/slowerai/backend/engine/user/uc"
	"github.com/slowerai/backend/pkg/logger"
)

const (
	msgUserNotFound   = "User not found"
	msgUsernameExists = "Username already exists"
	msgEmailExists    = "Email already exists"
	msgInvalidBody    = "Request body must be a valid JSON object"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Handler handles user-related HTTP requests
type Handler struct {
	factory *uc.Factory
}

// NewHandler creates a new user handler
func NewHandler(factory *uc.Factory) *Handler {
	return &Handler{
		factory: factory,
	}
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}

// parseUserID reads the :id path parameter. Anything that is not an integer
// cannot name a row, so it is answered like a missing user.
func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusNotFound, msgUserNotFound)
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// buildListParams reads the listing query. Malformed numbers are left at zero
// and replaced by defaults during normalization.
func buildListParams(c *gin.Context) user.ListParams {
	params := user.ListParams{
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page"),
		Search:  c.Query("search"),
		Role:    c.Query("role"),
	}
	if raw, ok := c.GetQuery("is_active"); ok {
		active := user.ParseActiveFlag(raw)
		params.IsActive = &active
	}
	return params
}

// handleMutationError maps domain errors from create and update to responses.
func handleMutationError(ctx context.Context, c *gin.Context, action string, err error) {
	log := logger.FromContext(ctx)
	var coreErr *core.Error
	switch {
	case errors.As(err, &coreErr) && coreErr.Code == user.ErrCodeValidation:
		respondError(c, http.StatusBadRequest, coreErr.Message)
	case errors.Is(err, user.ErrUserNotFound):
		respondError(c, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, user.ErrUsernameExists):
		respondError(c, http.StatusBadRequest, msgUsernameExists)
	case errors.Is(err, user.ErrEmailExists):
		respondError(c, http.StatusBadRequest, msgEmailExists)
	default:
		log.Error("Failed to "+action+" user", "error", err)
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}

// ListUsers godoc
// @Summary List users
// @Description Filtered, paginated listing ordered by id
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Param search query string false "Case-insensitive substring of username, email or full name"
// @Param role query string false "Exact role"
// @Param is_active query string false "true for active users, any other value for inactive"
// @Success 200 {object} user.Page
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	page, err := h.factory.ListUsers(buildListParams(c)).Execute(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to list users", "error", err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} user.User
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	u, err := h.factory.GetUser(id).Execute(ctx)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, msgUserNotFound)
			return
		}
		logger.FromContext(ctx).Error("Failed to get user", "error", err, "user_id", id)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// CreateUser godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body uc.CreateUserInput true "User details"
// @Success 201 {object} user.User
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()
	var input uc.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	u, err := h.factory.CreateUser(&input).Execute(ctx)
	if err != nil {
		handleMutationError(ctx, c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// UpdateUser godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body uc.UpdateUserInput true "Fields to change"
// @Success 200 {object} user.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	var input uc.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	u, err := h.factory.UpdateUser(id, &input).Execute(ctx)
	if err != nil {
		handleMutationError(ctx, c, "update", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if err := h.factory.DeleteUser(id).Execute(ctx); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, msgUserNotFound)
			return
		}
		logger.FromContext(ctx).Error("Failed to delete user", "error", err, "user_id", id)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

// GetStats godoc
// @Summary User statistics
// @Tags users
// @Produce json
// @Success 200 {object} user.Stats
// @Failure 500 {object} ErrorResponse
// @Router /stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := h.factory.GetStats().Execute(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("Failed to compute user stats", "error", err)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}
