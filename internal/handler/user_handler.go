package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kashafa/tadreeb-backend/internal/middleware"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/kashafa/tadreeb-backend/internal/response"
	"github.com/kashafa/tadreeb-backend/internal/service"
	"github.com/kashafa/tadreeb-backend/internal/validator"
)

// UserHandler serves the authoritative user record and progress writes.
type UserHandler struct {
	userService     *service.UserService
	progressService *service.ProgressService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, progressService *service.ProgressService) *UserHandler {
	return &UserHandler{
		userService:     userService,
		progressService: progressService,
	}
}

// requireOwnRecord checks the JWT subject against the :id path param. Users
// may only read and write their own record.
func requireOwnRecord(c *gin.Context) (string, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return "", false
	}

	id := c.Param("id")
	if id == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", false
	}
	if claims.UserID != id {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return "", false
	}
	return id, true
}

// GetUser godoc
// GET /api/users/:id
// Returns the authoritative user record with the recomputed stage.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := requireOwnRecord(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateProgress godoc
// PATCH /api/users/:id/progress
// Merges the patch into the stored progress. The stage in the response is
// recomputed server-side; any stage value a client sends is ignored.
func (h *UserHandler) UpdateProgress(c *gin.Context) {
	id, ok := requireOwnRecord(c)
	if !ok {
		return
	}

	var req model.UpdateProgressRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.progressService.ApplyPatch(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrProgressSyncFailed)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
