package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/kashafa/tadreeb-backend/internal/response"
	"github.com/kashafa/tadreeb-backend/internal/service"
	"github.com/kashafa/tadreeb-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// BarcodeLogin godoc
// POST /api/auth/barcode-login
// Resolves a scanned barcode serial to a user and returns a JWT. An unknown
// serial is a 404, never an account creation.
func (h *AuthHandler) BarcodeLogin(c *gin.Context) {
	var req model.BarcodeLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.GetBySerial(c.Request.Context(), req.BarcodeNumber)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrSerialNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	token, err := h.authService.GenerateUserToken(user.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
