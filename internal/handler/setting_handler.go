package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kashafa/tadreeb-backend/internal/response"
	"github.com/kashafa/tadreeb-backend/internal/service"
	"github.com/kashafa/tadreeb-backend/internal/validator"
)

// SettingHandler exposes raw key/value settings to the admin panel.
type SettingHandler struct {
	settings *service.SettingService
}

// NewSettingHandler creates a new SettingHandler.
func NewSettingHandler(settings *service.SettingService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

// GetSettings godoc
// GET /api/admin/settings
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetAllSettings(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings godoc
// PUT /api/admin/settings
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req map[string]string
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if len(req) == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	if err := h.settings.UpdateSettings(c.Request.Context(), req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
