package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/kashafa/tadreeb-backend/internal/response"
	"github.com/kashafa/tadreeb-backend/internal/service"
	"github.com/kashafa/tadreeb-backend/internal/validator"
)

// ScheduleHandler serves the exam window, publicly for countdowns and
// writable for the admin panel.
type ScheduleHandler struct {
	schedule *service.ScheduleService
	settings *service.SettingService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(schedule *service.ScheduleService, settings *service.SettingService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, settings: settings}
}

// GetSchedule godoc
// GET /api/schedule
// Public: login screens show the countdown before authentication.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	mode, remaining := h.schedule.Mode()
	response.Success(c, http.StatusOK, gin.H{
		"window":           h.schedule.Window(),
		"mode":             mode,
		"remainingSeconds": remaining,
	})
}

// UpdateSchedule godoc
// PUT /api/admin/schedule
// Accepts openAt/closeAt in any supported timestamp encoding. The window is
// validated before storage; a rejected write never clobbers the live one.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req model.UpdateScheduleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	raw, err := json.Marshal(req)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	window, ok := model.ParseExamWindow(raw)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSchedule)
		return
	}

	err = h.settings.UpdateSettings(c.Request.Context(), map[string]string{
		model.SettingExamSchedule: string(raw),
	})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"window": window})
}
