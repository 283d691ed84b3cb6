package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kashafa/tadreeb-backend/internal/catalog"
	"github.com/kashafa/tadreeb-backend/internal/middleware"
	"github.com/kashafa/tadreeb-backend/internal/model"
	"github.com/kashafa/tadreeb-backend/internal/response"
	"github.com/kashafa/tadreeb-backend/internal/service"
	"github.com/kashafa/tadreeb-backend/internal/validator"
)

// ExamHandler exposes the exam attempt state machine over HTTP.
type ExamHandler struct {
	sessions *service.ExamSessionService
	catalog  *catalog.Catalog
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(sessions *service.ExamSessionService, cat *catalog.Catalog) *ExamHandler {
	return &ExamHandler{sessions: sessions, catalog: cat}
}

// sessionView wraps a session with its derived status and, while the
// attempt runs, the server-side deadline clients count down against.
// ProgressSyncPending marks a pass whose progress write is still queued;
// clients show it as a partial-success warning.
type sessionView struct {
	*model.ExamSession
	Status              model.SessionStatus `json:"status"`
	Deadline            *time.Time          `json:"deadline,omitempty"`
	ProgressSyncPending bool                `json:"progressSyncPending,omitempty"`
}

func (h *ExamHandler) view(session *model.ExamSession) sessionView {
	v := sessionView{ExamSession: session, Status: session.Status()}
	if v.Status == model.SessionStatusInProgress {
		if def, ok := h.catalog.Exam(session.CourseID); ok {
			deadline := session.StartedAt.Add(time.Duration(def.DurationMinutes) * time.Minute)
			v.Deadline = &deadline
		}
	}
	return v
}

func (h *ExamHandler) courseParams(c *gin.Context) (string, int, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return "", 0, false
	}
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", 0, false
	}
	return claims.UserID, courseID, true
}

func (h *ExamHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrExamNotAvailable)
	case errors.Is(err, service.ErrCourseLocked):
		response.Fail(c, http.StatusForbidden, response.ErrCourseLocked)
	case errors.Is(err, service.ErrWindowNotOpen):
		response.Fail(c, http.StatusConflict, response.ErrExamBeforeOpen)
	case errors.Is(err, service.ErrWindowClosed):
		response.Fail(c, http.StatusConflict, response.ErrExamWindowClosed)
	case errors.Is(err, service.ErrExamNotStarted):
		response.Fail(c, http.StatusConflict, response.ErrExamNotStarted)
	case errors.Is(err, service.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// StartExam godoc
// POST /api/courses/:id/exam/start
func (h *ExamHandler) StartExam(c *gin.Context) {
	userID, courseID, ok := h.courseParams(c)
	if !ok {
		return
	}

	session, err := h.sessions.Start(c.Request.Context(), userID, courseID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": h.view(session)})
}

// AnswerQuestion godoc
// POST /api/courses/:id/exam/answers
func (h *ExamHandler) AnswerQuestion(c *gin.Context) {
	userID, courseID, ok := h.courseParams(c)
	if !ok {
		return
	}

	var req model.AnswerExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.sessions.Answer(c.Request.Context(), userID, courseID, req.QuestionIndex, req.OptionIndex)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) || errors.Is(err, service.ErrExamNotStarted) {
			h.fail(c, err)
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": h.view(session)})
}

// ChangePage godoc
// POST /api/courses/:id/exam/page
func (h *ExamHandler) ChangePage(c *gin.Context) {
	userID, courseID, ok := h.courseParams(c)
	if !ok {
		return
	}

	var req model.ChangePageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, err := h.sessions.ChangePage(c.Request.Context(), userID, courseID, req.Direction)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": h.view(session)})
}

// SubmitExam godoc
// POST /api/courses/:id/exam/submit
// Idempotent: a resubmission returns the already-recorded result.
func (h *ExamHandler) SubmitExam(c *gin.Context) {
	userID, courseID, ok := h.courseParams(c)
	if !ok {
		return
	}

	session, syncPending, err := h.sessions.Submit(c.Request.Context(), userID, courseID)
	if err != nil {
		h.fail(c, err)
		return
	}
	view := h.view(session)
	view.ProgressSyncPending = syncPending
	response.Success(c, http.StatusOK, gin.H{"session": view})
}

// GetExamState godoc
// GET /api/courses/:id/exam/state
// Restores a reloaded attempt: startedAt, answers, page, result, cooldown.
func (h *ExamHandler) GetExamState(c *gin.Context) {
	userID, courseID, ok := h.courseParams(c)
	if !ok {
		return
	}

	session, err := h.sessions.State(c.Request.Context(), userID, courseID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": h.view(session)})
}
