package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kashafa/tadreeb-backend/internal/catalog"
	"github.com/kashafa/tadreeb-backend/internal/middleware"
	"github.com/kashafa/tadreeb-backend/internal/response"
	"github.com/kashafa/tadreeb-backend/internal/service"
)

// CourseHandler serves the training track and exam papers.
type CourseHandler struct {
	catalog     *catalog.Catalog
	userService *service.UserService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(cat *catalog.Catalog, userService *service.UserService) *CourseHandler {
	return &CourseHandler{
		catalog:     cat,
		userService: userService,
	}
}

type courseView struct {
	catalog.Course
	Unlocked  bool `json:"unlocked"`
	Completed bool `json:"completed"`
	HasExam   bool `json:"hasExam"`
}

// ListCourses godoc
// GET /api/courses
// Returns the track with per-course unlock and completion flags derived
// from the caller's stage.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	courses := h.catalog.Courses()
	views := make([]courseView, 0, len(courses))
	for _, course := range courses {
		_, hasExam := h.catalog.Exam(course.ID)
		views = append(views, courseView{
			Course:    course,
			Unlocked:  user.CurrentStage.IsCourseUnlocked(course.ID),
			Completed: user.CurrentStage.IsCourseCompleted(course.ID),
			HasExam:   hasExam,
		})
	}

	response.Success(c, http.StatusOK, gin.H{"courses": views})
}

// GetExamPaper godoc
// GET /api/courses/:id/exam
// Returns the exam paper for a course with correct answers stripped.
func (h *CourseHandler) GetExamPaper(c *gin.Context) {
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	paper, ok := h.catalog.PaperFor(courseID)
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrExamNotAvailable)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": paper})
}
