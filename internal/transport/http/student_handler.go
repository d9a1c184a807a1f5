package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/service"
	"github.com/campuscore/campus-backend/internal/util"
)

type StudentHandler struct {
	students *service.StudentService
}

func RegisterStudent(e *echo.Echo, jwt *util.JWTManager, students *service.StudentService) {
	handler := &StudentHandler{students: students}
	group := e.Group("/api/student", RequireAuth(jwt), RequireRoles(domain.RoleStudent))
	group.GET("/me", handler.me)
	group.GET("/courses", handler.courses)
	group.GET("/assessments", handler.assessments)
	group.GET("/submissions", handler.submissions)
	group.GET("/attendance", handler.attendance)
	group.GET("/attendance/summary", handler.attendanceSummary)
	group.GET("/materials", handler.materials)
	group.GET("/announcements", handler.announcements)
	group.GET("/performance", handler.performance)
	group.POST("/assessments/:id/submit", handler.submitText)
	group.POST("/assessments/:id/upload", handler.submitFile)
	group.GET("/quizzes", handler.quizzes)
	group.GET("/quizzes/:id", handler.quizDetail)
	group.POST("/quizzes/:id/submit", handler.submitQuiz)
}

func studentID(c echo.Context) int64 {
	claims, _ := CurrentUser(c)
	return claims.UserID
}

func (h *StudentHandler) me(c echo.Context) error {
	profile, err := h.students.Profile(c.Request().Context(), studentID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errJSON("student not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *StudentHandler) courses(c echo.Context) error {
	courses, err := h.students.Courses(c.Request().Context(), studentID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errJSON("student not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(courses))
}

func (h *StudentHandler) assessments(c echo.Context) error {
	items, err := h.students.Assessments(c.Request().Context(), studentID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errJSON("student not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(items))
}

func (h *StudentHandler) submissions(c echo.Context) error {
	items, err := h.students.Submissions(c.Request().Context(), studentID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(items))
}

func (h *StudentHandler) attendance(c echo.Context) error {
	items, err := h.students.AttendanceHistory(c.Request().Context(), studentID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(items))
}

func (h *StudentHandler) attendanceSummary(c echo.Context) error {
	summary, err := h.students.AttendanceSummary(c.Request().Context(), studentID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *StudentHandler) materials(c echo.Context) error {
	items, err := h.students.Materials(c.Request().Context(), studentID(c), queryInt64(c, "course_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errJSON("student not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(items))
}

func (h *StudentHandler) announcements(c echo.Context) error {
	items, err := h.students.Announcements(c.Request().Context(), studentID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errJSON("student not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(items))
}

func (h *StudentHandler) performance(c echo.Context) error {
	items, err := h.students.Performance(c.Request().Context(), studentID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(items))
}

func submissionWindowError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, errJSON("not allowed for this assessment"))
	case errors.Is(err, service.ErrNotStarted):
		return c.JSON(http.StatusBadRequest, errJSON("Assessment not started"))
	case errors.Is(err, service.ErrWindowClosed):
		return c.JSON(http.StatusBadRequest, errJSON("Assessment is closed"))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errJSON("student not found"))
	}
	return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
}

func (h *StudentHandler) submitText(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid assessment id"))
	}
	var req struct {
		Content *string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}

	submissionID, err := h.students.SubmitText(c.Request().Context(), studentID(c), id, req.Content)
	if err != nil {
		return submissionWindowError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "submission_id": submissionID})
}

func (h *StudentHandler) submitFile(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid assessment id"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("file required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("unable to read file"))
	}
	defer src.Close()

	var content *string
	if text := c.FormValue("content"); text != "" {
		content = &text
	}

	file, err := h.students.SubmitFile(c.Request().Context(), studentID(c), id, content, service.FileUpload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return submissionWindowError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "file": file})
}

func (h *StudentHandler) quizzes(c echo.Context) error {
	items, err := h.students.Quizzes(c.Request().Context(), studentID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errJSON("student not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(items))
}

func (h *StudentHandler) quizDetail(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid quiz id"))
	}
	detail, err := h.students.QuizDetail(c.Request().Context(), studentID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, errJSON("Not allowed for this quiz"))
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, errJSON("student not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *StudentHandler) submitQuiz(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid quiz id"))
	}
	var req struct {
		Answers []domain.QuizAnswer `json:"answers" validate:"required,min=1"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("answers required"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("answers required"))
	}

	total, err := h.students.SubmitQuiz(c.Request().Context(), studentID(c), id, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, errJSON("Not allowed for this quiz"))
		case errors.Is(err, service.ErrNotStarted):
			return c.JSON(http.StatusBadRequest, errJSON("Quiz not started yet"))
		case errors.Is(err, service.ErrWindowClosed):
			return c.JSON(http.StatusBadRequest, errJSON("Quiz is closed"))
		case errors.Is(err, service.ErrAlreadySubmitted):
			return c.JSON(http.StatusConflict, errJSON("Quiz already submitted"))
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, errJSON("student not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "total_obtained": total})
}
