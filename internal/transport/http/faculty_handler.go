package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/service"
	"github.com/campuscore/campus-backend/internal/util"
)

type FacultyHandler struct {
	faculty *service.FacultyService
}

func RegisterFaculty(e *echo.Echo, jwt *util.JWTManager, faculty *service.FacultyService) {
	handler := &FacultyHandler{faculty: faculty}
	group := e.Group("/api/faculty", RequireAuth(jwt), RequireRoles(domain.RoleFaculty))
	group.GET("/me", handler.me)
	group.GET("/assessments", handler.listAssessments)
	group.POST("/assessments", handler.createAssessment)
	group.GET("/assessments/:id", handler.assessmentDetail)
	group.GET("/submissions/:id", handler.submission)
	group.PUT("/submissions/:id/grade", handler.gradeSubmission)
	group.PUT("/quizzes/:id/score", handler.overrideQuizScore)
	group.GET("/classes/:id/roster", handler.roster)
	group.GET("/attendance", handler.attendance)
	group.POST("/attendance", handler.markAttendance)
	group.GET("/materials", handler.listMaterials)
	group.POST("/materials", handler.createMaterial)
	group.GET("/announcements", handler.listAnnouncements)
	group.POST("/announcements", handler.createAnnouncement)
	group.GET("/performance", handler.performance)
	group.GET("/quizzes", handler.listQuizzes)
	group.POST("/quizzes", handler.createQuiz)
}

func facultyID(c echo.Context) int64 {
	claims, _ := CurrentUser(c)
	return claims.UserID
}

func (h *FacultyHandler) me(c echo.Context) error {
	profile, err := h.faculty.Profile(c.Request().Context(), facultyID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errJSON("faculty not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *FacultyHandler) listAssessments(c echo.Context) error {
	assessments, err := h.faculty.ListAssessments(c.Request().Context(), facultyID(c), queryInt64(c, "class_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(assessments))
}

func (h *FacultyHandler) createAssessment(c echo.Context) error {
	var req struct {
		ClassID      int64      `json:"class_id" validate:"required"`
		CourseID     int64      `json:"course_id" validate:"required"`
		Type         string     `json:"type" validate:"required"`
		TotalMarks   int        `json:"total_marks"`
		DueDate      time.Time  `json:"due_date" validate:"required"`
		Instructions *string    `json:"instructions"`
		StartAt      *time.Time `json:"start_at"`
		DueAt        *time.Time `json:"due_at"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	assessment, err := h.faculty.CreateAssessment(c.Request().Context(), facultyID(c), service.AssessmentCreateInput{
		ClassID:      req.ClassID,
		CourseID:     req.CourseID,
		Type:         req.Type,
		TotalMarks:   req.TotalMarks,
		DueDate:      req.DueDate,
		Instructions: req.Instructions,
		StartAt:      req.StartAt,
		DueAt:        req.DueAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errJSON("not assigned to this course/class"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, assessment)
}

func (h *FacultyHandler) assessmentDetail(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid assessment id"))
	}
	detail, err := h.faculty.AssessmentDetail(c.Request().Context(), facultyID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, errJSON("assessment not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *FacultyHandler) submission(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid submission id"))
	}
	submission, err := h.faculty.Submission(c.Request().Context(), facultyID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, errJSON("not allowed for this submission"))
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, errJSON("submission not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, submission)
}

func (h *FacultyHandler) gradeSubmission(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid submission id"))
	}
	var req struct {
		Marks    int     `json:"marks"`
		Feedback *string `json:"feedback"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}

	if err := h.faculty.GradeSubmission(c.Request().Context(), facultyID(c), id, req.Marks, req.Feedback); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errJSON("not allowed for this submission"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *FacultyHandler) overrideQuizScore(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid quiz id"))
	}
	var req struct {
		StudentID int64 `json:"student_id" validate:"required"`
		Marks     int   `json:"marks"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.faculty.OverrideQuizScore(c.Request().Context(), facultyID(c), id, req.StudentID, req.Marks); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, errJSON("not allowed for this quiz"))
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, errJSON("quiz submission not found"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *FacultyHandler) roster(c echo.Context) error {
	classID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid class id"))
	}
	students, err := h.faculty.Roster(c.Request().Context(), facultyID(c), classID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errJSON("not assigned to this class"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(students))
}

func (h *FacultyHandler) attendance(c echo.Context) error {
	classID := queryInt64(c, "class_id")
	if classID == nil {
		return c.JSON(http.StatusBadRequest, errJSON("class_id required"))
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("date must be YYYY-MM-DD"))
	}
	records, err := h.faculty.Attendance(c.Request().Context(), facultyID(c), *classID, date)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errJSON("not assigned to this class"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(records))
}

func (h *FacultyHandler) markAttendance(c echo.Context) error {
	var req struct {
		ClassID int64                   `json:"class_id" validate:"required"`
		Date    string                  `json:"date" validate:"required"`
		Marks   []domain.AttendanceMark `json:"marks" validate:"required,min=1"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("date must be YYYY-MM-DD"))
	}

	if err := h.faculty.MarkAttendance(c.Request().Context(), facultyID(c), req.ClassID, date, req.Marks); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errJSON("not assigned to this class"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *FacultyHandler) listMaterials(c echo.Context) error {
	materials, err := h.faculty.ListMaterials(c.Request().Context(), facultyID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(materials))
}

func (h *FacultyHandler) createMaterial(c echo.Context) error {
	var req struct {
		ClassID  int64   `json:"class_id" validate:"required"`
		CourseID *int64  `json:"course_id"`
		Title    string  `json:"title" validate:"required"`
		Link     *string `json:"link"`
		Note     *string `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	material, err := h.faculty.CreateMaterial(c.Request().Context(), facultyID(c), req.ClassID, req.CourseID, req.Title, req.Link, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errJSON("not assigned to this class"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, material)
}

func (h *FacultyHandler) listAnnouncements(c echo.Context) error {
	announcements, err := h.faculty.ListAnnouncements(c.Request().Context(), facultyID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(announcements))
}

func (h *FacultyHandler) createAnnouncement(c echo.Context) error {
	var req struct {
		ClassID *int64  `json:"class_id"`
		Title   string  `json:"title" validate:"required"`
		Body    *string `json:"body"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	announcement, err := h.faculty.CreateAnnouncement(c.Request().Context(), facultyID(c), req.ClassID, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errJSON("not assigned to this class"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, announcement)
}

func (h *FacultyHandler) performance(c echo.Context) error {
	classID := queryInt64(c, "class_id")
	courseID := queryInt64(c, "course_id")
	if classID == nil || courseID == nil {
		return c.JSON(http.StatusBadRequest, errJSON("class_id and course_id required"))
	}
	averages, err := h.faculty.ClassPerformance(c.Request().Context(), facultyID(c), *classID, *courseID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errJSON("not assigned to this course/class"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(averages))
}

func (h *FacultyHandler) listQuizzes(c echo.Context) error {
	quizzes, err := h.faculty.ListQuizzes(c.Request().Context(), facultyID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(quizzes))
}

func (h *FacultyHandler) createQuiz(c echo.Context) error {
	var req struct {
		Title        string     `json:"title" validate:"required"`
		CourseID     int64      `json:"course_id" validate:"required"`
		ClassID      int64      `json:"class_id" validate:"required"`
		Instructions *string    `json:"instructions"`
		TotalMarks   int        `json:"total_marks" validate:"required"`
		StartAt      *time.Time `json:"start_at"`
		EndAt        *time.Time `json:"end_at"`
		Questions    []struct {
			Text    string `json:"text" validate:"required"`
			Marks   int    `json:"marks"`
			Options []struct {
				Text      string `json:"text"`
				IsCorrect bool   `json:"is_correct"`
			} `json:"options"`
		} `json:"questions" validate:"required,min=1"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	quiz := domain.NewQuiz{
		Title:        req.Title,
		CourseID:     req.CourseID,
		ClassID:      req.ClassID,
		Instructions: req.Instructions,
		TotalMarks:   req.TotalMarks,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
	}
	for _, question := range req.Questions {
		q := domain.NewQuizQuestion{Text: question.Text, Marks: question.Marks}
		for _, option := range question.Options {
			q.Options = append(q.Options, domain.NewQuizOption{Text: option.Text, IsCorrect: option.IsCorrect})
		}
		quiz.Questions = append(quiz.Questions, q)
	}

	id, err := h.faculty.CreateQuiz(c.Request().Context(), facultyID(c), quiz)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizValidation):
			return c.JSON(http.StatusBadRequest, errJSON(err.Error()))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, errJSON("not assigned to this course/class"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
