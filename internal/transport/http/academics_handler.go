package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/service"
	"github.com/campuscore/campus-backend/internal/util"
)

type AcademicsHandler struct {
	academics *service.AcademicsService
}

func RegisterAcademics(e *echo.Echo, jwt *util.JWTManager, academics *service.AcademicsService) {
	handler := &AcademicsHandler{academics: academics}
	group := e.Group("/api/academics", RequireAuth(jwt), RequireAdmin())
	group.GET("/departments", handler.listDepartments)
	group.POST("/departments", handler.createDepartment)
	group.GET("/classes", handler.listClasses)
	group.POST("/classes", handler.createClass)
	group.GET("/courses", handler.listCourses)
	group.POST("/courses", handler.createCourse)
	group.GET("/class-courses", handler.listAllClassCourses)
	group.GET("/classes/:id/courses", handler.listClassCourses)
	group.POST("/class-courses", handler.mapCourseToClass)
	group.GET("/assignments", handler.listAssignments)
	group.POST("/assignments", handler.assignFaculty)
}

func (h *AcademicsHandler) actorID(c echo.Context) *int64 {
	if claims, ok := CurrentUser(c); ok {
		return &claims.UserID
	}
	return nil
}

func (h *AcademicsHandler) listDepartments(c echo.Context) error {
	departments, err := h.academics.ListDepartments(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(departments))
}

func (h *AcademicsHandler) createDepartment(c echo.Context) error {
	var req struct {
		Name string `json:"name" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	department, err := h.academics.CreateDepartment(c.Request().Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.JSON(http.StatusConflict, errJSON("department already exists"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, department)
}

func (h *AcademicsHandler) listClasses(c echo.Context) error {
	classes, err := h.academics.ListClasses(c.Request().Context(), queryInt64(c, "department_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(classes))
}

func (h *AcademicsHandler) createClass(c echo.Context) error {
	var req struct {
		DepartmentID int64  `json:"department_id" validate:"required"`
		Name         string `json:"name" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	class, err := h.academics.CreateClass(c.Request().Context(), req.DepartmentID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.JSON(http.StatusConflict, errJSON("class already exists"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, class)
}

func (h *AcademicsHandler) listCourses(c echo.Context) error {
	courses, err := h.academics.ListCourses(c.Request().Context(), queryInt64(c, "department_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(courses))
}

func (h *AcademicsHandler) createCourse(c echo.Context) error {
	var req struct {
		DepartmentID int64  `json:"department_id" validate:"required"`
		Code         string `json:"code" validate:"required"`
		Name         string `json:"name" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	course, err := h.academics.CreateCourse(c.Request().Context(), req.DepartmentID, req.Code, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.JSON(http.StatusConflict, errJSON("course already exists"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, course)
}

func (h *AcademicsHandler) listAllClassCourses(c echo.Context) error {
	mappings, err := h.academics.ListAllClassCourses(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(mappings))
}

func (h *AcademicsHandler) listClassCourses(c echo.Context) error {
	classID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, errJSON("invalid class id"))
	}
	mappings, err := h.academics.ListClassCourses(c.Request().Context(), classID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(mappings))
}

func (h *AcademicsHandler) mapCourseToClass(c echo.Context) error {
	var req struct {
		ClassID  int64 `json:"class_id" validate:"required"`
		CourseID int64 `json:"course_id" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	mapping, err := h.academics.MapCourseToClass(c.Request().Context(), h.actorID(c), req.ClassID, req.CourseID)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.JSON(http.StatusConflict, errJSON("course already mapped to class"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, mapping)
}

func (h *AcademicsHandler) listAssignments(c echo.Context) error {
	filter := domain.AssignmentFilter{
		FacultyID: queryInt64(c, "faculty_id"),
		CourseID:  queryInt64(c, "course_id"),
		ClassID:   queryInt64(c, "class_id"),
	}
	assignments, err := h.academics.ListAssignments(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusOK, listJSON(assignments))
}

func (h *AcademicsHandler) assignFaculty(c echo.Context) error {
	var req struct {
		FacultyID int64  `json:"faculty_id" validate:"required"`
		CourseID  int64  `json:"course_id" validate:"required"`
		ClassID   *int64 `json:"class_id"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errJSON("invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	assignment, err := h.academics.AssignFaculty(c.Request().Context(), h.actorID(c), req.FacultyID, req.CourseID, req.ClassID)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			return c.JSON(http.StatusConflict, errJSON("assignment already exists"))
		}
		return c.JSON(http.StatusInternalServerError, errJSON("Internal server error"))
	}
	return c.JSON(http.StatusCreated, assignment)
}
