package service

import (
	"context"
	"strings"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/repository/ports"
)

// AcademicsService manages the curriculum structure: departments, classes,
// courses and the mappings between them.
type AcademicsService struct {
	academics ports.AcademicsRepository
}

func NewAcademicsService(academics ports.AcademicsRepository) *AcademicsService {
	return &AcademicsService{academics: academics}
}

func (s *AcademicsService) CreateDepartment(ctx context.Context, name string) (*domain.Department, error) {
	department, err := s.academics.CreateDepartment(ctx, strings.TrimSpace(name))
	if err != nil {
		if isUniqueViolation(err) || isNotFound(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return department, nil
}

func (s *AcademicsService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.academics.ListDepartments(ctx)
}

func (s *AcademicsService) CreateClass(ctx context.Context, departmentID int64, name string) (*domain.Class, error) {
	class, err := s.academics.CreateClass(ctx, departmentID, strings.TrimSpace(name))
	if err != nil {
		if isUniqueViolation(err) || isNotFound(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return class, nil
}

func (s *AcademicsService) ListClasses(ctx context.Context, departmentID *int64) ([]domain.Class, error) {
	return s.academics.ListClasses(ctx, departmentID)
}

func (s *AcademicsService) CreateCourse(ctx context.Context, departmentID int64, code, name string) (*domain.Course, error) {
	course, err := s.academics.CreateCourse(ctx, departmentID, strings.ToUpper(strings.TrimSpace(code)), strings.TrimSpace(name))
	if err != nil {
		if isUniqueViolation(err) || isNotFound(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return course, nil
}

func (s *AcademicsService) ListCourses(ctx context.Context, departmentID *int64) ([]domain.Course, error) {
	return s.academics.ListCourses(ctx, departmentID)
}

// MapCourseToClass records the mapping and appends an activity-log entry;
// the log write is best effort.
func (s *AcademicsService) MapCourseToClass(ctx context.Context, actorAdminID *int64, classID, courseID int64) (*domain.ClassCourse, error) {
	mapping, err := s.academics.MapCourseToClass(ctx, classID, courseID)
	if err != nil {
		if isUniqueViolation(err) || isNotFound(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	_ = s.academics.LogActivity(ctx, actorAdminID, "class_course_mapped", map[string]any{
		"class_id":  classID,
		"course_id": courseID,
	})
	return mapping, nil
}

func (s *AcademicsService) ListClassCourses(ctx context.Context, classID int64) ([]domain.ClassCourse, error) {
	return s.academics.ListClassCourses(ctx, classID)
}

func (s *AcademicsService) ListAllClassCourses(ctx context.Context) ([]domain.ClassCourse, error) {
	return s.academics.ListAllClassCourses(ctx)
}

func (s *AcademicsService) AssignFaculty(ctx context.Context, actorAdminID *int64, facultyID, courseID int64, classID *int64) (*domain.FacultyAssignment, error) {
	assignment, err := s.academics.AssignFaculty(ctx, facultyID, courseID, classID)
	if err != nil {
		if isUniqueViolation(err) || isNotFound(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	_ = s.academics.LogActivity(ctx, actorAdminID, "faculty_assigned", map[string]any{
		"faculty_id": facultyID,
		"course_id":  courseID,
		"class_id":   classID,
	})
	return assignment, nil
}

func (s *AcademicsService) ListAssignments(ctx context.Context, filter domain.AssignmentFilter) ([]domain.FacultyAssignment, error) {
	return s.academics.ListAssignments(ctx, filter)
}
