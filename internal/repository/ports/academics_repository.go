package ports

import (
	"context"

	"github.com/campuscore/campus-backend/internal/domain"
)

type AcademicsRepository interface {
	CreateDepartment(ctx context.Context, name string) (*domain.Department, error)
	ListDepartments(ctx context.Context) ([]domain.Department, error)

	CreateClass(ctx context.Context, departmentID int64, name string) (*domain.Class, error)
	ListClasses(ctx context.Context, departmentID *int64) ([]domain.Class, error)

	CreateCourse(ctx context.Context, departmentID int64, code, name string) (*domain.Course, error)
	ListCourses(ctx context.Context, departmentID *int64) ([]domain.Course, error)

	MapCourseToClass(ctx context.Context, classID, courseID int64) (*domain.ClassCourse, error)
	ListClassCourses(ctx context.Context, classID int64) ([]domain.ClassCourse, error)
	ListAllClassCourses(ctx context.Context) ([]domain.ClassCourse, error)

	AssignFaculty(ctx context.Context, facultyID, courseID int64, classID *int64) (*domain.FacultyAssignment, error)
	ListAssignments(ctx context.Context, filter domain.AssignmentFilter) ([]domain.FacultyAssignment, error)

	// CanTeachCourseInClass reports whether the faculty is assigned the course,
	// either directly for the class or class-wide through class_courses.
	CanTeachCourseInClass(ctx context.Context, facultyID, courseID int64, classID *int64) (bool, error)
	// CanTeachClass reports whether any of the faculty's assignments reach the
	// class.
	CanTeachClass(ctx context.Context, facultyID, classID int64) (bool, error)

	LogActivity(ctx context.Context, actorAdminID *int64, activityType string, details any) error
}
