package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campuscore/campus-backend/internal/domain"
)

type AcademicsRepository struct {
	db *sqlx.DB
}

func NewAcademicsRepo(db *sqlx.DB) *AcademicsRepository {
	return &AcademicsRepository{db: db}
}

func (r *AcademicsRepository) CreateDepartment(ctx context.Context, name string) (*domain.Department, error) {
	const query = `
        INSERT INTO departments (name) VALUES ($1)
        RETURNING id, name, created_at, updated_at
    `
	var department domain.Department
	if err := r.db.QueryRowxContext(ctx, query, name).StructScan(&department); err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *AcademicsRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	const query = `SELECT id, name, created_at, updated_at FROM departments ORDER BY name`
	departments := []domain.Department{}
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *AcademicsRepository) CreateClass(ctx context.Context, departmentID int64, name string) (*domain.Class, error) {
	const query = `
        INSERT INTO classes (department_id, name) VALUES ($1, $2)
        RETURNING id, department_id, name, created_at, updated_at
    `
	var class domain.Class
	if err := r.db.QueryRowxContext(ctx, query, departmentID, name).StructScan(&class); err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *AcademicsRepository) ListClasses(ctx context.Context, departmentID *int64) ([]domain.Class, error) {
	query := `SELECT id, department_id, name, created_at, updated_at FROM classes`
	args := []any{}
	if departmentID != nil {
		query += ` WHERE department_id = $1`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY name`
	classes := []domain.Class{}
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *AcademicsRepository) CreateCourse(ctx context.Context, departmentID int64, code, name string) (*domain.Course, error) {
	const query = `
        INSERT INTO courses (department_id, code, name) VALUES ($1, $2, $3)
        RETURNING id, department_id, code, name, created_at, updated_at
    `
	var course domain.Course
	if err := r.db.QueryRowxContext(ctx, query, departmentID, code, name).StructScan(&course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *AcademicsRepository) ListCourses(ctx context.Context, departmentID *int64) ([]domain.Course, error) {
	query := `SELECT id, department_id, code, name, created_at, updated_at FROM courses`
	args := []any{}
	if departmentID != nil {
		query += ` WHERE department_id = $1`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY code`
	courses := []domain.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *AcademicsRepository) MapCourseToClass(ctx context.Context, classID, courseID int64) (*domain.ClassCourse, error) {
	// ON CONFLICT DO NOTHING makes the duplicate case visible as sql.ErrNoRows
	// instead of a unique violation.
	const query = `
        INSERT INTO class_courses (class_id, course_id)
        VALUES ($1, $2)
        ON CONFLICT (class_id, course_id) DO NOTHING
        RETURNING id, class_id, course_id
    `
	var mapping domain.ClassCourse
	if err := r.db.QueryRowxContext(ctx, query, classID, courseID).StructScan(&mapping); err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (r *AcademicsRepository) ListClassCourses(ctx context.Context, classID int64) ([]domain.ClassCourse, error) {
	const query = `
        SELECT cc.id, cc.class_id, cc.course_id, c.code AS course_code, c.name AS course_name
        FROM class_courses cc
        JOIN courses c ON c.id = cc.course_id
        WHERE cc.class_id = $1
        ORDER BY c.code
    `
	mappings := []domain.ClassCourse{}
	if err := r.db.SelectContext(ctx, &mappings, query, classID); err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *AcademicsRepository) ListAllClassCourses(ctx context.Context) ([]domain.ClassCourse, error) {
	const query = `
        SELECT cc.id, cc.class_id, cl.name AS class_name,
               cc.course_id, c.code AS course_code, c.name AS course_name
        FROM class_courses cc
        JOIN classes cl ON cl.id = cc.class_id
        JOIN courses c ON c.id = cc.course_id
        ORDER BY cl.name, c.code
    `
	mappings := []domain.ClassCourse{}
	if err := r.db.SelectContext(ctx, &mappings, query); err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *AcademicsRepository) AssignFaculty(ctx context.Context, facultyID, courseID int64, classID *int64) (*domain.FacultyAssignment, error) {
	const query = `
        INSERT INTO faculty_assignments (faculty_id, course_id, class_id)
        VALUES ($1, $2, $3)
        ON CONFLICT DO NOTHING
        RETURNING id, faculty_id, course_id, class_id
    `
	var assignment domain.FacultyAssignment
	if err := r.db.QueryRowxContext(ctx, query, facultyID, courseID, classID).StructScan(&assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AcademicsRepository) ListAssignments(ctx context.Context, filter domain.AssignmentFilter) ([]domain.FacultyAssignment, error) {
	clauses := []string{}
	args := []any{}
	if filter.FacultyID != nil {
		args = append(args, *filter.FacultyID)
		clauses = append(clauses, fmt.Sprintf("fa.faculty_id = $%d", len(args)))
	}
	if filter.CourseID != nil {
		args = append(args, *filter.CourseID)
		clauses = append(clauses, fmt.Sprintf("fa.course_id = $%d", len(args)))
	}
	if filter.ClassID != nil {
		args = append(args, *filter.ClassID)
		clauses = append(clauses, fmt.Sprintf("fa.class_id = $%d", len(args)))
	}
	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}
	query := fmt.Sprintf(`
        SELECT fa.id, fa.faculty_id, fa.course_id, fa.class_id,
               f.name AS faculty_name, c.code AS course_code, c.name AS course_name, cl.name AS class_name
        FROM faculty_assignments fa
        JOIN faculty f ON f.id = fa.faculty_id
        JOIN courses c ON c.id = fa.course_id
        LEFT JOIN classes cl ON cl.id = fa.class_id
        %s
        ORDER BY fa.id DESC`, where)
	assignments := []domain.FacultyAssignment{}
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *AcademicsRepository) CanTeachCourseInClass(ctx context.Context, facultyID, courseID int64, classID *int64) (bool, error) {
	if classID == nil {
		const query = `
            SELECT EXISTS (
                SELECT 1 FROM faculty_assignments fa
                WHERE fa.faculty_id = $1 AND fa.course_id = $2
            )
        `
		var ok bool
		if err := r.db.GetContext(ctx, &ok, query, facultyID, courseID); err != nil {
			return false, err
		}
		return ok, nil
	}
	const query = `
        SELECT EXISTS (
            SELECT 1
            FROM faculty_assignments fa
            WHERE fa.faculty_id = $1 AND fa.course_id = $2
              AND (fa.class_id = $3 OR fa.class_id IS NULL)
              AND EXISTS (
                  SELECT 1 FROM class_courses cc WHERE cc.class_id = $3 AND cc.course_id = $2
              )
        )
    `
	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, facultyID, courseID, *classID); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *AcademicsRepository) CanTeachClass(ctx context.Context, facultyID, classID int64) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM faculty_assignments fa
            WHERE fa.faculty_id = $1 AND (
                fa.class_id = $2 OR (
                    fa.class_id IS NULL AND EXISTS (
                        SELECT 1 FROM class_courses cc
                        WHERE cc.class_id = $2 AND cc.course_id = fa.course_id
                    )
                )
            )
        )
    `
	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, facultyID, classID); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *AcademicsRepository) LogActivity(ctx context.Context, actorAdminID *int64, activityType string, details any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO activity_log (actor_admin_id, type, details) VALUES ($1, $2, $3)`,
		actorAdminID, activityType, payload,
	)
	return err
}
