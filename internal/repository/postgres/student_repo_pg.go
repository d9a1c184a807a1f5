package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/repository/ports"
)

type StudentRepository struct {
	db *sqlx.DB
}

func NewStudentRepo(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, name, email string, phone *string, departmentID, classID *int64, passwordHash, passwordSalt []byte) (*domain.Student, error) {
	const query = `
        INSERT INTO students (name, email, phone, department_id, class_id, password_hash, password_salt)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, name, email, phone, department_id, class_id, password_hash, password_salt, status, last_login, created_at
    `
	var student domain.Student
	if err := r.db.QueryRowxContext(ctx, query, name, email, phone, departmentID, classID, passwordHash, passwordSalt).StructScan(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) List(ctx context.Context, filter ports.StudentFilter) ([]domain.Student, error) {
	clauses := []string{}
	args := []any{}
	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("department_id = $%d", len(args)))
	}
	if filter.ClassID != nil {
		args = append(args, *filter.ClassID)
		clauses = append(clauses, fmt.Sprintf("class_id = $%d", len(args)))
	}
	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}
	query := fmt.Sprintf(`
        SELECT id, name, email, phone, department_id, class_id, password_hash, password_salt, status, last_login, created_at
        FROM students %s
        ORDER BY created_at DESC`, where)
	students := []domain.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	const query = `
        SELECT id, name, email, phone, department_id, class_id, password_hash, password_salt, status, last_login, created_at
        FROM students
        WHERE LOWER(email) = LOWER($1)
        LIMIT 1
    `
	var student domain.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*domain.Student, error) {
	const query = `
        SELECT id, name, email, phone, department_id, class_id, password_hash, password_salt, status, last_login, created_at
        FROM students
        WHERE id = $1
    `
	var student domain.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) Profile(ctx context.Context, id int64) (*domain.StudentProfile, error) {
	const query = `
        SELECT s.id, s.name, s.email, s.phone, s.department_id, s.class_id,
               s.password_hash, s.password_salt, s.status, s.last_login, s.created_at,
               d.name AS department_name, c.name AS class_name
        FROM students s
        LEFT JOIN departments d ON d.id = s.department_id
        LEFT JOIN classes c ON c.id = s.class_id
        WHERE s.id = $1
    `
	var profile domain.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, err
	}

	if profile.ClassID != nil {
		const coursesQuery = `
            SELECT cc.id, cc.class_id, cc.course_id,
                   crs.code AS course_code, crs.name AS course_name,
                   fa.faculty_id, f.name AS faculty_name
            FROM class_courses cc
            JOIN courses crs ON crs.id = cc.course_id
            LEFT JOIN faculty_assignments fa
                ON fa.course_id = cc.course_id AND (fa.class_id = cc.class_id OR fa.class_id IS NULL)
            LEFT JOIN faculty f ON f.id = fa.faculty_id
            WHERE cc.class_id = $1
            ORDER BY crs.code
        `
		courses := []domain.ClassCourse{}
		if err := r.db.SelectContext(ctx, &courses, coursesQuery, *profile.ClassID); err != nil {
			return nil, err
		}
		profile.Courses = courses
	}
	return &profile, nil
}

func (r *StudentRepository) Roster(ctx context.Context, classID int64) ([]domain.StudentRef, error) {
	const query = `SELECT id, name FROM students WHERE class_id = $1 ORDER BY name`
	roster := []domain.StudentRef{}
	if err := r.db.SelectContext(ctx, &roster, query, classID); err != nil {
		return nil, err
	}
	return roster, nil
}

func (r *StudentRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE students SET last_login = NOW() WHERE id = $1`, id)
	return err
}
