package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/campuscore/campus-backend/internal/domain"
)

type FacultyRepository struct {
	db *sqlx.DB
}

func NewFacultyRepo(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

const facultyColumns = "id, name, email, phone, department_id, password_hash, password_salt, status, created_at, updated_at"

func (r *FacultyRepository) Create(ctx context.Context, name, email string, phone *string, departmentID *int64, passwordHash, passwordSalt []byte) (*domain.Faculty, error) {
	query := `
        INSERT INTO faculty (name, email, phone, department_id, password_hash, password_salt)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + facultyColumns
	var faculty domain.Faculty
	if err := r.db.QueryRowxContext(ctx, query, name, email, phone, departmentID, passwordHash, passwordSalt).StructScan(&faculty); err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (r *FacultyRepository) List(ctx context.Context, departmentID *int64) ([]domain.Faculty, error) {
	query := `SELECT ` + facultyColumns + ` FROM faculty`
	args := []any{}
	if departmentID != nil {
		query += ` WHERE department_id = $1`
		args = append(args, *departmentID)
	}
	query += ` ORDER BY created_at DESC`
	faculty := []domain.Faculty{}
	if err := r.db.SelectContext(ctx, &faculty, query, args...); err != nil {
		return nil, err
	}
	return faculty, nil
}

func (r *FacultyRepository) FindByEmail(ctx context.Context, email string) (*domain.Faculty, error) {
	query := `SELECT ` + facultyColumns + ` FROM faculty WHERE LOWER(email) = LOWER($1) LIMIT 1`
	var faculty domain.Faculty
	if err := r.db.GetContext(ctx, &faculty, query, email); err != nil {
		return nil, err
	}
	return &faculty, nil
}

// Profile loads the faculty row plus the distinct classes and courses its
// teaching assignments reach. Class-wide assignments (no class id) fan out to
// every class mapped to the course.
func (r *FacultyRepository) Profile(ctx context.Context, id int64) (*domain.FacultyProfile, error) {
	const query = `
        SELECT f.id, f.name, f.email, f.phone, f.department_id,
               f.password_hash, f.password_salt, f.status, f.created_at, f.updated_at,
               d.name AS department_name
        FROM faculty f
        LEFT JOIN departments d ON d.id = f.department_id
        WHERE f.id = $1
    `
	var profile domain.FacultyProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, err
	}

	type assignmentRow struct {
		CourseID   int64   `db:"course_id"`
		ClassID    *int64  `db:"class_id"`
		CourseCode string  `db:"course_code"`
		CourseName string  `db:"course_name"`
		ClassName  *string `db:"class_name"`
	}
	const assignmentsQuery = `
        SELECT fa.course_id, fa.class_id,
               c.code AS course_code, c.name AS course_name,
               cl.name AS class_name
        FROM faculty_assignments fa
        JOIN courses c ON c.id = fa.course_id
        LEFT JOIN classes cl ON cl.id = fa.class_id
        WHERE fa.faculty_id = $1
        ORDER BY fa.id DESC
    `
	rows := []assignmentRow{}
	if err := r.db.SelectContext(ctx, &rows, assignmentsQuery, id); err != nil {
		return nil, err
	}

	classSeen := map[int64]bool{}
	courseSeen := map[int64]bool{}
	widened := []int64{}
	for _, row := range rows {
		if row.ClassID != nil && !classSeen[*row.ClassID] {
			classSeen[*row.ClassID] = true
			name := ""
			if row.ClassName != nil {
				name = *row.ClassName
			}
			profile.Classes = append(profile.Classes, domain.ClassRef{ID: *row.ClassID, Name: name})
		} else if row.ClassID == nil {
			widened = append(widened, row.CourseID)
		}
		if !courseSeen[row.CourseID] {
			courseSeen[row.CourseID] = true
			profile.Courses = append(profile.Courses, domain.CourseRef{ID: row.CourseID, Code: row.CourseCode, Name: row.CourseName})
		}
	}

	if len(widened) > 0 {
		query, args, err := sqlx.In(`
            SELECT cc.class_id AS id, cl.name
            FROM class_courses cc
            JOIN classes cl ON cl.id = cc.class_id
            WHERE cc.course_id IN (?)`, widened)
		if err != nil {
			return nil, err
		}
		query = r.db.Rebind(query)
		refs := []domain.ClassRef{}
		if err := r.db.SelectContext(ctx, &refs, query, args...); err != nil {
			return nil, err
		}
		for _, ref := range refs {
			if !classSeen[ref.ID] {
				classSeen[ref.ID] = true
				profile.Classes = append(profile.Classes, ref)
			}
		}
	}
	if profile.Classes == nil {
		profile.Classes = []domain.ClassRef{}
	}
	if profile.Courses == nil {
		profile.Courses = []domain.CourseRef{}
	}
	return &profile, nil
}

func (r *FacultyRepository) TouchUpdatedAt(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE faculty SET updated_at = NOW() WHERE id = $1`, id)
	return err
}
