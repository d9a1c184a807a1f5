package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/repository/ports"
)

type AssessmentRepository struct {
	db *sqlx.DB
}

func NewAssessmentRepo(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) Create(ctx context.Context, a ports.NewAssessment) (*domain.Assessment, error) {
	const query = `
        INSERT INTO assessments (faculty_id, course_id, class_id, type, total_marks, due_date, instructions, start_at, due_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, faculty_id, course_id, class_id, type, total_marks, due_date, instructions, start_at, due_at, created_at
    `
	var assessment domain.Assessment
	err := r.db.QueryRowxContext(ctx, query,
		a.FacultyID, a.CourseID, a.ClassID, a.Type, a.TotalMarks, a.DueDate, a.Instructions, a.StartAt, a.DueAt,
	).StructScan(&assessment)
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *AssessmentRepository) ListByFaculty(ctx context.Context, facultyID int64, classID *int64) ([]domain.Assessment, error) {
	query := `
        SELECT a.id, a.faculty_id, a.course_id, a.class_id, a.type, a.total_marks,
               a.due_date, a.instructions, a.start_at, a.due_at, a.created_at,
               c.code AS course_code, c.name AS course_name, cl.name AS class_name
        FROM assessments a
        JOIN courses c ON c.id = a.course_id
        JOIN classes cl ON cl.id = a.class_id
        WHERE a.faculty_id = $1`
	args := []any{facultyID}
	if classID != nil {
		args = append(args, *classID)
		query += fmt.Sprintf(" AND a.class_id = $%d", len(args))
	}
	query += " ORDER BY a.id DESC"
	assessments := []domain.Assessment{}
	if err := r.db.SelectContext(ctx, &assessments, query, args...); err != nil {
		return nil, err
	}
	return assessments, nil
}

func (r *AssessmentRepository) FindForFaculty(ctx context.Context, id, facultyID int64) (*domain.Assessment, error) {
	const query = `
        SELECT a.id, a.faculty_id, a.course_id, a.class_id, a.type, a.total_marks,
               a.due_date, a.instructions, a.start_at, a.due_at, a.created_at,
               c.code AS course_code, c.name AS course_name, cl.name AS class_name
        FROM assessments a
        JOIN courses c ON c.id = a.course_id
        JOIN classes cl ON cl.id = a.class_id
        WHERE a.id = $1 AND a.faculty_id = $2
    `
	var assessment domain.Assessment
	if err := r.db.GetContext(ctx, &assessment, query, id, facultyID); err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *AssessmentRepository) FindForClass(ctx context.Context, id, classID int64) (*domain.Assessment, error) {
	const query = `
        SELECT id, faculty_id, course_id, class_id, type, total_marks, due_date, instructions, start_at, due_at, created_at
        FROM assessments
        WHERE id = $1 AND class_id = $2
    `
	var assessment domain.Assessment
	if err := r.db.GetContext(ctx, &assessment, query, id, classID); err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *AssessmentRepository) ListSubmissions(ctx context.Context, assessmentID int64) ([]domain.Submission, error) {
	const query = `
        SELECT s.id, s.assessment_id, s.student_id, st.name AS student_name,
               s.marks, s.feedback, s.content_text, s.submitted_at
        FROM submissions s
        JOIN students st ON st.id = s.student_id
        WHERE s.assessment_id = $1
        ORDER BY s.submitted_at DESC NULLS LAST, st.name
    `
	submissions := []domain.Submission{}
	if err := r.db.SelectContext(ctx, &submissions, query, assessmentID); err != nil {
		return nil, err
	}
	for i := range submissions {
		files, err := r.files(ctx, submissions[i].ID)
		if err != nil {
			return nil, err
		}
		submissions[i].Files = files
	}
	return submissions, nil
}

func (r *AssessmentRepository) FindSubmission(ctx context.Context, submissionID int64) (*domain.Submission, error) {
	const query = `
        SELECT s.id, s.assessment_id, s.student_id, st.name AS student_name,
               s.marks, s.feedback, s.content_text, s.submitted_at
        FROM submissions s
        JOIN students st ON st.id = s.student_id
        WHERE s.id = $1
    `
	var submission domain.Submission
	if err := r.db.GetContext(ctx, &submission, query, submissionID); err != nil {
		return nil, err
	}
	files, err := r.files(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	submission.Files = files
	return &submission, nil
}

func (r *AssessmentRepository) files(ctx context.Context, submissionID int64) ([]domain.UploadedFile, error) {
	const query = `
        SELECT id, submission_id, filename, path, mime, size, created_at
        FROM uploaded_files
        WHERE submission_id = $1
        ORDER BY id
    `
	files := []domain.UploadedFile{}
	if err := r.db.SelectContext(ctx, &files, query, submissionID); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *AssessmentRepository) SubmissionOwnedByFaculty(ctx context.Context, submissionID, facultyID int64) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM submissions s
            JOIN assessments a ON a.id = s.assessment_id
            WHERE s.id = $1 AND a.faculty_id = $2
        )
    `
	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, submissionID, facultyID); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *AssessmentRepository) Grade(ctx context.Context, submissionID int64, marks int, feedback *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE submissions SET marks = $1, feedback = $2 WHERE id = $3`,
		marks, feedback, submissionID,
	)
	return err
}

func (r *AssessmentRepository) UpsertSubmission(ctx context.Context, assessmentID, studentID int64, contentText *string) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var submissionID int64
	err = tx.GetContext(ctx, &submissionID,
		`SELECT id FROM submissions WHERE assessment_id = $1 AND student_id = $2`,
		assessmentID, studentID,
	)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx,
			`UPDATE submissions SET submitted_at = NOW(), content_text = $1 WHERE id = $2`,
			contentText, submissionID,
		); err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM uploaded_files WHERE submission_id = $1`, submissionID,
		); err != nil {
			return 0, err
		}
	case isNoRows(err):
		if err := tx.GetContext(ctx, &submissionID,
			`INSERT INTO submissions (assessment_id, student_id, submitted_at, content_text)
             VALUES ($1, $2, NOW(), $3) RETURNING id`,
			assessmentID, studentID, contentText,
		); err != nil {
			return 0, err
		}
	default:
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return submissionID, nil
}

func (r *AssessmentRepository) AttachFile(ctx context.Context, submissionID int64, filename, path string, mime *string, size *int64) (*domain.UploadedFile, error) {
	const query = `
        INSERT INTO uploaded_files (submission_id, filename, path, mime, size)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, submission_id, filename, path, mime, size, created_at
    `
	var file domain.UploadedFile
	if err := r.db.QueryRowxContext(ctx, query, submissionID, filename, path, mime, size).StructScan(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *AssessmentRepository) ListStudentSubmissions(ctx context.Context, studentID int64) ([]domain.StudentSubmissionItem, error) {
	const query = `
        SELECT s.id, s.assessment_id, s.submitted_at, s.marks, s.feedback,
               a.type, a.total_marks, a.course_id, c.code AS course_code, c.name AS course_name
        FROM submissions s
        JOIN assessments a ON a.id = s.assessment_id
        JOIN courses c ON c.id = a.course_id
        WHERE s.student_id = $1
        ORDER BY s.submitted_at DESC NULLS LAST
    `
	items := []domain.StudentSubmissionItem{}
	if err := r.db.SelectContext(ctx, &items, query, studentID); err != nil {
		return nil, err
	}
	return items, nil
}

// ListStudentWork unions assessments and quizzes for the student's class and
// attaches the student's own submission state to each row.
func (r *AssessmentRepository) ListStudentWork(ctx context.Context, studentID, classID int64) ([]domain.StudentAssessmentItem, error) {
	const query = `
        WITH base_ass AS (
            SELECT a.id, false AS is_quiz, a.type, a.total_marks, a.start_at,
                   COALESCE(a.due_at, a.due_date::timestamptz) AS due_at,
                   a.course_id, c.code AS course_code, c.name AS course_name,
                   f.name AS faculty_name
            FROM assessments a
            JOIN courses c ON c.id = a.course_id
            JOIN faculty f ON f.id = a.faculty_id
            WHERE a.class_id = $2
        ), base_quiz AS (
            SELECT q.id, true AS is_quiz, 'Quiz'::text AS type, q.total_marks, q.start_at,
                   q.end_at AS due_at, q.course_id, c.code AS course_code, c.name AS course_name,
                   f.name AS faculty_name
            FROM quizzes q
            JOIN courses c ON c.id = q.course_id
            JOIN faculty f ON f.id = q.faculty_id
            WHERE q.class_id = $2
        ), unioned AS (
            SELECT * FROM base_ass
            UNION ALL
            SELECT * FROM base_quiz
        )
        SELECT u.id, u.is_quiz, u.type, u.total_marks, u.start_at, u.due_at,
               u.course_id, u.course_code, u.course_name, u.faculty_name,
               s.marks AS submission_marks, s.submitted_at AS submission_time,
               (CASE WHEN u.is_quiz THEN EXISTS (
                         SELECT 1 FROM quiz_submissions qs WHERE qs.quiz_id = u.id AND qs.student_id = $1
                     )
                     ELSE (s.assessment_id IS NOT NULL)
                END) AS submitted
        FROM unioned u
        LEFT JOIN submissions s ON (NOT u.is_quiz AND s.assessment_id = u.id AND s.student_id = $1)
        ORDER BY u.due_at NULLS LAST
    `
	items := []domain.StudentAssessmentItem{}
	if err := r.db.SelectContext(ctx, &items, query, studentID, classID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AssessmentRepository) StudentPerformance(ctx context.Context, studentID int64) ([]domain.PerformanceItem, error) {
	const query = `
        WITH cls AS (
            SELECT class_id FROM students WHERE id = $1
        ), perf_ass AS (
            SELECT a.id AS item_id, false AS is_quiz, a.type, a.total_marks,
                   c.code AS course_code, c.name AS course_name,
                   s.marks, s.submitted_at
            FROM assessments a
            JOIN cls ON a.class_id = cls.class_id
            JOIN courses c ON c.id = a.course_id
            LEFT JOIN submissions s ON s.assessment_id = a.id AND s.student_id = $1
        ), perf_quiz AS (
            SELECT q.id AS item_id, true AS is_quiz, 'Quiz'::text AS type, q.total_marks,
                   c.code AS course_code, c.name AS course_name,
                   qs.total_obtained AS marks, qs.submitted_at
            FROM quizzes q
            JOIN cls ON q.class_id = cls.class_id
            JOIN courses c ON c.id = q.course_id
            LEFT JOIN quiz_submissions qs ON qs.quiz_id = q.id AND qs.student_id = $1
        )
        SELECT * FROM perf_ass
        UNION ALL
        SELECT * FROM perf_quiz
        ORDER BY submitted_at DESC NULLS LAST, course_code, type
    `
	items := []domain.PerformanceItem{}
	if err := r.db.SelectContext(ctx, &items, query, studentID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AssessmentRepository) ClassPerformance(ctx context.Context, facultyID, classID, courseID int64) ([]domain.StudentAverage, error) {
	const query = `
        SELECT st.id AS student_id, st.name AS student_name,
               ROUND(AVG(s.marks)::numeric, 2) AS average
        FROM students st
        LEFT JOIN submissions s ON s.student_id = st.id
        LEFT JOIN assessments a ON a.id = s.assessment_id
            AND a.faculty_id = $1 AND a.class_id = $2 AND a.course_id = $3
        WHERE st.class_id = $2
        GROUP BY st.id, st.name
        ORDER BY st.name
    `
	averages := []domain.StudentAverage{}
	if err := r.db.SelectContext(ctx, &averages, query, facultyID, classID, courseID); err != nil {
		return nil, err
	}
	return averages, nil
}
