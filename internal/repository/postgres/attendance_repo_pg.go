package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campuscore/campus-backend/internal/domain"
)

type AttendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepo(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) ListForClassDate(ctx context.Context, facultyID, classID int64, date time.Time) ([]domain.AttendanceRecord, error) {
	const query = `
        SELECT ar.id, ar.faculty_id, ar.class_id, ar.date, ar.student_id,
               st.name AS student_name, ar.present
        FROM attendance_records ar
        JOIN students st ON st.id = ar.student_id
        WHERE ar.faculty_id = $1 AND ar.class_id = $2 AND ar.date = $3
        ORDER BY st.name
    `
	records := []domain.AttendanceRecord{}
	if err := r.db.SelectContext(ctx, &records, query, facultyID, classID, date); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *AttendanceRepository) BulkUpsert(ctx context.Context, facultyID, classID int64, date time.Time, marks []domain.AttendanceMark) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `
        INSERT INTO attendance_records (faculty_id, class_id, date, student_id, present)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (class_id, date, student_id)
        DO UPDATE SET present = EXCLUDED.present, faculty_id = EXCLUDED.faculty_id
    `
	for _, mark := range marks {
		if _, err := tx.ExecContext(ctx, query, facultyID, classID, date, mark.StudentID, mark.Present); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *AttendanceRepository) History(ctx context.Context, studentID int64) ([]domain.AttendanceHistoryItem, error) {
	const query = `
        SELECT ar.date, ar.present, cl.name AS class_name
        FROM attendance_records ar
        JOIN classes cl ON cl.id = ar.class_id
        WHERE ar.student_id = $1
        ORDER BY ar.date DESC
    `
	items := []domain.AttendanceHistoryItem{}
	if err := r.db.SelectContext(ctx, &items, query, studentID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AttendanceRepository) Summary(ctx context.Context, studentID int64) (*domain.AttendanceSummary, error) {
	const query = `
        SELECT COUNT(*) AS total,
               COUNT(*) FILTER (WHERE present) AS present
        FROM attendance_records
        WHERE student_id = $1
    `
	var summary domain.AttendanceSummary
	if err := r.db.GetContext(ctx, &summary, query, studentID); err != nil {
		return nil, err
	}
	if summary.Total > 0 {
		pct := int(float64(summary.Present)/float64(summary.Total)*100 + 0.5)
		summary.Percentage = &pct
	}
	return &summary, nil
}
