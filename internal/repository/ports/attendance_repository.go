package ports

import (
	"context"
	"time"

	"github.com/campuscore/campus-backend/internal/domain"
)

type AttendanceRepository interface {
	ListForClassDate(ctx context.Context, facultyID, classID int64, date time.Time) ([]domain.AttendanceRecord, error)
	// BulkUpsert records presence for a class on a date; existing rows for the
	// same (class, date, student) are overwritten.
	BulkUpsert(ctx context.Context, facultyID, classID int64, date time.Time, marks []domain.AttendanceMark) error
	History(ctx context.Context, studentID int64) ([]domain.AttendanceHistoryItem, error)
	Summary(ctx context.Context, studentID int64) (*domain.AttendanceSummary, error)
}
