package ports

import (
	"context"
	"time"

	"github.com/campuscore/campus-backend/internal/domain"
)

type NewAssessment struct {
	FacultyID    int64
	CourseID     int64
	ClassID      int64
	Type         string
	TotalMarks   int
	DueDate      time.Time
	Instructions *string
	StartAt      *time.Time
	DueAt        *time.Time
}

type AssessmentRepository interface {
	Create(ctx context.Context, a NewAssessment) (*domain.Assessment, error)
	ListByFaculty(ctx context.Context, facultyID int64, classID *int64) ([]domain.Assessment, error)
	FindForFaculty(ctx context.Context, id, facultyID int64) (*domain.Assessment, error)
	FindForClass(ctx context.Context, id, classID int64) (*domain.Assessment, error)

	ListSubmissions(ctx context.Context, assessmentID int64) ([]domain.Submission, error)
	FindSubmission(ctx context.Context, submissionID int64) (*domain.Submission, error)
	SubmissionOwnedByFaculty(ctx context.Context, submissionID, facultyID int64) (bool, error)
	Grade(ctx context.Context, submissionID int64, marks int, feedback *string) error

	// UpsertSubmission creates or refreshes a submission, dropping previously
	// attached files, and returns the submission id.
	UpsertSubmission(ctx context.Context, assessmentID, studentID int64, contentText *string) (int64, error)
	AttachFile(ctx context.Context, submissionID int64, filename, path string, mime *string, size *int64) (*domain.UploadedFile, error)

	ListStudentSubmissions(ctx context.Context, studentID int64) ([]domain.StudentSubmissionItem, error)
	ListStudentWork(ctx context.Context, studentID, classID int64) ([]domain.StudentAssessmentItem, error)
	StudentPerformance(ctx context.Context, studentID int64) ([]domain.PerformanceItem, error)
	ClassPerformance(ctx context.Context, facultyID, classID, courseID int64) ([]domain.StudentAverage, error)
}
