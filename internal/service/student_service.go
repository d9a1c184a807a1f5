package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/repository/ports"
)

var (
	ErrNotStarted       = errors.New("not open yet")
	ErrWindowClosed     = errors.New("closed")
	ErrAlreadySubmitted = errors.New("already submitted")
)

// StudentService covers the student-facing surface: the class's work items,
// submissions, attendance and quizzes. Every operation is scoped to the
// student's own class.
type StudentService struct {
	students    ports.StudentRepository
	academics   ports.AcademicsRepository
	assessments ports.AssessmentRepository
	attendance  ports.AttendanceRepository
	materials   ports.MaterialRepository
	quizzes     ports.QuizRepository
	storage     ports.ObjectStorage

	now func() time.Time
}

func NewStudentService(
	students ports.StudentRepository,
	academics ports.AcademicsRepository,
	assessments ports.AssessmentRepository,
	attendance ports.AttendanceRepository,
	materials ports.MaterialRepository,
	quizzes ports.QuizRepository,
	storage ports.ObjectStorage,
) *StudentService {
	return &StudentService{
		students:    students,
		academics:   academics,
		assessments: assessments,
		attendance:  attendance,
		materials:   materials,
		quizzes:     quizzes,
		storage:     storage,
		now:         time.Now,
	}
}

func (s *StudentService) classID(ctx context.Context, studentID int64) (int64, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if isNotFound(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if student.ClassID == nil {
		return 0, ErrNotFound
	}
	return *student.ClassID, nil
}

func (s *StudentService) Profile(ctx context.Context, studentID int64) (*domain.StudentProfile, error) {
	profile, err := s.students.Profile(ctx, studentID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *StudentService) Courses(ctx context.Context, studentID int64) ([]domain.ClassCourse, error) {
	classID, err := s.classID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.academics.ListClassCourses(ctx, classID)
}

func (s *StudentService) Assessments(ctx context.Context, studentID int64) ([]domain.StudentAssessmentItem, error) {
	classID, err := s.classID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.assessments.ListStudentWork(ctx, studentID, classID)
}

func (s *StudentService) Submissions(ctx context.Context, studentID int64) ([]domain.StudentSubmissionItem, error) {
	return s.assessments.ListStudentSubmissions(ctx, studentID)
}

func (s *StudentService) AttendanceHistory(ctx context.Context, studentID int64) ([]domain.AttendanceHistoryItem, error) {
	return s.attendance.History(ctx, studentID)
}

func (s *StudentService) AttendanceSummary(ctx context.Context, studentID int64) (*domain.AttendanceSummary, error) {
	return s.attendance.Summary(ctx, studentID)
}

func (s *StudentService) Materials(ctx context.Context, studentID int64, courseID *int64) ([]domain.Material, error) {
	classID, err := s.classID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.materials.ListForClass(ctx, classID, courseID)
}

func (s *StudentService) Announcements(ctx context.Context, studentID int64) ([]domain.Announcement, error) {
	classID, err := s.classID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.materials.ListAnnouncementsForClass(ctx, classID)
}

func (s *StudentService) Performance(ctx context.Context, studentID int64) ([]domain.PerformanceItem, error) {
	return s.assessments.StudentPerformance(ctx, studentID)
}

// openAssessment loads an assessment for the student's class and enforces
// its submission window.
func (s *StudentService) openAssessment(ctx context.Context, studentID, assessmentID int64) (*domain.Assessment, error) {
	classID, err := s.classID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	assessment, err := s.assessments.FindForClass(ctx, assessmentID, classID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	now := s.now()
	if assessment.StartAt != nil && now.Before(*assessment.StartAt) {
		return nil, ErrNotStarted
	}
	if assessment.DueAt != nil && now.After(*assessment.DueAt) {
		return nil, ErrWindowClosed
	}
	return assessment, nil
}

// SubmitText records (or refreshes) a text-only submission. Resubmission is
// allowed until the window closes; resubmitting drops previously attached
// files.
func (s *StudentService) SubmitText(ctx context.Context, studentID, assessmentID int64, content *string) (int64, error) {
	if _, err := s.openAssessment(ctx, studentID, assessmentID); err != nil {
		return 0, err
	}
	return s.assessments.UpsertSubmission(ctx, assessmentID, studentID, content)
}

type FileUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SubmitFile stores the uploaded file and attaches it to the student's
// submission for the assessment, creating the submission if needed.
func (s *StudentService) SubmitFile(ctx context.Context, studentID, assessmentID int64, content *string, upload FileUpload) (*domain.UploadedFile, error) {
	if _, err := s.openAssessment(ctx, studentID, assessmentID); err != nil {
		return nil, err
	}
	submissionID, err := s.assessments.UpsertSubmission(ctx, assessmentID, studentID, content)
	if err != nil {
		return nil, err
	}

	safeName := unsafeFileChars.ReplaceAllString(filepath.Base(upload.FileName), "_")
	objectName := fmt.Sprintf("submissions/%d/%s_%s", submissionID, uuid.NewString(), safeName)
	url, err := s.storage.Upload(ctx, objectName, upload.ContentType, upload.Reader, upload.Size)
	if err != nil {
		return nil, err
	}

	var mime *string
	if upload.ContentType != "" {
		mime = &upload.ContentType
	}
	var size *int64
	if upload.Size > 0 {
		size = &upload.Size
	}
	file, err := s.assessments.AttachFile(ctx, submissionID, safeName, url, mime, size)
	if err != nil {
		return nil, err
	}
	file.URL = url
	return file, nil
}

func (s *StudentService) Quizzes(ctx context.Context, studentID int64) ([]domain.Quiz, error) {
	classID, err := s.classID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.quizzes.ListForClass(ctx, classID)
}

// QuizDetail is a quiz with its questions; option rows never include the
// correct-answer flag.
type QuizDetail struct {
	Quiz             *domain.Quiz          `json:"quiz"`
	Questions        []domain.QuizQuestion `json:"questions"`
	AlreadySubmitted bool                  `json:"already_submitted"`
}

func (s *StudentService) QuizDetail(ctx context.Context, studentID, quizID int64) (*QuizDetail, error) {
	classID, err := s.classID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	quiz, err := s.quizzes.FindForClass(ctx, quizID, classID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	questions, err := s.quizzes.Questions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	submitted, err := s.quizzes.HasSubmission(ctx, quizID, studentID)
	if err != nil {
		return nil, err
	}
	return &QuizDetail{Quiz: quiz, Questions: questions, AlreadySubmitted: submitted}, nil
}

// SubmitQuiz scores the attempt server-side against the stored correct
// options and records it. One attempt per student; the quiz window is
// enforced.
func (s *StudentService) SubmitQuiz(ctx context.Context, studentID, quizID int64, answers []domain.QuizAnswer) (int, error) {
	classID, err := s.classID(ctx, studentID)
	if err != nil {
		return 0, err
	}
	quiz, err := s.quizzes.FindForClass(ctx, quizID, classID)
	if err != nil {
		if isNotFound(err) {
			return 0, ErrForbidden
		}
		return 0, err
	}
	now := s.now()
	if quiz.StartAt != nil && now.Before(*quiz.StartAt) {
		return 0, ErrNotStarted
	}
	if quiz.EndAt != nil && now.After(*quiz.EndAt) {
		return 0, ErrWindowClosed
	}
	submitted, err := s.quizzes.HasSubmission(ctx, quizID, studentID)
	if err != nil {
		return 0, err
	}
	if submitted {
		return 0, ErrAlreadySubmitted
	}

	correct, err := s.quizzes.CorrectOptions(ctx, quizID)
	if err != nil {
		return 0, err
	}

	total := 0
	scored := make([]domain.ScoredAnswer, 0, len(answers))
	for _, answer := range answers {
		key, ok := correct[answer.QuestionID]
		if !ok {
			continue
		}
		obtained := 0
		if answer.SelectedOptionID != nil && *answer.SelectedOptionID == key.OptionID {
			obtained = key.Marks
		}
		total += obtained
		scored = append(scored, domain.ScoredAnswer{
			QuestionID:       answer.QuestionID,
			SelectedOptionID: answer.SelectedOptionID,
			Obtained:         obtained,
		})
	}

	if err := s.quizzes.RecordSubmission(ctx, quizID, studentID, total, scored); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrAlreadySubmitted
		}
		return 0, err
	}
	return total, nil
}
