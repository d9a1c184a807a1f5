package service

import (
	"context"
	"errors"
	"time"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/repository/ports"
)

var ErrQuizValidation = errors.New("quiz validation failed")

// FacultyService covers everything a signed-in faculty member does. Writes
// are authorized against the faculty's teaching assignments before touching
// the data.
type FacultyService struct {
	faculty     ports.FacultyRepository
	students    ports.StudentRepository
	academics   ports.AcademicsRepository
	assessments ports.AssessmentRepository
	attendance  ports.AttendanceRepository
	materials   ports.MaterialRepository
	quizzes     ports.QuizRepository
}

func NewFacultyService(
	faculty ports.FacultyRepository,
	students ports.StudentRepository,
	academics ports.AcademicsRepository,
	assessments ports.AssessmentRepository,
	attendance ports.AttendanceRepository,
	materials ports.MaterialRepository,
	quizzes ports.QuizRepository,
) *FacultyService {
	return &FacultyService{
		faculty:     faculty,
		students:    students,
		academics:   academics,
		assessments: assessments,
		attendance:  attendance,
		materials:   materials,
		quizzes:     quizzes,
	}
}

func (s *FacultyService) Profile(ctx context.Context, facultyID int64) (*domain.FacultyProfile, error) {
	profile, err := s.faculty.Profile(ctx, facultyID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

type AssessmentCreateInput struct {
	ClassID      int64
	CourseID     int64
	Type         string
	TotalMarks   int
	DueDate      time.Time
	Instructions *string
	StartAt      *time.Time
	DueAt        *time.Time
}

func (s *FacultyService) CreateAssessment(ctx context.Context, facultyID int64, input AssessmentCreateInput) (*domain.Assessment, error) {
	ok, err := s.academics.CanTeachCourseInClass(ctx, facultyID, input.CourseID, &input.ClassID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.assessments.Create(ctx, ports.NewAssessment{
		FacultyID:    facultyID,
		CourseID:     input.CourseID,
		ClassID:      input.ClassID,
		Type:         input.Type,
		TotalMarks:   input.TotalMarks,
		DueDate:      input.DueDate,
		Instructions: input.Instructions,
		StartAt:      input.StartAt,
		DueAt:        input.DueAt,
	})
}

func (s *FacultyService) ListAssessments(ctx context.Context, facultyID int64, classID *int64) ([]domain.Assessment, error) {
	return s.assessments.ListByFaculty(ctx, facultyID, classID)
}

// AssessmentDetail is an assessment plus every submission made against it.
type AssessmentDetail struct {
	Assessment  *domain.Assessment  `json:"assessment"`
	Submissions []domain.Submission `json:"submissions"`
}

func (s *FacultyService) AssessmentDetail(ctx context.Context, facultyID, assessmentID int64) (*AssessmentDetail, error) {
	assessment, err := s.assessments.FindForFaculty(ctx, assessmentID, facultyID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	submissions, err := s.assessments.ListSubmissions(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	return &AssessmentDetail{Assessment: assessment, Submissions: submissions}, nil
}

func (s *FacultyService) Submission(ctx context.Context, facultyID, submissionID int64) (*domain.Submission, error) {
	owned, err := s.assessments.SubmissionOwnedByFaculty(ctx, submissionID, facultyID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrForbidden
	}
	submission, err := s.assessments.FindSubmission(ctx, submissionID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return submission, nil
}

func (s *FacultyService) GradeSubmission(ctx context.Context, facultyID, submissionID int64, marks int, feedback *string) error {
	if marks < 0 {
		return ErrForbidden
	}
	owned, err := s.assessments.SubmissionOwnedByFaculty(ctx, submissionID, facultyID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrForbidden
	}
	return s.assessments.Grade(ctx, submissionID, marks, feedback)
}

func (s *FacultyService) OverrideQuizScore(ctx context.Context, facultyID, quizID, studentID int64, marks int) error {
	if marks < 0 {
		return ErrForbidden
	}
	owned, err := s.quizzes.OwnedByFaculty(ctx, quizID, facultyID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrForbidden
	}
	if err := s.quizzes.OverrideScore(ctx, quizID, studentID, marks); err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *FacultyService) Roster(ctx context.Context, facultyID, classID int64) ([]domain.StudentRef, error) {
	ok, err := s.academics.CanTeachClass(ctx, facultyID, classID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.students.Roster(ctx, classID)
}

func (s *FacultyService) Attendance(ctx context.Context, facultyID, classID int64, date time.Time) ([]domain.AttendanceRecord, error) {
	ok, err := s.academics.CanTeachClass(ctx, facultyID, classID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.attendance.ListForClassDate(ctx, facultyID, classID, date)
}

func (s *FacultyService) MarkAttendance(ctx context.Context, facultyID, classID int64, date time.Time, marks []domain.AttendanceMark) error {
	ok, err := s.academics.CanTeachClass(ctx, facultyID, classID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return s.attendance.BulkUpsert(ctx, facultyID, classID, date, marks)
}

func (s *FacultyService) CreateMaterial(ctx context.Context, facultyID, classID int64, courseID *int64, title string, link, note *string) (*domain.Material, error) {
	ok, err := s.academics.CanTeachClass(ctx, facultyID, classID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.materials.Create(ctx, facultyID, classID, courseID, title, link, note)
}

func (s *FacultyService) ListMaterials(ctx context.Context, facultyID int64) ([]domain.Material, error) {
	return s.materials.ListByFaculty(ctx, facultyID)
}

func (s *FacultyService) CreateAnnouncement(ctx context.Context, facultyID int64, classID *int64, title string, body *string) (*domain.Announcement, error) {
	if classID != nil {
		ok, err := s.academics.CanTeachClass(ctx, facultyID, *classID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrForbidden
		}
	}
	return s.materials.CreateAnnouncement(ctx, facultyID, classID, title, body)
}

func (s *FacultyService) ListAnnouncements(ctx context.Context, facultyID int64) ([]domain.Announcement, error) {
	return s.materials.ListAnnouncementsByFaculty(ctx, facultyID)
}

func (s *FacultyService) ClassPerformance(ctx context.Context, facultyID, classID, courseID int64) ([]domain.StudentAverage, error) {
	ok, err := s.academics.CanTeachCourseInClass(ctx, facultyID, courseID, &classID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.assessments.ClassPerformance(ctx, facultyID, classID, courseID)
}

func (s *FacultyService) CreateQuiz(ctx context.Context, facultyID int64, quiz domain.NewQuiz) (int64, error) {
	if quiz.Title == "" || len(quiz.Questions) == 0 {
		return 0, ErrQuizValidation
	}
	sum := 0
	for _, question := range quiz.Questions {
		if question.Text == "" || len(question.Options) < 2 {
			return 0, ErrQuizValidation
		}
		correct := 0
		for _, option := range question.Options {
			if option.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return 0, ErrQuizValidation
		}
		sum += question.Marks
	}
	if sum != quiz.TotalMarks {
		return 0, ErrQuizValidation
	}

	ok, err := s.academics.CanTeachCourseInClass(ctx, facultyID, quiz.CourseID, &quiz.ClassID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrForbidden
	}
	return s.quizzes.Create(ctx, facultyID, quiz)
}

func (s *FacultyService) ListQuizzes(ctx context.Context, facultyID int64) ([]domain.Quiz, error) {
	return s.quizzes.ListByFaculty(ctx, facultyID)
}
