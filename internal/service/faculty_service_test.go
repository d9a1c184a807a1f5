package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campuscore/campus-backend/internal/domain"
)

// fakeAcademicsRepo only answers the teaching-permission checks; the admin
// CRUD surface is untested here.
type fakeAcademicsRepo struct {
	canTeach bool
}

func (r *fakeAcademicsRepo) CreateDepartment(context.Context, string) (*domain.Department, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeAcademicsRepo) ListDepartments(context.Context) ([]domain.Department, error) {
	return nil, nil
}

func (r *fakeAcademicsRepo) CreateClass(context.Context, int64, string) (*domain.Class, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeAcademicsRepo) ListClasses(context.Context, *int64) ([]domain.Class, error) {
	return nil, nil
}

func (r *fakeAcademicsRepo) CreateCourse(context.Context, int64, string, string) (*domain.Course, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeAcademicsRepo) ListCourses(context.Context, *int64) ([]domain.Course, error) {
	return nil, nil
}

func (r *fakeAcademicsRepo) MapCourseToClass(context.Context, int64, int64) (*domain.ClassCourse, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeAcademicsRepo) ListClassCourses(context.Context, int64) ([]domain.ClassCourse, error) {
	return nil, nil
}

func (r *fakeAcademicsRepo) ListAllClassCourses(context.Context) ([]domain.ClassCourse, error) {
	return nil, nil
}

func (r *fakeAcademicsRepo) AssignFaculty(context.Context, int64, int64, *int64) (*domain.FacultyAssignment, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeAcademicsRepo) ListAssignments(context.Context, domain.AssignmentFilter) ([]domain.FacultyAssignment, error) {
	return nil, nil
}

func (r *fakeAcademicsRepo) CanTeachCourseInClass(context.Context, int64, int64, *int64) (bool, error) {
	return r.canTeach, nil
}

func (r *fakeAcademicsRepo) CanTeachClass(context.Context, int64, int64) (bool, error) {
	return r.canTeach, nil
}

func (r *fakeAcademicsRepo) LogActivity(context.Context, *int64, string, any) error { return nil }

func validQuiz() domain.NewQuiz {
	return domain.NewQuiz{
		Title:      "Unit 3 checkpoint",
		CourseID:   2,
		ClassID:    5,
		TotalMarks: 10,
		Questions: []domain.NewQuizQuestion{
			{
				Text:  "Pick A",
				Marks: 4,
				Options: []domain.NewQuizOption{
					{Text: "A", IsCorrect: true},
					{Text: "B"},
				},
			},
			{
				Text:  "Pick B",
				Marks: 6,
				Options: []domain.NewQuizOption{
					{Text: "A"},
					{Text: "B", IsCorrect: true},
				},
			},
		},
	}
}

func TestFacultyService_CreateQuiz(t *testing.T) {
	academics := &fakeAcademicsRepo{canTeach: true}
	quizzes := newFakeQuizRepo()
	svc := NewFacultyService(nil, nil, academics, nil, nil, nil, quizzes)
	ctx := context.Background()

	if _, err := svc.CreateQuiz(ctx, 3, validQuiz()); err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
}

func TestFacultyService_CreateQuizValidation(t *testing.T) {
	academics := &fakeAcademicsRepo{canTeach: true}
	svc := NewFacultyService(nil, nil, academics, nil, nil, nil, newFakeQuizRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*domain.NewQuiz)
	}{
		{"missing title", func(q *domain.NewQuiz) { q.Title = "" }},
		{"no questions", func(q *domain.NewQuiz) { q.Questions = nil }},
		{"single option", func(q *domain.NewQuiz) {
			q.Questions[0].Options = q.Questions[0].Options[:1]
		}},
		{"no correct option", func(q *domain.NewQuiz) {
			q.Questions[0].Options[0].IsCorrect = false
		}},
		{"two correct options", func(q *domain.NewQuiz) {
			q.Questions[0].Options[1].IsCorrect = true
		}},
		{"marks mismatch", func(q *domain.NewQuiz) { q.TotalMarks = 11 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quiz := validQuiz()
			tc.mutate(&quiz)
			if _, err := svc.CreateQuiz(ctx, 3, quiz); !errors.Is(err, ErrQuizValidation) {
				t.Fatalf("expected ErrQuizValidation, got %v", err)
			}
		})
	}
}

func TestFacultyService_CreateQuizRequiresAssignment(t *testing.T) {
	academics := &fakeAcademicsRepo{canTeach: false}
	svc := NewFacultyService(nil, nil, academics, nil, nil, nil, newFakeQuizRepo())

	if _, err := svc.CreateQuiz(context.Background(), 3, validQuiz()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
