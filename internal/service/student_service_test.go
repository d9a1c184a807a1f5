package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/campuscore/campus-backend/internal/domain"
)

type fakeQuizRepo struct {
	quizzes     map[int64]*domain.Quiz
	correct     map[int64]map[int64]domain.CorrectOption
	submissions map[int64]map[int64]bool
	recorded    []domain.ScoredAnswer
	total       int
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{
		quizzes:     make(map[int64]*domain.Quiz),
		correct:     make(map[int64]map[int64]domain.CorrectOption),
		submissions: make(map[int64]map[int64]bool),
	}
}

func (r *fakeQuizRepo) Create(_ context.Context, _ int64, quiz domain.NewQuiz) (int64, error) {
	id := int64(len(r.quizzes) + 1)
	r.quizzes[id] = &domain.Quiz{ID: id, ClassID: quiz.ClassID, TotalMarks: quiz.TotalMarks}
	return id, nil
}

func (r *fakeQuizRepo) ListByFaculty(context.Context, int64) ([]domain.Quiz, error) { return nil, nil }

func (r *fakeQuizRepo) OwnedByFaculty(context.Context, int64, int64) (bool, error) {
	return false, nil
}

func (r *fakeQuizRepo) OverrideScore(context.Context, int64, int64, int) error { return nil }

func (r *fakeQuizRepo) ListForClass(context.Context, int64) ([]domain.Quiz, error) { return nil, nil }

func (r *fakeQuizRepo) FindForClass(_ context.Context, quizID, classID int64) (*domain.Quiz, error) {
	quiz, ok := r.quizzes[quizID]
	if !ok || quiz.ClassID != classID {
		return nil, sql.ErrNoRows
	}
	return quiz, nil
}

func (r *fakeQuizRepo) Questions(context.Context, int64) ([]domain.QuizQuestion, error) {
	return nil, nil
}

func (r *fakeQuizRepo) HasSubmission(_ context.Context, quizID, studentID int64) (bool, error) {
	return r.submissions[quizID][studentID], nil
}

func (r *fakeQuizRepo) CorrectOptions(_ context.Context, quizID int64) (map[int64]domain.CorrectOption, error) {
	return r.correct[quizID], nil
}

func (r *fakeQuizRepo) RecordSubmission(_ context.Context, quizID, studentID int64, total int, answers []domain.ScoredAnswer) error {
	if r.submissions[quizID] == nil {
		r.submissions[quizID] = make(map[int64]bool)
	}
	r.submissions[quizID][studentID] = true
	r.total = total
	r.recorded = answers
	return nil
}

func quizFixture(t *testing.T) (*StudentService, *fakeQuizRepo, *time.Time) {
	t.Helper()

	students := newFakeStudentRepo()
	classID := int64(5)
	students.byEmail["amy@college.edu"] = &domain.Student{
		ID:      7,
		Email:   "amy@college.edu",
		ClassID: &classID,
		Status:  domain.StatusActive,
	}

	quizzes := newFakeQuizRepo()
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	quizzes.quizzes[1] = &domain.Quiz{ID: 1, ClassID: 5, TotalMarks: 10, StartAt: &start, EndAt: &end}
	quizzes.correct[1] = map[int64]domain.CorrectOption{
		101: {OptionID: 1011, Marks: 4},
		102: {OptionID: 1022, Marks: 6},
	}

	svc := NewStudentService(students, nil, nil, nil, nil, quizzes, nil)
	now := start.Add(10 * time.Minute)
	clock := &now
	svc.now = func() time.Time { return *clock }
	return svc, quizzes, clock
}

func TestStudentService_SubmitQuizScoresServerSide(t *testing.T) {
	svc, quizzes, _ := quizFixture(t)
	ctx := context.Background()

	wrong := int64(9999)
	right := int64(1022)
	total, err := svc.SubmitQuiz(ctx, 7, 1, []domain.QuizAnswer{
		{QuestionID: 101, SelectedOptionID: &wrong},
		{QuestionID: 102, SelectedOptionID: &right},
		{QuestionID: 999, SelectedOptionID: &right}, // unknown question is skipped
	})
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if total != 6 {
		t.Fatalf("expected 6 marks, got %d", total)
	}
	if len(quizzes.recorded) != 2 {
		t.Fatalf("expected 2 recorded answers, got %d", len(quizzes.recorded))
	}
	if quizzes.recorded[0].Obtained != 0 || quizzes.recorded[1].Obtained != 6 {
		t.Fatalf("unexpected per-answer scores: %+v", quizzes.recorded)
	}

	// Second attempt is rejected.
	if _, err := svc.SubmitQuiz(ctx, 7, 1, []domain.QuizAnswer{{QuestionID: 101, SelectedOptionID: &right}}); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestStudentService_SubmitQuizWindow(t *testing.T) {
	svc, quizzes, clock := quizFixture(t)
	ctx := context.Background()
	option := int64(1011)
	answers := []domain.QuizAnswer{{QuestionID: 101, SelectedOptionID: &option}}

	*clock = quizzes.quizzes[1].StartAt.Add(-time.Minute)
	if _, err := svc.SubmitQuiz(ctx, 7, 1, answers); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}

	*clock = quizzes.quizzes[1].EndAt.Add(time.Minute)
	if _, err := svc.SubmitQuiz(ctx, 7, 1, answers); !errors.Is(err, ErrWindowClosed) {
		t.Fatalf("expected ErrWindowClosed, got %v", err)
	}
}

func TestStudentService_SubmitQuizWrongClass(t *testing.T) {
	svc, quizzes, _ := quizFixture(t)
	ctx := context.Background()

	quizzes.quizzes[1].ClassID = 6
	option := int64(1011)
	if _, err := svc.SubmitQuiz(ctx, 7, 1, []domain.QuizAnswer{{QuestionID: 101, SelectedOptionID: &option}}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
