package ports

import (
	"context"

	"github.com/campuscore/campus-backend/internal/domain"
)

type QuizRepository interface {
	// Create stores the quiz with its questions and options in one
	// transaction and returns the quiz id.
	Create(ctx context.Context, facultyID int64, quiz domain.NewQuiz) (int64, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]domain.Quiz, error)
	OwnedByFaculty(ctx context.Context, quizID, facultyID int64) (bool, error)
	OverrideScore(ctx context.Context, quizID, studentID int64, marks int) error

	ListForClass(ctx context.Context, classID int64) ([]domain.Quiz, error)
	FindForClass(ctx context.Context, quizID, classID int64) (*domain.Quiz, error)
	// Questions returns the quiz's questions with options; correct-answer
	// flags stay server-side.
	Questions(ctx context.Context, quizID int64) ([]domain.QuizQuestion, error)
	HasSubmission(ctx context.Context, quizID, studentID int64) (bool, error)
	// CorrectOptions maps question id to its correct option id and marks.
	CorrectOptions(ctx context.Context, quizID int64) (map[int64]domain.CorrectOption, error)
	// RecordSubmission stores the attempt with per-question answers and the
	// computed total in one transaction.
	RecordSubmission(ctx context.Context, quizID, studentID int64, total int, answers []domain.ScoredAnswer) error
}
