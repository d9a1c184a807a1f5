package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/campuscore/campus-backend/internal/domain"
)

type QuizRepository struct {
	db *sqlx.DB
}

func NewQuizRepo(db *sqlx.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) Create(ctx context.Context, facultyID int64, quiz domain.NewQuiz) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var quizID int64
	err = tx.GetContext(ctx, &quizID, `
        INSERT INTO quizzes (faculty_id, course_id, class_id, title, instructions, total_marks, start_at, end_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`,
		facultyID, quiz.CourseID, quiz.ClassID, quiz.Title, quiz.Instructions, quiz.TotalMarks, quiz.StartAt, quiz.EndAt,
	)
	if err != nil {
		return 0, err
	}

	for qi, question := range quiz.Questions {
		var questionID int64
		err = tx.GetContext(ctx, &questionID, `
            INSERT INTO quiz_questions (quiz_id, q_index, text, type, marks)
            VALUES ($1, $2, $3, 'mcq', $4)
            RETURNING id`,
			quizID, qi+1, question.Text, question.Marks,
		)
		if err != nil {
			return 0, err
		}
		for oi, option := range question.Options {
			if _, err := tx.ExecContext(ctx, `
                INSERT INTO quiz_options (question_id, o_index, text, is_correct)
                VALUES ($1, $2, $3, $4)`,
				questionID, oi+1, option.Text, option.IsCorrect,
			); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return quizID, nil
}

func (r *QuizRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]domain.Quiz, error) {
	const query = `
        SELECT q.id, q.faculty_id, q.course_id, q.class_id, q.title, q.instructions,
               q.total_marks, q.start_at, q.end_at, q.created_at,
               c.code AS course_code, c.name AS course_name, cl.name AS class_name,
               (SELECT COUNT(*) FROM quiz_questions qq WHERE qq.quiz_id = q.id) AS questions_count
        FROM quizzes q
        JOIN courses c ON c.id = q.course_id
        JOIN classes cl ON cl.id = q.class_id
        WHERE q.faculty_id = $1
        ORDER BY q.id DESC
    `
	quizzes := []domain.Quiz{}
	if err := r.db.SelectContext(ctx, &quizzes, query, facultyID); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *QuizRepository) OwnedByFaculty(ctx context.Context, quizID, facultyID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM quizzes WHERE id = $1 AND faculty_id = $2)`
	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, quizID, facultyID); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *QuizRepository) OverrideScore(ctx context.Context, quizID, studentID int64, marks int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE quiz_submissions SET total_obtained = $1 WHERE quiz_id = $2 AND student_id = $3`,
		marks, quizID, studentID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *QuizRepository) ListForClass(ctx context.Context, classID int64) ([]domain.Quiz, error) {
	const query = `
        SELECT q.id, q.faculty_id, q.course_id, q.class_id, q.title, q.instructions,
               q.total_marks, q.start_at, q.end_at, q.created_at,
               c.code AS course_code, c.name AS course_name
        FROM quizzes q
        JOIN courses c ON c.id = q.course_id
        WHERE q.class_id = $1
        ORDER BY q.start_at NULLS LAST, q.id DESC
    `
	quizzes := []domain.Quiz{}
	if err := r.db.SelectContext(ctx, &quizzes, query, classID); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *QuizRepository) FindForClass(ctx context.Context, quizID, classID int64) (*domain.Quiz, error) {
	const query = `
        SELECT id, faculty_id, course_id, class_id, title, instructions, total_marks, start_at, end_at, created_at
        FROM quizzes
        WHERE id = $1 AND class_id = $2
    `
	var quiz domain.Quiz
	if err := r.db.GetContext(ctx, &quiz, query, quizID, classID); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Questions(ctx context.Context, quizID int64) ([]domain.QuizQuestion, error) {
	const questionsQuery = `
        SELECT id, quiz_id, q_index, text, type, marks
        FROM quiz_questions
        WHERE quiz_id = $1
        ORDER BY q_index
    `
	questions := []domain.QuizQuestion{}
	if err := r.db.SelectContext(ctx, &questions, questionsQuery, quizID); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return questions, nil
	}

	ids := make([]int64, len(questions))
	index := make(map[int64]*domain.QuizQuestion, len(questions))
	for i := range questions {
		ids[i] = questions[i].ID
		index[questions[i].ID] = &questions[i]
	}

	query, args, err := sqlx.In(`
        SELECT id, question_id, o_index, text, is_correct
        FROM quiz_options
        WHERE question_id IN (?)
        ORDER BY question_id, o_index`, ids)
	if err != nil {
		return nil, err
	}
	options := []domain.QuizOption{}
	if err := r.db.SelectContext(ctx, &options, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, option := range options {
		q := index[option.QuestionID]
		q.Options = append(q.Options, option)
	}
	return questions, nil
}

func (r *QuizRepository) HasSubmission(ctx context.Context, quizID, studentID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM quiz_submissions WHERE quiz_id = $1 AND student_id = $2)`
	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, quizID, studentID); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *QuizRepository) CorrectOptions(ctx context.Context, quizID int64) (map[int64]domain.CorrectOption, error) {
	const query = `
        SELECT qq.id AS question_id, qo.id AS option_id, qq.marks
        FROM quiz_questions qq
        JOIN quiz_options qo ON qo.question_id = qq.id AND qo.is_correct
        WHERE qq.quiz_id = $1
    `
	rows, err := r.db.QueryxContext(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	correct := make(map[int64]domain.CorrectOption)
	for rows.Next() {
		var questionID, optionID int64
		var marks int
		if err := rows.Scan(&questionID, &optionID, &marks); err != nil {
			return nil, err
		}
		correct[questionID] = domain.CorrectOption{OptionID: optionID, Marks: marks}
	}
	return correct, rows.Err()
}

func (r *QuizRepository) RecordSubmission(ctx context.Context, quizID, studentID int64, total int, answers []domain.ScoredAnswer) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var submissionID int64
	err = tx.GetContext(ctx, &submissionID, `
        INSERT INTO quiz_submissions (quiz_id, student_id, total_obtained)
        VALUES ($1, $2, $3)
        RETURNING id`,
		quizID, studentID, total,
	)
	if err != nil {
		return err
	}
	for _, answer := range answers {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO quiz_answers (submission_id, question_id, selected_option_id, obtained)
            VALUES ($1, $2, $3, $4)`,
			submissionID, answer.QuestionID, answer.SelectedOptionID, answer.Obtained,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
