package domain

import "time"

type Quiz struct {
	ID             int64      `db:"id" json:"id"`
	FacultyID      int64      `db:"faculty_id" json:"faculty_id"`
	CourseID       int64      `db:"course_id" json:"course_id"`
	ClassID        int64      `db:"class_id" json:"class_id"`
	Title          string     `db:"title" json:"title"`
	Instructions   *string    `db:"instructions" json:"instructions,omitempty"`
	TotalMarks     int        `db:"total_marks" json:"total_marks"`
	StartAt        *time.Time `db:"start_at" json:"start_at,omitempty"`
	EndAt          *time.Time `db:"end_at" json:"end_at,omitempty"`
	CourseCode     *string    `db:"course_code" json:"course_code,omitempty"`
	CourseName     *string    `db:"course_name" json:"course_name,omitempty"`
	ClassName      *string    `db:"class_name" json:"class_name,omitempty"`
	QuestionsCount int64      `db:"questions_count" json:"questions_count,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
}

type QuizQuestion struct {
	ID      int64        `db:"id" json:"id"`
	QuizID  int64        `db:"quiz_id" json:"quiz_id"`
	Index   int          `db:"q_index" json:"q_index"`
	Text    string       `db:"text" json:"text"`
	Type    string       `db:"type" json:"type"`
	Marks   int          `db:"marks" json:"marks"`
	Options []QuizOption `db:"-" json:"options"`
}

type QuizOption struct {
	ID         int64  `db:"id" json:"id"`
	QuestionID int64  `db:"question_id" json:"question_id"`
	Index      int    `db:"o_index" json:"o_index"`
	Text       string `db:"text" json:"text"`
	IsCorrect  bool   `db:"is_correct" json:"-"`
}

type QuizSubmission struct {
	ID            int64     `db:"id" json:"id"`
	QuizID        int64     `db:"quiz_id" json:"quiz_id"`
	StudentID     int64     `db:"student_id" json:"student_id"`
	SubmittedAt   time.Time `db:"submitted_at" json:"submitted_at"`
	TotalObtained int       `db:"total_obtained" json:"total_obtained"`
}

// QuizAnswer is a student's chosen option for one question.
type QuizAnswer struct {
	QuestionID       int64  `json:"question_id"`
	SelectedOptionID *int64 `json:"selected_option_id"`
}

// CorrectOption pairs a question's correct option with its marks.
type CorrectOption struct {
	OptionID int64
	Marks    int
}

// ScoredAnswer is an evaluated answer ready to persist.
type ScoredAnswer struct {
	QuestionID       int64
	SelectedOptionID *int64
	Obtained         int
}

// NewQuiz is the validated payload for quiz creation, questions included.
type NewQuiz struct {
	Title        string
	CourseID     int64
	ClassID      int64
	Instructions *string
	TotalMarks   int
	StartAt      *time.Time
	EndAt        *time.Time
	Questions    []NewQuizQuestion
}

type NewQuizQuestion struct {
	Text    string
	Marks   int
	Options []NewQuizOption
}

type NewQuizOption struct {
	Text      string
	IsCorrect bool
}
