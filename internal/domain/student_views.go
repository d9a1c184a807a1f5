package domain

import "time"

// StudentAssessmentItem is one row of a student's combined work list:
// regular assessments and quizzes unioned, with the student's own
// submission state attached.
type StudentAssessmentItem struct {
	ID              int64      `db:"id" json:"id"`
	IsQuiz          bool       `db:"is_quiz" json:"is_quiz"`
	Type            string     `db:"type" json:"type"`
	TotalMarks      int        `db:"total_marks" json:"total_marks"`
	StartAt         *time.Time `db:"start_at" json:"start_at,omitempty"`
	DueAt           *time.Time `db:"due_at" json:"due_at,omitempty"`
	CourseID        int64      `db:"course_id" json:"course_id"`
	CourseCode      string     `db:"course_code" json:"course_code"`
	CourseName      string     `db:"course_name" json:"course_name"`
	FacultyName     string     `db:"faculty_name" json:"faculty_name"`
	SubmissionMarks *int       `db:"submission_marks" json:"submission_marks,omitempty"`
	SubmissionTime  *time.Time `db:"submission_time" json:"submission_time,omitempty"`
	Submitted       bool       `db:"submitted" json:"submitted"`
}

// StudentSubmissionItem is a student's submission joined with its assessment.
type StudentSubmissionItem struct {
	ID           int64      `db:"id" json:"id"`
	AssessmentID int64      `db:"assessment_id" json:"assessment_id"`
	SubmittedAt  *time.Time `db:"submitted_at" json:"submitted_at,omitempty"`
	Marks        *int       `db:"marks" json:"marks,omitempty"`
	Feedback     *string    `db:"feedback" json:"feedback,omitempty"`
	Type         string     `db:"type" json:"type"`
	TotalMarks   int        `db:"total_marks" json:"total_marks"`
	CourseID     int64      `db:"course_id" json:"course_id"`
	CourseCode   string     `db:"course_code" json:"course_code"`
	CourseName   string     `db:"course_name" json:"course_name"`
}

// PerformanceItem is one graded (or pending) item in a student's performance
// view, covering both assessments and quizzes.
type PerformanceItem struct {
	ItemID      int64      `db:"item_id" json:"item_id"`
	IsQuiz      bool       `db:"is_quiz" json:"is_quiz"`
	Type        string     `db:"type" json:"type"`
	TotalMarks  int        `db:"total_marks" json:"total_marks"`
	CourseCode  string     `db:"course_code" json:"course_code"`
	CourseName  string     `db:"course_name" json:"course_name"`
	Marks       *int       `db:"marks" json:"marks,omitempty"`
	SubmittedAt *time.Time `db:"submitted_at" json:"submitted_at,omitempty"`
}

// AttendanceHistoryItem is one dated presence record in a student's history.
type AttendanceHistoryItem struct {
	Date      time.Time `db:"date" json:"date"`
	Present   bool      `db:"present" json:"present"`
	ClassName string    `db:"class_name" json:"class_name"`
}

// AttendanceSummary aggregates a student's attendance counts.
type AttendanceSummary struct {
	Total      int  `db:"total" json:"total"`
	Present    int  `db:"present" json:"present"`
	Percentage *int `json:"percentage"`
}
