package domain

import "time"

type Assessment struct {
	ID           int64      `db:"id" json:"id"`
	FacultyID    int64      `db:"faculty_id" json:"faculty_id"`
	CourseID     int64      `db:"course_id" json:"course_id"`
	ClassID      int64      `db:"class_id" json:"class_id"`
	Type         string     `db:"type" json:"type"`
	TotalMarks   int        `db:"total_marks" json:"total_marks"`
	DueDate      time.Time  `db:"due_date" json:"due_date"`
	Instructions *string    `db:"instructions" json:"instructions,omitempty"`
	StartAt      *time.Time `db:"start_at" json:"start_at,omitempty"`
	DueAt        *time.Time `db:"due_at" json:"due_at,omitempty"`
	CourseCode   *string    `db:"course_code" json:"course_code,omitempty"`
	CourseName   *string    `db:"course_name" json:"course_name,omitempty"`
	ClassName    *string    `db:"class_name" json:"class_name,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

type Submission struct {
	ID           int64      `db:"id" json:"id"`
	AssessmentID int64      `db:"assessment_id" json:"assessment_id"`
	StudentID    int64      `db:"student_id" json:"student_id"`
	StudentName  *string    `db:"student_name" json:"student_name,omitempty"`
	Marks        *int       `db:"marks" json:"marks,omitempty"`
	Feedback     *string    `db:"feedback" json:"feedback,omitempty"`
	ContentText  *string    `db:"content_text" json:"content_text,omitempty"`
	SubmittedAt  *time.Time `db:"submitted_at" json:"submitted_at,omitempty"`
	Files        []UploadedFile `db:"-" json:"files,omitempty"`
}

type UploadedFile struct {
	ID           int64     `db:"id" json:"id"`
	SubmissionID int64     `db:"submission_id" json:"submission_id"`
	Filename     string    `db:"filename" json:"filename"`
	Path         string    `db:"path" json:"path"`
	Mime         *string   `db:"mime" json:"mime,omitempty"`
	Size         *int64    `db:"size" json:"size,omitempty"`
	URL          string    `db:"-" json:"url,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// StudentAverage is a per-student mark average for one class/course pair.
type StudentAverage struct {
	StudentID   int64    `db:"student_id" json:"student_id"`
	StudentName string   `db:"student_name" json:"student_name"`
	Average     *float64 `db:"average" json:"average,omitempty"`
}
