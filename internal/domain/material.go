package domain

import "time"

type Material struct {
	ID        int64     `db:"id" json:"id"`
	FacultyID int64     `db:"faculty_id" json:"faculty_id"`
	ClassID   int64     `db:"class_id" json:"class_id"`
	ClassName *string   `db:"class_name" json:"class_name,omitempty"`
	CourseID  *int64    `db:"course_id" json:"course_id,omitempty"`
	Title     string    `db:"title" json:"title"`
	Link      *string   `db:"link" json:"link,omitempty"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Announcement struct {
	ID        int64     `db:"id" json:"id"`
	FacultyID int64     `db:"faculty_id" json:"faculty_id"`
	ClassID   *int64    `db:"class_id" json:"class_id,omitempty"`
	ClassName *string   `db:"class_name" json:"class_name,omitempty"`
	Title     string    `db:"title" json:"title"`
	Body      *string   `db:"body" json:"body,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
