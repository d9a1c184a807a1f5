package domain

import "time"

type AttendanceRecord struct {
	ID          int64     `db:"id" json:"id"`
	FacultyID   int64     `db:"faculty_id" json:"faculty_id"`
	ClassID     int64     `db:"class_id" json:"class_id"`
	Date        time.Time `db:"date" json:"date"`
	StudentID   int64     `db:"student_id" json:"student_id"`
	StudentName *string   `db:"student_name" json:"student_name,omitempty"`
	Present     bool      `db:"present" json:"present"`
}

// AttendanceMark is one student's presence flag inside a bulk upsert.
type AttendanceMark struct {
	StudentID int64 `json:"student_id"`
	Present   bool  `json:"present"`
}
