package domain

import "time"

type Department struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Class struct {
	ID           int64     `db:"id" json:"id"`
	DepartmentID int64     `db:"department_id" json:"department_id"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type Course struct {
	ID           int64     `db:"id" json:"id"`
	DepartmentID int64     `db:"department_id" json:"department_id"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ClassCourse is a course mapped to a class, optionally joined with the
// teaching faculty when listed from a student's point of view.
type ClassCourse struct {
	ID          int64   `db:"id" json:"id,omitempty"`
	ClassID     int64   `db:"class_id" json:"class_id"`
	ClassName   *string `db:"class_name" json:"class_name,omitempty"`
	CourseID    int64   `db:"course_id" json:"course_id"`
	CourseCode  *string `db:"course_code" json:"course_code,omitempty"`
	CourseName  *string `db:"course_name" json:"course_name,omitempty"`
	FacultyID   *int64  `db:"faculty_id" json:"faculty_id,omitempty"`
	FacultyName *string `db:"faculty_name" json:"faculty_name,omitempty"`
}

type FacultyAssignment struct {
	ID          int64   `db:"id" json:"id"`
	FacultyID   int64   `db:"faculty_id" json:"faculty_id"`
	CourseID    int64   `db:"course_id" json:"course_id"`
	ClassID     *int64  `db:"class_id" json:"class_id,omitempty"`
	FacultyName *string `db:"faculty_name" json:"faculty_name,omitempty"`
	CourseCode  *string `db:"course_code" json:"course_code,omitempty"`
	CourseName  *string `db:"course_name" json:"course_name,omitempty"`
	ClassName   *string `db:"class_name" json:"class_name,omitempty"`
}

type AssignmentFilter struct {
	FacultyID *int64
	CourseID  *int64
	ClassID   *int64
}
