package domain

import "time"

type Faculty struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	DepartmentID *int64    `db:"department_id" json:"department_id,omitempty"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	PasswordSalt []byte    `db:"password_salt" json:"-"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// FacultyProfile aggregates the faculty row with its department and the
// classes/courses derived from its teaching assignments.
type FacultyProfile struct {
	Faculty
	DepartmentName *string     `db:"department_name" json:"department_name,omitempty"`
	Classes        []ClassRef  `db:"-" json:"classes"`
	Courses        []CourseRef `db:"-" json:"courses"`
}

type ClassRef struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type CourseRef struct {
	ID   int64  `db:"id" json:"id"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}
