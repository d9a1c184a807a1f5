package domain

import "time"

type Student struct {
	ID           int64      `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	Phone        *string    `db:"phone" json:"phone,omitempty"`
	DepartmentID *int64     `db:"department_id" json:"department_id,omitempty"`
	ClassID      *int64     `db:"class_id" json:"class_id,omitempty"`
	PasswordHash []byte     `db:"password_hash" json:"-"`
	PasswordSalt []byte     `db:"password_salt" json:"-"`
	Status       string     `db:"status" json:"status"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// StudentRef is the minimal identity used for class rosters.
type StudentRef struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// StudentProfile is the student joined with its department and class names,
// plus the courses mapped to the student's class.
type StudentProfile struct {
	Student
	DepartmentName *string        `db:"department_name" json:"department_name,omitempty"`
	ClassName      *string        `db:"class_name" json:"class_name,omitempty"`
	Courses        []ClassCourse  `db:"-" json:"courses"`
}
