package ports

import (
	"context"

	"github.com/campuscore/campus-backend/internal/domain"
)

type StudentFilter struct {
	DepartmentID *int64
	ClassID      *int64
}

type StudentRepository interface {
	Create(ctx context.Context, name, email string, phone *string, departmentID, classID *int64, passwordHash, passwordSalt []byte) (*domain.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]domain.Student, error)
	FindByEmail(ctx context.Context, email string) (*domain.Student, error)
	FindByID(ctx context.Context, id int64) (*domain.Student, error)
	Profile(ctx context.Context, id int64) (*domain.StudentProfile, error)
	Roster(ctx context.Context, classID int64) ([]domain.StudentRef, error)
	TouchLastLogin(ctx context.Context, id int64) error
}
