package ports

import (
	"context"

	"github.com/campuscore/campus-backend/internal/domain"
)

type FacultyRepository interface {
	Create(ctx context.Context, name, email string, phone *string, departmentID *int64, passwordHash, passwordSalt []byte) (*domain.Faculty, error)
	List(ctx context.Context, departmentID *int64) ([]domain.Faculty, error)
	FindByEmail(ctx context.Context, email string) (*domain.Faculty, error)
	Profile(ctx context.Context, id int64) (*domain.FacultyProfile, error)
	TouchUpdatedAt(ctx context.Context, id int64) error
}
