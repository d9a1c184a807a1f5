package ports

import (
	"context"

	"github.com/campuscore/campus-backend/internal/domain"
)

type AdminRepository interface {
	Create(ctx context.Context, name, email string, phone, address *string, passwordHash, passwordSalt []byte, role string) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Update(ctx context.Context, id int64, updates domain.AdminUpdate) (*domain.Admin, error)
	SetStatus(ctx context.Context, id int64, status string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
}
