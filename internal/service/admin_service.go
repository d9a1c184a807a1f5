package service

import (
	"context"
	"strings"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/repository/ports"
	"github.com/campuscore/campus-backend/internal/util"
)

// AdminService manages the admin accounts themselves. Only super admins
// reach these operations; the handlers enforce that.
type AdminService struct {
	admins ports.AdminRepository
}

func NewAdminService(admins ports.AdminRepository) *AdminService {
	return &AdminService{admins: admins}
}

type AdminCreateInput struct {
	Name     string
	Email    string
	Phone    *string
	Address  *string
	Password string
	Role     string
}

func (s *AdminService) Create(ctx context.Context, input AdminCreateInput) (*domain.Admin, error) {
	role := strings.ToUpper(strings.TrimSpace(input.Role))
	if role == "" {
		role = domain.RoleAdmin
	}
	if role != domain.RoleAdmin && role != domain.RoleSuperAdmin {
		return nil, ErrForbidden
	}

	hash, salt, err := util.DerivePassword(input.Password)
	if err != nil {
		return nil, err
	}
	admin, err := s.admins.Create(ctx, input.Name, strings.ToLower(strings.TrimSpace(input.Email)), input.Phone, input.Address, hash, salt, role)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) List(ctx context.Context) ([]domain.Admin, error) {
	return s.admins.List(ctx)
}

func (s *AdminService) Update(ctx context.Context, id int64, updates domain.AdminUpdate) (*domain.Admin, error) {
	if updates.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*updates.Role))
		if role != domain.RoleAdmin && role != domain.RoleSuperAdmin {
			return nil, ErrForbidden
		}
		updates.Role = &role
	}
	admin, err := s.admins.Update(ctx, id, updates)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) SetStatus(ctx context.Context, id int64, status string) (*domain.Admin, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != domain.StatusActive && status != domain.StatusInactive {
		return nil, ErrForbidden
	}
	admin, err := s.admins.SetStatus(ctx, id, status)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}
