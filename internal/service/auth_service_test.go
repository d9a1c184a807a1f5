package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/util"
)

type fakeAdminRepo struct {
	byEmail map[string]*domain.Admin
}

func (r *fakeAdminRepo) Create(context.Context, string, string, *string, *string, []byte, []byte, string) (*domain.Admin, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	if admin, ok := r.byEmail[email]; ok {
		return admin, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeAdminRepo) Update(context.Context, int64, domain.AdminUpdate) (*domain.Admin, error) {
	return nil, sql.ErrNoRows
}

func (r *fakeAdminRepo) SetStatus(context.Context, int64, string) (*domain.Admin, error) {
	return nil, sql.ErrNoRows
}

func (r *fakeAdminRepo) List(context.Context) ([]domain.Admin, error) {
	return nil, nil
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, salt, err := util.DerivePassword("root-pass")
	if err != nil {
		t.Fatalf("DerivePassword: %v", err)
	}
	repo := &fakeAdminRepo{byEmail: map[string]*domain.Admin{
		"root@college.edu": {
			ID:           1,
			Name:         "Root",
			Email:        "root@college.edu",
			PasswordHash: hash,
			PasswordSalt: salt,
			Role:         domain.RoleSuperAdmin,
			Status:       domain.StatusActive,
		},
	}}
	svc := NewAuthService(repo, util.NewJWTManager("test-secret"), 8*time.Hour)

	session, err := svc.Login(ctx, "root@college.edu", "root-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected a signed token")
	}
	if session.Admin.Role != domain.RoleSuperAdmin {
		t.Fatalf("unexpected role: %s", session.Admin.Role)
	}
	if remaining := time.Until(session.ExpiresAt); remaining < 7*time.Hour {
		t.Fatalf("expected roughly 8h expiry, got %s", remaining)
	}
}

func TestAuthService_LoginFailuresCollapse(t *testing.T) {
	ctx := context.Background()

	hash, salt, err := util.DerivePassword("root-pass")
	if err != nil {
		t.Fatalf("DerivePassword: %v", err)
	}
	repo := &fakeAdminRepo{byEmail: map[string]*domain.Admin{
		"root@college.edu": {
			ID:           1,
			Email:        "root@college.edu",
			PasswordHash: hash,
			PasswordSalt: salt,
			Role:         domain.RoleAdmin,
			Status:       domain.StatusActive,
		},
	}}
	svc := NewAuthService(repo, util.NewJWTManager("test-secret"), 0)

	if _, err := svc.Login(ctx, "root@college.edu", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "ghost@college.edu", "root-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}

	repo.byEmail["root@college.edu"].Status = domain.StatusInactive
	if _, err := svc.Login(ctx, "root@college.edu", "root-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("inactive admin: expected ErrInvalidCredentials, got %v", err)
	}
}
