package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campuscore/campus-backend/internal/domain"
)

type AdminRepository struct {
	db *sqlx.DB
}

func NewAdminRepo(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

const adminColumns = "id, name, email, phone, address, password_hash, password_salt, role, status, created_at, updated_at"

func (r *AdminRepository) Create(ctx context.Context, name, email string, phone, address *string, passwordHash, passwordSalt []byte, role string) (*domain.Admin, error) {
	query := `
        INSERT INTO admins (name, email, phone, address, password_hash, password_salt, role)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + adminColumns
	var admin domain.Admin
	if err := r.db.QueryRowxContext(ctx, query, name, email, phone, address, passwordHash, passwordSalt, role).StructScan(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE LOWER(email) = LOWER($1) LIMIT 1`
	var admin domain.Admin
	if err := r.db.GetContext(ctx, &admin, query, email); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) Update(ctx context.Context, id int64, updates domain.AdminUpdate) (*domain.Admin, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if updates.Name != nil {
		add("name", *updates.Name)
	}
	if updates.Phone != nil {
		add("phone", *updates.Phone)
	}
	if updates.Address != nil {
		add("address", *updates.Address)
	}
	if updates.Role != nil {
		add("role", *updates.Role)
	}
	if len(sets) == 0 {
		return nil, sql.ErrNoRows
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE admins SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), adminColumns,
	)
	var admin domain.Admin
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) SetStatus(ctx context.Context, id int64, status string) (*domain.Admin, error) {
	query := `UPDATE admins SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + adminColumns
	var admin domain.Admin
	if err := r.db.QueryRowxContext(ctx, query, status, id).StructScan(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins ORDER BY created_at DESC`
	admins := []domain.Admin{}
	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		return nil, err
	}
	return admins, nil
}
