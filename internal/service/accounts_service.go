package service

import (
	"context"
	"strings"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/repository/ports"
	"github.com/campuscore/campus-backend/internal/util"
)

// AccountsService provisions student and faculty accounts on behalf of
// admins.
type AccountsService struct {
	students ports.StudentRepository
	faculty  ports.FacultyRepository
}

func NewAccountsService(students ports.StudentRepository, faculty ports.FacultyRepository) *AccountsService {
	return &AccountsService{students: students, faculty: faculty}
}

type StudentCreateInput struct {
	Name         string
	Email        string
	Phone        *string
	DepartmentID *int64
	ClassID      *int64
	Password     string
}

func (s *AccountsService) CreateStudent(ctx context.Context, input StudentCreateInput) (*domain.Student, error) {
	hash, salt, err := util.DerivePassword(input.Password)
	if err != nil {
		return nil, err
	}
	student, err := s.students.Create(ctx, input.Name, normalizeEmail(input.Email), input.Phone, input.DepartmentID, input.ClassID, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return student, nil
}

func (s *AccountsService) ListStudents(ctx context.Context, filter ports.StudentFilter) ([]domain.Student, error) {
	return s.students.List(ctx, filter)
}

type FacultyCreateInput struct {
	Name         string
	Email        string
	Phone        *string
	DepartmentID *int64
	Password     string
}

func (s *AccountsService) CreateFaculty(ctx context.Context, input FacultyCreateInput) (*domain.Faculty, error) {
	hash, salt, err := util.DerivePassword(input.Password)
	if err != nil {
		return nil, err
	}
	member, err := s.faculty.Create(ctx, input.Name, normalizeEmail(input.Email), input.Phone, input.DepartmentID, hash, salt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return member, nil
}

func (s *AccountsService) ListFaculty(ctx context.Context, departmentID *int64) ([]domain.Faculty, error) {
	return s.faculty.List(ctx, departmentID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
