package service

import (
	"context"
	"time"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/repository/ports"
	"github.com/campuscore/campus-backend/internal/util"
)

// AuthService handles password logins for the admin console. Students and
// faculty sign in through the OTP flow instead.
type AuthService struct {
	admins     ports.AdminRepository
	jwt        *util.JWTManager
	sessionTTL time.Duration
}

func NewAuthService(admins ports.AdminRepository, jwtManager *util.JWTManager, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 8 * time.Hour
	}
	return &AuthService{admins: admins, jwt: jwtManager, sessionTTL: sessionTTL}
}

// AdminSession is an authenticated admin plus the credential to present on
// subsequent requests.
type AdminSession struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     *domain.Admin `json:"admin"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AdminSession, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if admin.Status != domain.StatusActive {
		return nil, ErrInvalidCredentials
	}
	if !util.VerifyPassword(password, admin.PasswordSalt, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	signed, expiresAt, err := s.jwt.Generate(admin.ID, admin.Email, admin.Role, admin.Name, s.sessionTTL)
	if err != nil {
		return nil, err
	}
	return &AdminSession{Token: signed, ExpiresAt: expiresAt, Admin: admin}, nil
}
