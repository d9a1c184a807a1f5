package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/repository/ports"
	"github.com/campuscore/campus-backend/internal/transport/mail"
	"github.com/campuscore/campus-backend/internal/util"
)

// MFAServiceConfig tunes the OTP exchange. Zero values fall back to the
// defaults: 3 minute codes, 12 second debounce, 3 attempts, 24 hour sessions.
type MFAServiceConfig struct {
	OTPTTL      time.Duration
	Debounce    time.Duration
	MaxAttempts int
	SessionTTL  time.Duration
}

// InitiateResult is returned when a password login succeeds and an OTP
// session is pending.
type InitiateResult struct {
	Token     string
	ExpiresIn int
	Identity  domain.Identity
}

// VerifyResult carries the final session credential minted after a correct
// code.
type VerifyResult struct {
	SessionToken string
	ExpiresAt    time.Time
	Identity     domain.Identity
}

// MFAService owns the in-memory OTP session state. All map access goes
// through its mutex; sessions never leave process memory and the plaintext
// code is never stored.
type MFAService struct {
	students ports.StudentRepository
	faculty  ports.FacultyRepository
	mailer   mail.Mailer
	jwt      *util.JWTManager

	otpTTL      time.Duration
	debounce    time.Duration
	maxAttempts int
	sessionTTL  time.Duration

	mu       sync.Mutex
	sessions map[string]*domain.OtpSession
	byEmail  map[string]string

	now func() time.Time
}

func NewMFAService(
	students ports.StudentRepository,
	faculty ports.FacultyRepository,
	mailer mail.Mailer,
	jwtManager *util.JWTManager,
	cfg MFAServiceConfig,
) *MFAService {
	otpTTL := cfg.OTPTTL
	if otpTTL <= 0 {
		otpTTL = 3 * time.Minute
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = 12 * time.Second
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	return &MFAService{
		students:    students,
		faculty:     faculty,
		mailer:      mailer,
		jwt:         jwtManager,
		otpTTL:      otpTTL,
		debounce:    debounce,
		maxAttempts: maxAttempts,
		sessionTTL:  sessionTTL,
		sessions:    make(map[string]*domain.OtpSession),
		byEmail:     make(map[string]string),
		now:         time.Now,
	}
}

// resolve looks the login identifier up across user categories in a fixed
// order, students first. Every failure collapses to ErrInvalidCredentials so
// the endpoint cannot be used to enumerate accounts.
func (s *MFAService) resolve(ctx context.Context, login, password string) (domain.Identity, error) {
	if student, err := s.students.FindByEmail(ctx, login); err == nil {
		if student.Status != domain.StatusActive || !util.VerifyPassword(password, student.PasswordSalt, student.PasswordHash) {
			return domain.Identity{}, ErrInvalidCredentials
		}
		return domain.Identity{
			UserID: student.ID,
			Email:  student.Email,
			Role:   domain.RoleStudent,
			Name:   student.Name,
		}, nil
	} else if !isNotFound(err) {
		return domain.Identity{}, err
	}

	member, err := s.faculty.FindByEmail(ctx, login)
	if err != nil {
		if isNotFound(err) {
			return domain.Identity{}, ErrInvalidCredentials
		}
		return domain.Identity{}, err
	}
	if member.Status != domain.StatusActive || !util.VerifyPassword(password, member.PasswordSalt, member.PasswordHash) {
		return domain.Identity{}, ErrInvalidCredentials
	}
	return domain.Identity{
		UserID: member.ID,
		Email:  member.Email,
		Role:   domain.RoleFaculty,
		Name:   member.Name,
	}, nil
}

// Initiate verifies the password and issues an OTP session. A session issued
// within the debounce window is returned again with its remaining TTL and no
// new email; past the window a fresh code, token and email replace it. Email
// delivery failure is logged and never surfaced: the session exists either
// way.
func (s *MFAService) Initiate(ctx context.Context, login, password string) (*InitiateResult, error) {
	identity, err := s.resolve(ctx, strings.TrimSpace(login), password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	now := s.now()
	if token, ok := s.byEmail[identity.Email]; ok {
		if existing, ok := s.sessions[token]; ok && !existing.Used && now.Before(existing.ExpiresAt) &&
			now.Sub(existing.CreatedAt) < s.debounce {
			remaining := int(existing.ExpiresAt.Sub(now).Seconds())
			if remaining < 0 {
				remaining = 0
			}
			s.mu.Unlock()
			return &InitiateResult{Token: token, ExpiresIn: remaining, Identity: identity}, nil
		}
	}

	code, err := util.GenerateLoginCode()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	token, err := util.GenerateSessionToken()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	s.sessions[token] = &domain.OtpSession{
		Token:     token,
		Identity:  identity,
		OTPHash:   util.HashCode(code),
		ExpiresAt: now.Add(s.otpTTL),
		Attempts:  0,
		Used:      false,
		CreatedAt: now,
	}
	s.byEmail[identity.Email] = token
	s.mu.Unlock()

	subject := "Your One-Time Password (OTP)"
	body := fmt.Sprintf("Your OTP is %s. It expires in %d minutes. If you did not request this, ignore this email.",
		code, int(s.otpTTL.Minutes()))
	if err := s.mailer.Send(ctx, identity.Email, subject, body); err != nil {
		log.Printf("mfa: otp email to %s failed: %v", identity.Email, err)
	}

	return &InitiateResult{
		Token:     token,
		ExpiresIn: int(s.otpTTL.Seconds()),
		Identity:  identity,
	}, nil
}

// Verify walks the session state machine in strict order: unknown token,
// attempt limit, expiry, single-use, then the constant-time code compare.
// A wrong code keeps the session alive with its attempt count persisted; a
// correct one flips it to used, mints the final JWT, and records the
// last-login side effect without blocking the caller.
func (s *MFAService) Verify(ctx context.Context, token, code string) (*VerifyResult, error) {
	s.mu.Lock()

	session, ok := s.sessions[token]
	if !ok {
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}
	if session.Attempts >= s.maxAttempts {
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrTooManyAttempts
	}
	if s.now().After(session.ExpiresAt) {
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrOTPExpired
	}
	if session.Used {
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrOTPAlreadyUsed
	}

	session.Attempts++
	if !util.CodeMatches(code, session.OTPHash) {
		s.mu.Unlock()
		return nil, ErrInvalidOTP
	}

	session.Used = true
	identity := session.Identity
	s.mu.Unlock()

	signed, expiresAt, err := s.jwt.Generate(identity.UserID, identity.Email, identity.Role, identity.Name, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	go s.recordLastLogin(identity)

	return &VerifyResult{
		SessionToken: signed,
		ExpiresAt:    expiresAt,
		Identity:     identity,
	}, nil
}

// recordLastLogin runs detached from the verify call; failures only show up
// in the log.
func (s *MFAService) recordLastLogin(identity domain.Identity) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	switch identity.Role {
	case domain.RoleStudent:
		err = s.students.TouchLastLogin(ctx, identity.UserID)
	case domain.RoleFaculty:
		err = s.faculty.TouchUpdatedAt(ctx, identity.UserID)
	}
	if err != nil {
		log.Printf("mfa: last-login update for %s %d failed: %v", identity.Role, identity.UserID, err)
	}
}
