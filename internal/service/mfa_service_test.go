package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/campuscore/campus-backend/internal/domain"
	"github.com/campuscore/campus-backend/internal/repository/ports"
	"github.com/campuscore/campus-backend/internal/transport/mail"
	"github.com/campuscore/campus-backend/internal/util"
)

type fakeStudentRepo struct {
	byEmail     map[string]*domain.Student
	lastLoginCh chan int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{
		byEmail:     make(map[string]*domain.Student),
		lastLoginCh: make(chan int64, 8),
	}
}

func (r *fakeStudentRepo) Create(context.Context, string, string, *string, *int64, *int64, []byte, []byte) (*domain.Student, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeStudentRepo) List(context.Context, ports.StudentFilter) ([]domain.Student, error) {
	return nil, nil
}

func (r *fakeStudentRepo) FindByEmail(_ context.Context, email string) (*domain.Student, error) {
	if student, ok := r.byEmail[email]; ok {
		return student, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeStudentRepo) FindByID(_ context.Context, id int64) (*domain.Student, error) {
	for _, student := range r.byEmail {
		if student.ID == id {
			return student, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeStudentRepo) Profile(context.Context, int64) (*domain.StudentProfile, error) {
	return nil, sql.ErrNoRows
}

func (r *fakeStudentRepo) Roster(context.Context, int64) ([]domain.StudentRef, error) {
	return nil, nil
}

func (r *fakeStudentRepo) TouchLastLogin(_ context.Context, id int64) error {
	r.lastLoginCh <- id
	return nil
}

type fakeFacultyRepo struct {
	byEmail map[string]*domain.Faculty
	touched chan int64
}

func newFakeFacultyRepo() *fakeFacultyRepo {
	return &fakeFacultyRepo{
		byEmail: make(map[string]*domain.Faculty),
		touched: make(chan int64, 8),
	}
}

func (r *fakeFacultyRepo) Create(context.Context, string, string, *string, *int64, []byte, []byte) (*domain.Faculty, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeFacultyRepo) List(context.Context, *int64) ([]domain.Faculty, error) {
	return nil, nil
}

func (r *fakeFacultyRepo) FindByEmail(_ context.Context, email string) (*domain.Faculty, error) {
	if member, ok := r.byEmail[email]; ok {
		return member, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeFacultyRepo) Profile(context.Context, int64) (*domain.FacultyProfile, error) {
	return nil, sql.ErrNoRows
}

func (r *fakeFacultyRepo) TouchUpdatedAt(_ context.Context, id int64) error {
	r.touched <- id
	return nil
}

var otpPattern = regexp.MustCompile(`\b(\d{6})\b`)

func lastSentOTP(t *testing.T, mailer *mail.MemoryMailer) string {
	t.Helper()
	sent := mailer.Sent()
	if len(sent) == 0 {
		t.Fatalf("expected at least one email")
	}
	match := otpPattern.FindStringSubmatch(sent[len(sent)-1].Body)
	if match == nil {
		t.Fatalf("no code found in email body: %q", sent[len(sent)-1].Body)
	}
	return match[1]
}

type mfaFixture struct {
	svc      *MFAService
	students *fakeStudentRepo
	faculty  *fakeFacultyRepo
	mailer   *mail.MemoryMailer
	clock    *time.Time
}

func newMFAFixture(t *testing.T) *mfaFixture {
	t.Helper()

	students := newFakeStudentRepo()
	faculty := newFakeFacultyRepo()

	hash, salt, err := util.DerivePassword("correct horse")
	if err != nil {
		t.Fatalf("DerivePassword: %v", err)
	}
	students.byEmail["amy@college.edu"] = &domain.Student{
		ID:           7,
		Name:         "Amy",
		Email:        "amy@college.edu",
		PasswordHash: hash,
		PasswordSalt: salt,
		Status:       domain.StatusActive,
	}

	mailer := &mail.MemoryMailer{}
	svc := NewMFAService(students, faculty, mailer, util.NewJWTManager("test-secret"), MFAServiceConfig{})

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	clock := &start
	svc.now = func() time.Time { return *clock }

	return &mfaFixture{svc: svc, students: students, faculty: faculty, mailer: mailer, clock: clock}
}

func (f *mfaFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func TestMFAService_InitiateThenVerifyOnce(t *testing.T) {
	f := newMFAFixture(t)
	ctx := context.Background()

	result, err := f.svc.Initiate(ctx, "amy@college.edu", "correct horse")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if result.ExpiresIn != 180 {
		t.Fatalf("expected 180s expiry, got %d", result.ExpiresIn)
	}
	if len(result.Token) != 48 {
		t.Fatalf("expected 48-char hex token, got %d chars", len(result.Token))
	}
	if result.Identity.Role != domain.RoleStudent || result.Identity.UserID != 7 {
		t.Fatalf("unexpected identity: %+v", result.Identity)
	}

	code := lastSentOTP(t, f.mailer)
	verified, err := f.svc.Verify(ctx, result.Token, code)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if verified.SessionToken == "" {
		t.Fatalf("expected a session credential")
	}
	if verified.SessionToken == result.Token {
		t.Fatalf("final credential must differ from the MFA token")
	}

	// A used session is terminal; replaying the code fails and removes it.
	if _, err := f.svc.Verify(ctx, result.Token, code); !errors.Is(err, ErrOTPAlreadyUsed) {
		t.Fatalf("expected ErrOTPAlreadyUsed, got %v", err)
	}
	if _, err := f.svc.Verify(ctx, result.Token, code); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession after removal, got %v", err)
	}

	select {
	case id := <-f.students.lastLoginCh:
		if id != 7 {
			t.Fatalf("last-login recorded for wrong student: %d", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("last-login side effect never ran")
	}
}

func TestMFAService_AttemptLimit(t *testing.T) {
	f := newMFAFixture(t)
	ctx := context.Background()

	result, err := f.svc.Initiate(ctx, "amy@college.edu", "correct horse")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	// Three wrong codes each report a mismatch; the session survives.
	for i := 0; i < 3; i++ {
		if _, err := f.svc.Verify(ctx, result.Token, "000000"); !errors.Is(err, ErrInvalidOTP) {
			t.Fatalf("attempt %d: expected ErrInvalidOTP, got %v", i+1, err)
		}
	}

	// The fourth call locks and deletes the session, even with the right code.
	code := lastSentOTP(t, f.mailer)
	if _, err := f.svc.Verify(ctx, result.Token, code); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if _, err := f.svc.Verify(ctx, result.Token, code); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession after lockout, got %v", err)
	}
}

func TestMFAService_DebounceSuppressesDuplicateEmail(t *testing.T) {
	f := newMFAFixture(t)
	ctx := context.Background()

	first, err := f.svc.Initiate(ctx, "amy@college.edu", "correct horse")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	f.advance(5 * time.Second)
	second, err := f.svc.Initiate(ctx, "amy@college.edu", "correct horse")
	if err != nil {
		t.Fatalf("second Initiate: %v", err)
	}
	if second.Token != first.Token {
		t.Fatalf("expected the same session token inside the debounce window")
	}
	if second.ExpiresIn != 175 {
		t.Fatalf("expected remaining TTL 175s, got %d", second.ExpiresIn)
	}
	if sent := f.mailer.Sent(); len(sent) != 1 {
		t.Fatalf("expected exactly one email, got %d", len(sent))
	}
}

func TestMFAService_FreshSessionPastDebounce(t *testing.T) {
	f := newMFAFixture(t)
	ctx := context.Background()

	first, err := f.svc.Initiate(ctx, "amy@college.edu", "correct horse")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	firstCode := lastSentOTP(t, f.mailer)

	// Past the debounce window the unused session is replaced outright: new
	// token, new code, new email, full TTL.
	f.advance(30 * time.Second)
	second, err := f.svc.Initiate(ctx, "amy@college.edu", "correct horse")
	if err != nil {
		t.Fatalf("second Initiate: %v", err)
	}
	if second.Token == first.Token {
		t.Fatalf("expected a fresh session token past the debounce window")
	}
	if second.ExpiresIn != 180 {
		t.Fatalf("expected full TTL 180s, got %d", second.ExpiresIn)
	}
	if sent := f.mailer.Sent(); len(sent) != 2 {
		t.Fatalf("expected two emails, got %d", len(sent))
	}

	secondCode := lastSentOTP(t, f.mailer)
	if _, err := f.svc.Verify(ctx, second.Token, secondCode); err != nil {
		t.Fatalf("Verify on fresh session: %v", err)
	}

	// The superseded session keeps its own token and code until it expires.
	if _, err := f.svc.Verify(ctx, first.Token, firstCode); err != nil {
		t.Fatalf("Verify on superseded session: %v", err)
	}
}

func TestMFAService_ExpiryBoundary(t *testing.T) {
	f := newMFAFixture(t)
	ctx := context.Background()

	result, err := f.svc.Initiate(ctx, "amy@college.edu", "correct horse")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	code := lastSentOTP(t, f.mailer)

	// Just past the 180s mark the session expires and is removed.
	f.advance(180*time.Second + 100*time.Millisecond)
	if _, err := f.svc.Verify(ctx, result.Token, code); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
	if _, err := f.svc.Verify(ctx, result.Token, code); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession after expiry removal, got %v", err)
	}

	// A fresh initiate issues a brand-new session and a second email.
	fresh, err := f.svc.Initiate(ctx, "amy@college.edu", "correct horse")
	if err != nil {
		t.Fatalf("Initiate after expiry: %v", err)
	}
	if fresh.Token == result.Token {
		t.Fatalf("expected a new token after expiry")
	}
	if sent := f.mailer.Sent(); len(sent) != 2 {
		t.Fatalf("expected two emails, got %d", len(sent))
	}
}

func TestMFAService_VerifyJustBeforeExpiry(t *testing.T) {
	f := newMFAFixture(t)
	ctx := context.Background()

	result, err := f.svc.Initiate(ctx, "amy@college.edu", "correct horse")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	code := lastSentOTP(t, f.mailer)

	f.advance(179*time.Second + 900*time.Millisecond)
	if _, err := f.svc.Verify(ctx, result.Token, code); err != nil {
		t.Fatalf("Verify just before expiry: %v", err)
	}
}

func TestMFAService_InvalidCredentials(t *testing.T) {
	f := newMFAFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Initiate(ctx, "amy@college.edu", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.Initiate(ctx, "nobody@college.edu", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}

	f.students.byEmail["amy@college.edu"].Status = domain.StatusInactive
	if _, err := f.svc.Initiate(ctx, "amy@college.edu", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("inactive account: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestMFAService_LoginWhitespaceTrimmed(t *testing.T) {
	f := newMFAFixture(t)

	result, err := f.svc.Initiate(context.Background(), "  amy@college.edu ", "correct horse")
	if err != nil {
		t.Fatalf("Initiate with padded login: %v", err)
	}
	if result.Identity.Email != "amy@college.edu" {
		t.Fatalf("unexpected identity email %q", result.Identity.Email)
	}
}

func TestMFAService_StudentCategoryWins(t *testing.T) {
	f := newMFAFixture(t)
	ctx := context.Background()

	// Same email exists in both categories; the student match is taken first.
	hash, salt, err := util.DerivePassword("correct horse")
	if err != nil {
		t.Fatalf("DerivePassword: %v", err)
	}
	f.faculty.byEmail["amy@college.edu"] = &domain.Faculty{
		ID:           99,
		Name:         "Prof Amy",
		Email:        "amy@college.edu",
		PasswordHash: hash,
		PasswordSalt: salt,
		Status:       domain.StatusActive,
	}

	result, err := f.svc.Initiate(ctx, "amy@college.edu", "correct horse")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if result.Identity.Role != domain.RoleStudent {
		t.Fatalf("expected student role to win, got %s", result.Identity.Role)
	}
}

func TestMFAService_FacultyVerifyTouchesUpdatedAt(t *testing.T) {
	f := newMFAFixture(t)
	ctx := context.Background()

	hash, salt, err := util.DerivePassword("chalk dust")
	if err != nil {
		t.Fatalf("DerivePassword: %v", err)
	}
	f.faculty.byEmail["bob@college.edu"] = &domain.Faculty{
		ID:           3,
		Name:         "Bob",
		Email:        "bob@college.edu",
		PasswordHash: hash,
		PasswordSalt: salt,
		Status:       domain.StatusActive,
	}

	result, err := f.svc.Initiate(ctx, "bob@college.edu", "chalk dust")
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if result.Identity.Role != domain.RoleFaculty {
		t.Fatalf("expected faculty role, got %s", result.Identity.Role)
	}

	code := lastSentOTP(t, f.mailer)
	if _, err := f.svc.Verify(ctx, result.Token, code); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	select {
	case id := <-f.faculty.touched:
		if id != 3 {
			t.Fatalf("updated_at touched for wrong faculty: %d", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("faculty last-login side effect never ran")
	}
}
