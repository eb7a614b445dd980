package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rjrato/Write-it-V2-Backend/internal/common"
)

func newUserService(t *testing.T, rm *fakeRepoManager) *UserService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	return NewUserService(db, rm, testConfig(), testLogger())
}

func TestRegisterLogin_RoundTrip(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	registered, err := s.Register(ctx, "Ada", "Lovelace", "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if registered.ID == "" || registered.FirstName != "Ada" || registered.LastName != "Lovelace" {
		t.Fatalf("unexpected profile: %+v", registered)
	}

	loggedIn, err := s.Login(ctx, "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if loggedIn.ID != registered.ID {
		t.Fatalf("login returned a different user: %q vs %q", loggedIn.ID, registered.ID)
	}

	_, err = s.Login(ctx, "a@x.com", "wrong")
	if !errors.Is(err, common.ErrorInvalidCredentials) {
		t.Fatalf("want ErrorInvalidCredentials, got %v", err)
	}
}

func TestRegister_NeverReturnsCredential(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)

	profile, err := s.Register(context.Background(), "Ada", "Lovelace", "a@x.com", "secret")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	stored, err := rm.u.GetByID(context.Background(), profile.ID)
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "secret" {
		t.Fatalf("password must be stored hashed, got %q", stored.PasswordHash)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	rm := newFakeRepoManager()
	s := newUserService(t, rm)
	ctx := context.Background()

	if _, err := s.Register(ctx, "Ada", "Lovelace", "a@x.com", "secret"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	_, err := s.Register(ctx, "Eva", "Lu Ator", "a@x.com", "other")
	if !errors.Is(err, common.ErrorDuplicateEmail) {
		t.Fatalf("want ErrorDuplicateEmail, got %v", err)
	}
}

func TestRegister_PresenceValidation(t *testing.T) {
	s := newUserService(t, newFakeRepoManager())
	ctx := context.Background()

	if _, err := s.Register(ctx, "Ada", "Lovelace", "", "secret"); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("empty email: want ErrorValidation, got %v", err)
	}
	if _, err := s.Register(ctx, "Ada", "Lovelace", "a@x.com", ""); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("empty password: want ErrorValidation, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	s := newUserService(t, newFakeRepoManager())

	_, err := s.Login(context.Background(), "ghost@x.com", "secret")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestRegister_StorageFailureIsOpaque(t *testing.T) {
	rm := newFakeRepoManager()
	rm.u.createErr = errors.New("connection refused")
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "Ada", "Lovelace", "a@x.com", "secret")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want ErrorInternal, got %v", err)
	}
}

func TestRegister_DeadlineSurfacesAsStorageTimeout(t *testing.T) {
	rm := newFakeRepoManager()
	rm.u.createErr = context.DeadlineExceeded
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "Ada", "Lovelace", "a@x.com", "secret")
	if !errors.Is(err, common.ErrorStorageTimeout) {
		t.Fatalf("want ErrorStorageTimeout, got %v", err)
	}
}
