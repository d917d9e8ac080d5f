package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestRegister_WeakPassword(t *testing.T) {
	svc := NewService(&fakeUsers{}, "secret")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "a@b.com",
		Password: "short",
		FullName: "A B",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := &fakeUsers{}
	svc := NewService(repo, "secret")

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "a@b.com",
		Password: "longenough",
		FullName: "A B",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.PasswordHash == nil {
		t.Fatalf("expected stored hash")
	}
	if *user.PasswordHash == "longenough" {
		t.Fatalf("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("longenough")); err != nil {
		t.Errorf("hash does not verify: %v", err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	repo := &fakeUsers{}
	svc := NewService(repo, "secret")

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "a@b.com",
		Password: "longenough",
		FullName: "A B",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "longenough"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token")
	}

	userID, err := svc.VerifyToken(result.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != result.User.ID {
		t.Errorf("token user %q does not match %q", userID, result.User.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &fakeUsers{}
	svc := NewService(repo, "secret")

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "a@b.com",
		Password: "longenough",
		FullName: "A B",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(&fakeUsers{}, "secret")

	if _, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@b.com", Password: "whatever"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_ExternalAccountHasNoPassword(t *testing.T) {
	repo := &fakeUsers{}
	svc := NewService(repo, "secret")

	if _, err := svc.FindOrCreateExternalUser(context.Background(), "ext-1", "a@b.com", "A B"); err != nil {
		t.Fatalf("external login: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "anything"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestFindOrCreateExternalUser_Idempotent(t *testing.T) {
	repo := &fakeUsers{}
	svc := NewService(repo, "secret")

	first, err := svc.FindOrCreateExternalUser(context.Background(), "ext-1", "a@b.com", "A B")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.FindOrCreateExternalUser(context.Background(), "ext-1", "a@b.com", "A B")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if first.User.ID != second.User.ID {
		t.Errorf("expected same account, got %q and %q", first.User.ID, second.User.ID)
	}
	if len(repo.users) != 1 {
		t.Errorf("expected one account, got %d", len(repo.users))
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	repo := &fakeUsers{}
	issuer := NewService(repo, "secret-a")
	verifier := NewService(repo, "secret-b")

	result, err := issuer.FindOrCreateExternalUser(context.Background(), "ext-1", "", "A B")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.VerifyToken(result.Token); err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}

type fakeUsers struct {
	users  []User
	nextID int
}

func (f *fakeUsers) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	for _, u := range f.users {
		if u.Email != nil && *u.Email == params.Email {
			return User{}, ErrDuplicateEmail
		}
	}
	f.nextID++
	email := params.Email
	hash := params.PasswordHash
	user := User{
		ID:           "user-" + string(rune('0'+f.nextID)),
		Email:        &email,
		FullName:     params.FullName,
		PasswordHash: &hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (f *fakeUsers) GetUserByID(ctx context.Context, userID string) (User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (f *fakeUsers) UpsertExternalUser(ctx context.Context, externalUID, email, fullName string) (User, error) {
	for _, u := range f.users {
		if u.ExternalUID != nil && *u.ExternalUID == externalUID {
			return u, nil
		}
	}
	f.nextID++
	user := User{
		ID:          "user-" + string(rune('0'+f.nextID)),
		ExternalUID: &externalUID,
		FullName:    fullName,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if email != "" {
		user.Email = &email
	}
	f.users = append(f.users, user)
	return user, nil
}
