package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

var errDB = errors.New("db error")

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestRegisterAndLogin(t *testing.T) {
	mock := newMockPool(t)

	createdAt := time.Now().Add(-time.Minute)
	updatedAt := time.Now().Add(-time.Minute)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "ana@tecsup.edu.pe", "ana", pgxmock.AnyArg(), "Ana Quispe", "Software").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(createdAt, updatedAt))

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService("test-secret", mock)
	user, tokens, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "ana@tecsup.edu.pe",
		Username: "ana",
		Password: "password123",
		FullName: "Ana Quispe",
		Career:   "Software",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected user and tokens")
	}

	mock.ExpectQuery(`SELECT id, email, username, password_hash, full_name, career, created_at, updated_at`).
		WithArgs("ana@tecsup.edu.pe").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "username", "password_hash", "full_name", "career", "created_at", "updated_at"}).
			AddRow(user.ID, user.Email, user.Username, user.PasswordHash, user.FullName, user.Career, createdAt, updatedAt))

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), user.ID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	_, loginTokens, err := svc.Login(context.Background(), LoginRequest{Email: "ana@tecsup.edu.pe", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loginTokens.AccessToken == "" || loginTokens.RefreshToken == "" {
		t.Fatalf("expected login tokens")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewService("test-secret", newMockPool(t))
	if _, _, err := svc.Register(context.Background(), RegisterRequest{Email: "", Username: "u", Password: "p"}); err == nil {
		t.Fatalf("expected error for missing email")
	}
}

func TestRegisterDBError(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "ana@tecsup.edu.pe", "ana", pgxmock.AnyArg(), "", "").
		WillReturnError(errDB)

	svc := NewService("test-secret", mock)
	if _, _, err := svc.Register(context.Background(), RegisterRequest{Email: "ana@tecsup.edu.pe", Username: "ana", Password: "pass"}); err == nil {
		t.Fatalf("expected db error")
	}
}

func TestRegisterHashError(t *testing.T) {
	oldHash := hashPasswordFn
	hashPasswordFn = func(_ []byte, _ int) ([]byte, error) { return nil, errDB }
	defer func() { hashPasswordFn = oldHash }()

	svc := NewService("test-secret", nil)
	if _, _, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.c", Username: "u", Password: "p"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoginInvalidPassword(t *testing.T) {
	mock := newMockPool(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	mock.ExpectQuery(`SELECT id, email, username, password_hash, full_name, career, created_at, updated_at`).
		WithArgs("ana@tecsup.edu.pe").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "username", "password_hash", "full_name", "career", "created_at", "updated_at"}).
			AddRow("user-1", "ana@tecsup.edu.pe", "ana", string(hash), "", "", time.Now(), time.Now()))

	svc := NewService("test-secret", mock)
	if _, _, err := svc.Login(context.Background(), LoginRequest{Email: "ana@tecsup.edu.pe", Password: "wrong"}); err == nil {
		t.Fatalf("expected invalid credentials")
	}
}

func TestValidateRefreshToken(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService("test-secret", mock)
	tokens, err := svc.GenerateTokens(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(tokens.RefreshToken).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expires_at"}).AddRow("user-1", time.Now().Add(5*time.Minute)))

	userID, err := svc.ValidateRefreshToken(context.Background(), tokens.RefreshToken)
	if err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("unexpected user_id: %s", userID)
	}
}

func TestValidateRefreshTokenExpired(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WithArgs(pgxmock.AnyArg(), "user-2", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService("test-secret", mock)
	tokens, err := svc.GenerateTokens(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	mock.ExpectQuery(`SELECT user_id, expires_at`).
		WithArgs(tokens.RefreshToken).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "expires_at"}).AddRow("user-2", time.Now().Add(-time.Minute)))

	if _, err := svc.ValidateRefreshToken(context.Background(), tokens.RefreshToken); err == nil {
		t.Fatalf("expected expired token error")
	}
}

func TestGenerateTokensSignError(t *testing.T) {
	oldSign := signTokenFn
	signTokenFn = func(_ *Service, _ string, _ time.Duration) (string, error) { return "", errDB }
	defer func() { signTokenFn = oldSign }()

	svc := NewService("test-secret", nil)
	if _, err := svc.GenerateTokens(context.Background(), "user-1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseTokenInvalid(t *testing.T) {
	oldParse := parseWithClaimsFn
	parseWithClaimsFn = func(_ string, _ jwt.Claims, _ jwt.Keyfunc, _ ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Valid: false, Claims: &Claims{}}, nil
	}
	defer func() { parseWithClaimsFn = oldParse }()

	svc := NewService("test-secret", nil)
	if _, err := svc.parseToken("token"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateAccessToken(t *testing.T) {
	svc := NewService("test-secret", nil)

	token, err := svc.signToken("user-9", accessTokenTTL)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	userID, err := svc.ValidateAccessToken(token)
	if err != nil || userID != "user-9" {
		t.Fatalf("expected user-9, got %q (%v)", userID, err)
	}

	if _, err := svc.ValidateAccessToken("not-a-token"); err == nil {
		t.Fatalf("expected error for garbage token")
	}

	other := NewService("other-secret", nil)
	foreign, _ := other.signToken("user-9", accessTokenTTL)
	if _, err := svc.ValidateAccessToken(foreign); err == nil {
		t.Fatalf("expected error for wrong signing key")
	}
}
