package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/jobboard-service/internal/auth"
	"github.com/spec-kit/jobboard-service/internal/config"
	"github.com/spec-kit/jobboard-service/internal/domain"
)

type authFixture struct {
	svc      *AuthService
	users    *fakeUserRepo
	resets   *fakePasswordResetRepo
	sessions *auth.SessionStore
	tokens   *auth.TokenManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := config.Config{
		Auth: config.AuthConfig{
			SessionSecret:           "test-secret",
			SessionTTLMinutes:       60,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              bcrypt.MinCost,
		},
	}
	sessions := auth.NewSessionStore(client, cfg.Auth.SessionTTL())
	tokens := auth.NewTokenManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL())
	users := newFakeUserRepo()
	resets := newFakePasswordResetRepo()

	return &authFixture{
		svc: NewAuthService(cfg, AuthDependencies{
			UserRepo:          users,
			PasswordResetRepo: resets,
			Sessions:          sessions,
			Tokens:            tokens,
		}),
		users:    users,
		resets:   resets,
		sessions: sessions,
		tokens:   tokens,
	}
}

func employeeInput(username string) RegisterInput {
	return RegisterInput{
		Username:  username,
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     username + "@example.com",
		Role:      domain.RoleEmployee,
	}
}

func TestRegisterOpensSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, cookieToken, expiresAt, err := f.svc.Register(ctx, employeeInput("alice"))
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.False(t, expiresAt.IsZero())

	sessionID, err := f.tokens.ParseToken(cookieToken)
	require.NoError(t, err)

	userID, err := f.sessions.Resolve(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestRegisterEmployerRequiresCompany(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	input := employeeInput("acme")
	input.Role = domain.RoleEmployer
	_, _, _, err := f.svc.Register(ctx, input)
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	input.CompanyName = strPtr("  ")
	_, _, _, err = f.svc.Register(ctx, input)
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	input.CompanyName = strPtr("Acme Corp")
	user, _, _, err := f.svc.Register(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, user.CompanyName)
	require.Equal(t, "Acme Corp", *user.CompanyName)
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	input := employeeInput("alice")
	input.Role = domain.UserRole("admin")
	_, _, _, err := f.svc.Register(ctx, input)
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	input = employeeInput("alice")
	input.Email = "not-an-email"
	_, _, _, err = f.svc.Register(ctx, input)
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := f.svc.Register(ctx, employeeInput("alice"))
	require.NoError(t, err)

	_, _, _, err = f.svc.Register(ctx, employeeInput("alice"))
	require.Equal(t, "CONFLICT", errCode(t, err))
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, _, _, err := f.svc.Register(ctx, employeeInput("alice"))
	require.NoError(t, err)

	user, cookieToken, _, err := f.svc.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, cookieToken)

	_, _, _, err = f.svc.Login(ctx, "alice", "wrong")
	require.Equal(t, "UNAUTHORIZED", errCode(t, err))

	_, _, _, err = f.svc.Login(ctx, "nobody", "secret123")
	require.Equal(t, "UNAUTHORIZED", errCode(t, err))
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, cookieToken, _, err := f.svc.Register(ctx, employeeInput("alice"))
	require.NoError(t, err)

	sessionID, err := f.tokens.ParseToken(cookieToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, sessionID))

	_, err = f.sessions.Resolve(ctx, sessionID)
	require.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, _, _, err := f.svc.Register(ctx, employeeInput("alice"))
	require.NoError(t, err)

	err = f.svc.ChangePassword(ctx, user, "wrong", "newpass123")
	require.Equal(t, "UNAUTHORIZED", errCode(t, err))

	require.NoError(t, f.svc.ChangePassword(ctx, user, "secret123", "newpass123"))

	_, _, _, err = f.svc.Login(ctx, "alice", "newpass123")
	require.NoError(t, err)
	_, _, _, err = f.svc.Login(ctx, "alice", "secret123")
	require.Equal(t, "UNAUTHORIZED", errCode(t, err))
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := f.svc.Register(ctx, employeeInput("alice"))
	require.NoError(t, err)

	_, err = f.svc.RequestPasswordReset(ctx, "missing@example.com")
	require.Equal(t, "NOT_FOUND", errCode(t, err))

	token, err := f.svc.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	require.NoError(t, f.svc.ConfirmPasswordReset(ctx, token.Token, "resetpass1"))

	_, _, _, err = f.svc.Login(ctx, "alice", "resetpass1")
	require.NoError(t, err)

	// tokens are single use
	err = f.svc.ConfirmPasswordReset(ctx, token.Token, "another")
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	err = f.svc.ConfirmPasswordReset(ctx, "bogus-token", "another")
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestUpdateProfileKeepsEmployerCompany(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	input := employeeInput("acme")
	input.Role = domain.RoleEmployer
	input.CompanyName = strPtr("Acme Corp")
	user, _, _, err := f.svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = f.svc.UpdateProfile(ctx, user, ProfileUpdateInput{CompanyName: strPtr("  ")})
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	updated, err := f.svc.UpdateProfile(ctx, user, ProfileUpdateInput{CompanyName: strPtr("Acme Global")})
	require.NoError(t, err)
	require.Equal(t, "Acme Global", *updated.CompanyName)

	_, err = f.svc.UpdateProfile(ctx, user, ProfileUpdateInput{Email: strPtr("broken")})
	require.Equal(t, "VALIDATION_FAILED", errCode(t, err))

	_, err = f.svc.UpdateProfile(ctx, nil, ProfileUpdateInput{})
	require.Equal(t, "UNAUTHORIZED", errCode(t, err))
}

func TestDeleteUserSelfOnly(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	alice, _, _, err := f.svc.Register(ctx, employeeInput("alice"))
	require.NoError(t, err)
	bob, _, _, err := f.svc.Register(ctx, employeeInput("bob"))
	require.NoError(t, err)

	require.Equal(t, "FORBIDDEN", errCode(t, f.svc.DeleteUser(ctx, alice, bob.ID)))
	require.NoError(t, f.svc.DeleteUser(ctx, alice, alice.ID))

	_, err = f.svc.GetUser(ctx, alice.ID)
	require.Equal(t, "NOT_FOUND", errCode(t, err))
}
