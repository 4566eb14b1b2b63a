package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/jobboard-service/internal/domain"
	"github.com/spec-kit/jobboard-service/internal/repository"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User      *domain.User
	SessionID string
}

// SessionMiddleware resolves session cookies and loads principals.
type SessionMiddleware struct {
	cookieName string
	tokens     *TokenManager
	sessions   *SessionStore
	users      repository.UserRepository
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(cookieName string, tokens *TokenManager, sessions *SessionStore, users repository.UserRepository) *SessionMiddleware {
	return &SessionMiddleware{cookieName: cookieName, tokens: tokens, sessions: sessions, users: users}
}

// Handle enforces authentication for protected routes. The cookie token is
// verified, the session looked up, and the user row loaded before any
// role or ownership check runs.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	cookie := c.Cookies(m.cookieName)
	if cookie == "" {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	sessionID, err := m.tokens.ParseToken(cookie)
	if err != nil {
		return apperrors.NewUnauthorized("Not authenticated")
	}

	userID, err := m.sessions.Resolve(c.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return apperrors.NewUnauthorized("Not authenticated")
		}
		return apperrors.MapError(err)
	}

	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("Not authenticated")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user, SessionID: sessionID})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
