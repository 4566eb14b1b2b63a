package auth

import (
	"github.com/spec-kit/jobboard-service/internal/domain"
	apperrors "github.com/spec-kit/jobboard-service/pkg/util"
)

// Pure authorization checks over an already-loaded caller. Services take
// the resolved user as an explicit parameter and evaluate these in order:
// authentication, then role, then ownership. An unauthenticated caller
// never sees a role- or ownership-specific message.

// RequireRole fails unless the caller is authenticated and holds the role.
func RequireRole(caller *domain.User, role domain.UserRole) error {
	if caller == nil {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	if caller.Role != role {
		return apperrors.NewForbidden("you do not have permission to perform this action")
	}
	return nil
}

// RequireOwnership fails unless the caller is authenticated and owns the resource.
func RequireOwnership(caller *domain.User, resourceOwnerID int64) error {
	if caller == nil {
		return apperrors.NewUnauthorized("Not authenticated")
	}
	if caller.ID != resourceOwnerID {
		return apperrors.NewForbidden("you do not have permission to access this resource")
	}
	return nil
}
