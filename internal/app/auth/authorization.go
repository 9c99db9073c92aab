package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/enlistment/internal/pkg/apperrors"
	"github.com/yigit/enlistment/internal/pkg/logger"
)

// Capabilities checked by the router
const (
	CapUsersWrite        = "users:write"
	CapRolesWrite        = "roles:write"
	CapCoursesWrite      = "courses:write"
	CapSubjectsWrite     = "subjects:write"
	CapSectionsWrite     = "sections:write"
	CapSectionsArchive   = "sections:archive"
	CapEnrollmentsWrite  = "enrollments:write"
	CapEnrollmentsManage = "enrollments:manage"
	CapUsersRead         = "users:read"
	CapRolesRead         = "roles:read"
	CapCoursesRead       = "courses:read"
	CapSubjectsRead      = "subjects:read"
	CapSectionsRead      = "sections:read"
	CapEnrollmentsRead   = "enrollments:read"
	wildcard             = "*"
	readCapabilitySuffix = ":read"
)

// ErrPermissionDenied is returned when the caller's role lacks a capability
var ErrPermissionDenied = apperrors.NewForbiddenError("You don't have permission for this action")

// RoleLookup resolves the role code of a user; nil means the user has no role
type RoleLookup interface {
	GetRoleCode(ctx context.Context, userID int64) (*string, error)
}

// AuthorizationService decides whether a caller may perform an operation
type AuthorizationService struct {
	roles    RoleLookup
	policy   map[string]map[string]struct{}
	enforced bool
}

// NewAuthorizationService creates a new AuthorizationService. policy maps a role code
// to the capabilities it grants; "*" grants everything.
func NewAuthorizationService(roles RoleLookup, policy map[string][]string, enforced bool) *AuthorizationService {
	compiled := make(map[string]map[string]struct{}, len(policy))
	for role, caps := range policy {
		set := make(map[string]struct{}, len(caps))
		for _, c := range caps {
			set[strings.TrimSpace(c)] = struct{}{}
		}
		compiled[strings.ToUpper(role)] = set
	}

	return &AuthorizationService{
		roles:    roles,
		policy:   compiled,
		enforced: enforced,
	}
}

// Enforced reports whether capability checks are active
func (s *AuthorizationService) Enforced() bool {
	return s.enforced
}

// HasCapability reports whether userID holds capability
func (s *AuthorizationService) HasCapability(ctx context.Context, userID int64, capability string) (bool, error) {
	if !s.enforced || strings.HasSuffix(capability, readCapabilitySuffix) {
		return true, nil
	}

	code, err := s.roles.GetRoleCode(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return false, nil
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error resolving role for authorization")
		return false, fmt.Errorf("failed to resolve role: %w", err)
	}
	if code == nil {
		return false, nil
	}

	granted, ok := s.policy[strings.ToUpper(*code)]
	if !ok {
		return false, nil
	}
	if _, all := granted[wildcard]; all {
		return true, nil
	}
	_, has := granted[capability]
	return has, nil
}

// Authorize returns ErrPermissionDenied unless userID holds capability
func (s *AuthorizationService) Authorize(ctx context.Context, userID int64, capability string) error {
	ok, err := s.HasCapability(ctx, userID, capability)
	if err != nil {
		return err
	}
	if !ok {
		logger.Debug().Int64("userID", userID).Str("capability", capability).Msg("Capability denied")
		return ErrPermissionDenied
	}
	return nil
}

// AuthorizeUserChange allows a user to change their own record, otherwise requires users:write
func (s *AuthorizationService) AuthorizeUserChange(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return nil
	}
	return s.Authorize(ctx, actorID, CapUsersWrite)
}

// AuthorizeEnrollmentChange allows a student to write enrollments that belong to
// them; touching anyone else's requires enrollments:manage.
func (s *AuthorizationService) AuthorizeEnrollmentChange(ctx context.Context, actorID int64, studentIDs ...int64) error {
	for _, studentID := range studentIDs {
		if studentID != actorID {
			return s.Authorize(ctx, actorID, CapEnrollmentsManage)
		}
	}
	return nil
}
