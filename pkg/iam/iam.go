package iam

import (
	"net/http"

	"github.com/somGabriel/Proago/pkg/errx"
)

// Role is the coarse access level of an operator account.
type Role string

const (
	RoleRecruiter Role = "RECRUITER"
	RoleManager   Role = "MANAGER"
	RoleWorker    Role = "WORKER"
	RoleAdmin     Role = "ADMIN"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleRecruiter, RoleManager, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

// View identifies a gated application surface.
type View string

const (
	ViewPipeline  View = "pipeline"
	ViewTeam      View = "team"
	ViewFormation View = "formation"
	ViewPlanning  View = "planning"
)

// viewAccess maps each surface to the roles allowed to open it. Admin is
// allowed everywhere and is not listed.
var viewAccess = map[View][]Role{
	ViewPipeline:  {RoleRecruiter},
	ViewTeam:      {RoleManager},
	ViewFormation: {RoleManager, RoleRecruiter},
	ViewPlanning:  {RoleWorker, RoleManager},
}

// CanAccess reports whether a role may open a view.
func CanAccess(role Role, view View) bool {
	if role == RoleAdmin {
		return true
	}
	for _, allowed := range viewAccess[view] {
		if allowed == role {
			return true
		}
	}
	return false
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("IAM")

var (
	CodeUnauthorized       = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Authentication required")
	CodeForbidden          = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Identity verification failed.")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Token is invalid or expired")
	CodeSessionNotFound    = ErrRegistry.Register("SESSION_NOT_FOUND", errx.TypeNotFound, http.StatusUnauthorized, "Session not found")
)

func ErrUnauthorized() *errx.Error {
	return ErrRegistry.New(CodeUnauthorized)
}

func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrSessionNotFound() *errx.Error {
	return ErrRegistry.New(CodeSessionNotFound)
}
