package permissions

import (
	"context"
	_ "embed"
	"encoding/json"
	"slices"

	"dwell/shared/constant"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}

// Identity carries the caller's resolved credentials. Services receive it
// explicitly so access decisions are testable without a request context.
type Identity struct {
	UserID        string
	Email         string
	Role          string
	Authenticated bool
}

// Anonymous is the identity of an unauthenticated caller.
func Anonymous() Identity {
	return Identity{}
}

// FromContext rebuilds the caller identity from the claims stored by the
// auth middleware. Missing claims yield an anonymous identity.
func FromContext(ctx context.Context) Identity {
	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		return Anonymous()
	}

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Identity{
		UserID:        userID,
		Email:         email,
		Role:          role,
		Authenticated: true,
	}
}

func IsAdmin(actor Identity) bool {
	return actor.Authenticated && actor.Role == constant.RoleAdmin
}

func IsCustodian(actor Identity) bool {
	return actor.Authenticated && actor.Role == constant.RoleCustodian
}

func IsStudent(actor Identity) bool {
	return actor.Authenticated && actor.Role == constant.RoleStudent
}

func IsCustodianOrAdmin(actor Identity) bool {
	return IsCustodian(actor) || IsAdmin(actor)
}
