package middleware

import (
	"net/http"

	"github.com/workforcehq/hrms-backend-go/internal/domain/user"
	"github.com/workforcehq/hrms-backend-go/internal/handler/http/response"
)

// RequireRole allows only the listed roles through. System admins pass every
// gate.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := user.Role(Role(r.Context()))
			if role == user.RoleSystemAdmin {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := allowed[role]; !ok {
				response.HandleError(w, user.ErrRoleNotAllowed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission gates a route on the role permission map instead of a
// hardcoded role list.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := user.Role(Role(r.Context()))
			if !user.HasPermission(role, permission) {
				response.HandleError(w, user.ErrRoleNotAllowed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
