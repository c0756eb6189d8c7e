package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtutil "realty-hub/app/jwt"
	"realty-hub/app/repo"
)

type ctxKey int

const (
	ClaimsKey ctxKey = iota + 1
	RequestIDKey
)

type Auth struct {
	Signer *jwtutil.Signer
	Users  *repo.UserRepository
}

func (a *Auth) parseBearer(r *http.Request) (*jwtutil.Claims, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil, false
	}
	claims, err := a.Signer.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}

// RequireRoles gates next behind the declared role set. An empty set is a
// public route and passes unconditionally. Otherwise the bearer token must
// parse, the referenced user must still exist, and the user's stored role
// (not the token's) must be in the set.
func (a *Auth) RequireRoles(next http.Handler, roles ...string) http.Handler {
	if len(roles) == 0 {
		return next
	}
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.parseBearer(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		u, err := a.Users.FindByID(r.Context(), claims.UserID)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if _, ok := allowed[u.Role]; !ok {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireToken accepts any valid bearer token, with no role check.
func (a *Auth) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := a.parseBearer(r)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
