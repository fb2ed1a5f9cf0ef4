package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"ems-project/backend/logging"
	"ems-project/backend/utils"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenCookie is the httpOnly cookie set at login.
const TokenCookie = "token"

func WithClaims(ctx context.Context, claims *utils.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims stored by JWTAuth, or nil.
func ClaimsFromContext(ctx context.Context) *utils.Claims {
	claims, _ := ctx.Value(claimsKey).(*utils.Claims)
	return claims
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// JWTAuth accepts the session token from the cookie or a bearer header.
// A missing token is 401, a token that fails verification is 403.
func JWTAuth(tokens *utils.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := tokenFromRequest(r)
			if tokenStr == "" {
				logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_TOKEN, Description: No token for request to %s %s", r.Method, r.URL.Path)
				utils.RespondWithMessage(w, http.StatusUnauthorized, "No token")
				return
			}

			claims, err := tokens.ValidateToken(tokenStr)
			if err != nil {
				logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token for request to %s %s: %v", r.Method, r.URL.Path, err)
				utils.RespondWithMessage(w, http.StatusForbidden, "Invalid token")
				return
			}

			logging.Logger.Debugf("Event ID: JWT_AUTH_SUCCESS, Description: %s authenticated as %s for %s %s", claims.Email, claims.Role, r.Method, r.URL.Path)
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole must run after JWTAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil || !slices.Contains(roles, claims.Role) {
				role := ""
				if claims != nil {
					role = claims.Role
				}
				logging.Logger.Warnf("Event ID: ROLE_FORBIDDEN, Description: Role '%s' may not access %s %s", role, r.Method, r.URL.Path)
				utils.RespondWithMessage(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
