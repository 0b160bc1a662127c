package middleware

import (
	"context"
	"net/http"

	"github.com/gemchat-dev/gemchat/shared/domain"
	"github.com/gemchat-dev/gemchat/shared/utils"
)

// RequestVerifier turns an Authorization header value into token claims.
type RequestVerifier interface {
	VerifyRequest(authorizationHeader string) (*domain.Claims, error)
}

// Key to store the user claims in the request context
type key int

const UserClaimsKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	verifier RequestVerifier
}

// NewAuth creates a new Auth middleware instance
func NewAuth(verifier RequestVerifier) *Auth {
	return &Auth{verifier: verifier}
}

// NeedAuth returns middleware that requires a valid bearer token.
// Missing token is 401, a bad or expired one is 403.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := a.verifier.VerifyRequest(r.Header.Get("Authorization"))
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			setLogUser(r.Context(), claims.Id)
			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext retrieves the verified claims from the context
func GetUserFromContext(r *http.Request) *domain.Claims {
	claims, ok := r.Context().Value(UserClaimsKey).(*domain.Claims)
	if !ok {
		return nil
	}
	return claims
}
