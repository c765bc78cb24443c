package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"treasury/internal/domain"
)

const tokenIssuer = "treasury"

// CallerClaims are the claims carried by caller tokens. The subject is the
// caller principal.
type CallerClaims struct {
	jwt.RegisteredClaims
}

type callerKey struct{}

// SignToken issues an HS256 token for caller valid for ttl.
func SignToken(secret string, caller domain.Principal, ttl time.Duration) (string, error) {
	if caller.IsAnonymous() {
		return "", errors.New("cannot sign a token for the anonymous principal")
	}
	now := time.Now().UTC()
	claims := CallerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyToken validates signature, issuer and expiry.
func VerifyToken(secret, token string) (*CallerClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &CallerClaims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*CallerClaims)
	if !ok || !parsed.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if domain.Principal(claims.Subject).IsAnonymous() {
		return nil, jwt.ErrTokenInvalidSubject
	}
	return claims, nil
}

// Identity resolves the caller principal from a bearer token. Requests
// without an Authorization header continue as the anonymous caller; a
// present but invalid token is refused.
func Identity(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r.WithContext(ContextWithCaller(r.Context(), domain.AnonymousPrincipal)))
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization", http.StatusUnauthorized)
				return
			}
			claims, err := VerifyToken(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := ContextWithCaller(r.Context(), domain.Principal(claims.Subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext returns the caller principal, anonymous when unset.
func CallerFromContext(ctx context.Context) domain.Principal {
	if v, ok := ctx.Value(callerKey{}).(domain.Principal); ok {
		return v
	}
	return domain.AnonymousPrincipal
}

func ContextWithCaller(ctx context.Context, caller domain.Principal) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}
