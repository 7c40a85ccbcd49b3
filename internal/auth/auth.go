// Package auth resolves the requesting principal from a bearer token.
// Credential validation happens upstream; the token only carries the
// already-verified principal id and email.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/concavehq/concave/internal/cache"
	"github.com/concavehq/concave/internal/config"
	"github.com/concavehq/concave/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type authContextKey string

const authKey authContextKey = "authUser"

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func Encode(secret string, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func Decode(secret string, token string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// GetUser returns the principal id stored on the request context, or 0 when
// the request is unauthenticated.
func GetUser(ctx context.Context) int64 {
	claims, _ := ctx.Value(authKey).(*Claims)
	if claims == nil {
		return 0
	}
	userID, _ := strconv.ParseInt(claims.Subject, 10, 64)
	return userID
}

func GetClaims(ctx context.Context) *Claims {
	claims, _ := ctx.Value(authKey).(*Claims)
	return claims
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, authKey, claims)
}

// VerifyUser decodes the token and makes sure a user row exists for the
// principal, creating one on first sight so share invites can resolve it
// by email later.
func VerifyUser(db *gorm.DB, cacher cache.Cacher, secret, token string) (*Claims, error) {
	claims, err := Decode(secret, token)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, fmt.Errorf("invalid subject")
	}

	_, err = cache.Fetch(cacher, cache.KeyUser(userID), 0, func() (*models.User, error) {
		user := &models.User{ID: userID, Email: strings.ToLower(claims.Email)}
		if err := db.Where(models.User{ID: userID}).FirstOrCreate(user).Error; err != nil {
			return nil, err
		}
		return user, nil
	})
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// Middleware authenticates requests via the Authorization header or the
// access-token cookie and rejects anything without a valid principal.
func Middleware(db *gorm.DB, cacher cache.Cacher, cfg *config.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}
			claims, err := VerifyUser(db, cacher, cfg.Secret, token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie("access-token"); err == nil {
		return c.Value
	}
	return ""
}
