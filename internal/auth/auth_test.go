package auth

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/concavehq/concave/internal/cache"
	"github.com/concavehq/concave/internal/config"
	"github.com/concavehq/concave/internal/database"
	"github.com/concavehq/concave/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signToken(t *testing.T, userID int64, email string) string {
	t.Helper()
	token, err := Encode(secret, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: email,
	})
	require.NoError(t, err)
	return token
}

func TestEncodeDecode(t *testing.T) {
	token := signToken(t, 42, "user@example.com")

	claims, err := Decode(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestDecodeWrongSecret(t *testing.T) {
	token := signToken(t, 42, "user@example.com")

	_, err := Decode("other-secret", token)
	assert.Error(t, err)
}

func TestVerifyUserProvisionsRow(t *testing.T) {
	db := database.NewTestDatabase(t, true)
	cacher := cache.NewMemoryCache(1024 * 1024)
	token := signToken(t, 42, "User@Example.com")

	claims, err := VerifyUser(db, cacher, secret, token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", 42).Error)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestMiddleware(t *testing.T) {
	db := database.NewTestDatabase(t, true)
	cacher := cache.NewMemoryCache(1024 * 1024)
	cfg := &config.JWTConfig{Secret: secret}

	var gotUser int64
	handler := Middleware(db, cacher, cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 42, "user@example.com"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUser)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
