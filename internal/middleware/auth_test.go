package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsuite/internal/domain"
	"opsuite/internal/middleware"
)

const testSecret = "test-secret"
const testIssuer = "opsuite"

func signToken(t *testing.T, claims middleware.AccessClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() middleware.AccessClaims {
	return middleware.AccessClaims{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Email:    "user@example.com",
		Role:     domain.RoleMember,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestTokenVerifier_ValidToken(t *testing.T) {
	verifier := middleware.NewTokenVerifier(testSecret, testIssuer)
	claims := validClaims()

	parsed, err := verifier.Verify(signToken(t, claims, testSecret))

	require.NoError(t, err)
	assert.Equal(t, claims.TenantID, parsed.TenantID)
	assert.Equal(t, claims.UserID, parsed.UserID)
	assert.Equal(t, domain.RoleMember, parsed.Role)
}

func TestTokenVerifier_WrongSecret(t *testing.T) {
	verifier := middleware.NewTokenVerifier(testSecret, testIssuer)

	_, err := verifier.Verify(signToken(t, validClaims(), "other-secret"))
	assert.Error(t, err)
}

func TestTokenVerifier_WrongIssuer(t *testing.T) {
	verifier := middleware.NewTokenVerifier(testSecret, testIssuer)
	claims := validClaims()
	claims.Issuer = "someone-else"

	_, err := verifier.Verify(signToken(t, claims, testSecret))
	assert.Error(t, err)
}

func TestTokenVerifier_ExpiredToken(t *testing.T) {
	verifier := middleware.NewTokenVerifier(testSecret, testIssuer)
	claims := validClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	_, err := verifier.Verify(signToken(t, claims, testSecret))
	assert.Error(t, err)
}

func TestTokenVerifier_MissingTenant(t *testing.T) {
	verifier := middleware.NewTokenVerifier(testSecret, testIssuer)
	claims := validClaims()
	claims.TenantID = uuid.Nil

	_, err := verifier.Verify(signToken(t, claims, testSecret))
	assert.Error(t, err)
}

func TestAuthMiddleware_InjectsContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := middleware.NewTokenVerifier(testSecret, testIssuer)
	claims := validClaims()

	r := gin.New()
	r.Use(middleware.AuthMiddleware(verifier))
	r.GET("/probe", func(c *gin.Context) {
		tenantID, err := middleware.GetTenantID(c)
		require.NoError(t, err)
		assert.Equal(t, claims.TenantID, tenantID)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims, testSecret))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := middleware.NewTokenVerifier(testSecret, testIssuer)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(verifier))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := middleware.NewTokenVerifier(testSecret, testIssuer)
	claims := validClaims() // member, not admin

	r := gin.New()
	r.Use(middleware.AuthMiddleware(verifier))
	r.Use(middleware.RequireRole(domain.RoleAdmin))
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims, testSecret))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
