package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/medregister-pl/asset-register/pkg/register/middleware"
	"github.com/medregister-pl/asset-register/pkg/register/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret []byte, scope string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":       "7",
		"name":      "jkowalski",
		"firstName": "Jan",
		"lastName":  "Kowalski",
		"hospital":  "Szpital Miejski",
		"scope":     scope,
		"exp":       time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func newRouter(secret []byte, scope string, captured *models.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	g.GET("/protected", middleware.RequireAccess(secret, scope), func(c *gin.Context) {
		ident, ok := middleware.IdentityFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		*captured = ident
		c.Status(http.StatusOK)
	})
	return g
}

func TestRequireAccess_ValidToken(t *testing.T) {
	secret := []byte("sekret")
	var ident models.Identity
	g := newRouter(secret, "assets:read", &ident)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "assets:read assets:write"))
	g.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 7, ident.UserID)
	assert.Equal(t, "Jan", ident.FirstName)
	assert.Equal(t, "Szpital Miejski", ident.Hospital)
}

func TestRequireAccess_MissingScope(t *testing.T) {
	secret := []byte("sekret")
	var ident models.Identity
	g := newRouter(secret, "admin", &ident)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "assets:read assets:write"))
	g.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAccess_BadSignature(t *testing.T) {
	var ident models.Identity
	g := newRouter([]byte("sekret"), "assets:read", &ident)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, []byte("inny-sekret"), "assets:read"))
	g.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAccess_NoHeader(t *testing.T) {
	var ident models.Identity
	g := newRouter([]byte("sekret"), "assets:read", &ident)

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
