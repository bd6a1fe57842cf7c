package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/medregister-pl/asset-register/pkg/register/models"
)

const identityKey = "identity"

// RequireAccess verifies the bearer token and checks the required scope.
// The decoded identity lands in the request context so handlers get an
// explicit caller value instead of a process-wide session.
func RequireAccess(secret []byte, requiredScope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		ident, err := parseIdentity(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid access token"})
			return
		}
		if !ident.HasScope(requiredScope) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access token missing required scope"})
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// IdentityFrom returns the authenticated caller stored by RequireAccess.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	ident, ok := v.(models.Identity)
	return ident, ok
}

func parseIdentity(tokenStr string, secret []byte) (models.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, fmt.Errorf("unexpected claims type")
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return models.Identity{}, fmt.Errorf("invalid sub claim: %w", err)
	}
	scopeStr, _ := claims["scope"].(string)

	ident := models.Identity{
		UserID: uint(userID),
		Scopes: strings.Fields(scopeStr),
	}
	ident.Name, _ = claims["name"].(string)
	ident.FirstName, _ = claims["firstName"].(string)
	ident.LastName, _ = claims["lastName"].(string)
	ident.Hospital, _ = claims["hospital"].(string)
	return ident, nil
}
