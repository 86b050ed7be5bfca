package auth

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	apperrors "git.futuregamestudio.net/be-shared/roulette-game-module.git/errors"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/types"
)

// Context keys for the authenticated subject
const (
	SubjectKey = "subject"
	ClaimsKey  = "claims"
)

// Claims is the token payload accepted by the module. Only destructive
// operations (table reset) are gated, so the claims stay minimal.
type Claims struct {
	Subject string `json:"sub_name,omitempty"`
	Role    string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTMiddleware validates a Bearer token signed with secret and stores
// the subject in the gin context. An empty secret disables the check;
// that is for development setups only.
func JWTMiddleware(secret string, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if header == "" || tokenString == header {
			unauthorized(c, "missing bearer token")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected token")
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(401, types.ErrorResponse{
		StatusCode: 401,
		IsSuccess:  false,
		Error: types.ErrorDetail{
			Timestamp:    time.Now().Format(time.RFC3339),
			Path:         c.Request.URL.Path,
			ErrorCode:    apperrors.CodeUnauthorized,
			ErrorMessage: message,
		},
	})
}

// GetSubject extracts the authenticated subject from the gin context.
func GetSubject(c *gin.Context) (string, bool) {
	v, exists := c.Get(SubjectKey)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
