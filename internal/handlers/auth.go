package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/form-service/internal/config"
)

const userIDKey = "user_id"

var errMissingToken = errors.New("missing bearer token")

// TokenParser resolves a bearer token to the id of the authenticated user.
type TokenParser func(token string) (string, error)

// NewCasdoorTokenParser configures the Casdoor SDK and returns a parser that
// identifies users as "owner/name".
func NewCasdoorTokenParser(cfg config.AuthConfig) TokenParser {
	casdoorsdk.InitConfig(cfg.Endpoint, cfg.ClientID, cfg.ClientSecret, cfg.Certificate, cfg.Organization, cfg.Application)

	return func(token string) (string, error) {
		claims, err := casdoorsdk.ParseJwtToken(token)
		if err != nil {
			return "", err
		}
		return claims.Owner + "/" + claims.Name, nil
	}
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the user id under "user_id".
func AuthMiddleware(parse TokenParser, base BaseHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			base.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", errMissingToken)
			return
		}

		userID, err := parse(strings.TrimSpace(token))
		if err != nil {
			base.RespondWithError(c, http.StatusUnauthorized, "User not authenticated", err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}
