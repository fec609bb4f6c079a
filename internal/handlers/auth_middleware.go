package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/widget-service/internal/services"
	"github.com/SAP-F-2025/widget-service/internal/utils"
)

const userIDKey = "user_id"

// IdentityParser resolves a bearer token to the learner's user id.
type IdentityParser interface {
	UserID(token string) (string, error)
}

type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Certificate  string
	Organization string
	Application  string
}

// CasdoorIdentity verifies tokens issued by Casdoor against the application certificate.
type CasdoorIdentity struct {
	client *casdoorsdk.Client
}

func NewCasdoorIdentity(cfg CasdoorConfig) *CasdoorIdentity {
	return &CasdoorIdentity{
		client: casdoorsdk.NewClient(
			cfg.Endpoint,
			cfg.ClientID,
			cfg.ClientSecret,
			cfg.Certificate,
			cfg.Organization,
			cfg.Application,
		),
	}
}

func (i *CasdoorIdentity) UserID(token string) (string, error) {
	claims, err := i.client.ParseJwtToken(token)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token's user id for handlers. A nil parser disables authentication.
func AuthMiddleware(parser IdentityParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if parser == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing bearer token",
				Code:    CodeUnauthorized,
			})
			return
		}

		userID, err := parser.UserID(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid token",
				Details: err.Error(),
				Code:    CodeUnauthorized,
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequestContext carries the request id into the request context so service
// logs can be correlated with the access log.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := utils.GetRequestID(c); id != "" {
			c.Request = c.Request.WithContext(services.WithRequestID(c.Request.Context(), id))
		}
		c.Next()
	}
}
