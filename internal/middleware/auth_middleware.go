package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inventory_backend/internal/metrics"
	"inventory_backend/pkg/utils"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

func unauthorized(c *gin.Context, message string) {
	metrics.RecordAuthFailure()
	utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, message, ""))
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			unauthorized(c, "Invalid authorization header format. Use Bearer <token>")
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			utils.LogDebug("Rejected token", map[string]interface{}{"error": err.Error(), "request_id": c.GetString(ContextRequestID)})
			unauthorized(c, "Invalid or expired token")
			return
		}

		// Set user information in the context for downstream handlers
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)

		c.Next()
	}
}
