package middleware

import (
	"net/http"
	"time"

	"highlaunchpad/database"
	"highlaunchpad/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireActiveSubscription gates the premium tools (AI copy generation)
// behind a live subscription or trial.
func RequireActiveSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		var user users.User

		if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Subscription not found or expired",
			})
			return
		}

		now := time.Now()

		// trial window counts as active
		if user.TrialEndAt != nil && now.Before(*user.TrialEndAt) {
			c.Next()
			return
		}

		if user.SubscriptionEnd == nil || now.After(*user.SubscriptionEnd) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your subscription has expired",
			})
			return
		}

		c.Next()
	}
}
