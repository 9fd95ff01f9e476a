package routes

import (
	adminapi "highlaunchpad/internal/api/admin"
	aiapi "highlaunchpad/internal/api/ai"
	authapi "highlaunchpad/internal/api/auth"
	automationapi "highlaunchpad/internal/api/automation"
	"highlaunchpad/internal/api/billing"
	builderapi "highlaunchpad/internal/api/builder"
	coursesapi "highlaunchpad/internal/api/courses"
	crmapi "highlaunchpad/internal/api/crm"
	formsapi "highlaunchpad/internal/api/forms"
	oauthapi "highlaunchpad/internal/api/oauth"
	"highlaunchpad/internal/api/plans"
	renderapi "highlaunchpad/internal/api/render"
	socialapi "highlaunchpad/internal/api/social"
	stripewebhooks "highlaunchpad/internal/api/stripewebhook"
	"highlaunchpad/internal/api/users"
	"highlaunchpad/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Raw-body routes stay outside the sanitizer (Stripe signs the payload)
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Published sites, resolved by subdomain
	r.GET("/render/:subdomain/*slug", renderapi.PublicPage)

	// Template catalog is browsable without an account
	r.GET("/templates", builderapi.ListTemplates)
	r.GET("/templates/:slug", builderapi.GetTemplate)

	// ✅ Apply input sanitization to public routes only
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/api/auth/register", authapi.Register)
	public.POST("/api/auth/login", authapi.Login)
	public.POST("/api/auth/session-login", authapi.SessionLogin)
	public.POST("/api/auth/session-logout", authapi.SessionLogout)
	public.POST("/api/auth/resend-verification", authapi.ResendVerification)
	public.POST("/api/auth/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/api/auth/reset-password", authapi.ResetPassword)
	public.GET("/verify", users.VerifyEmail)
	public.GET("/plans", plans.ListPlans)

	// Embedded forms post here from published pages
	public.POST("/api/forms/submit", formsapi.Submit)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.SessionAuth())
	auth.GET("/me", users.GetCurrentUser)

	auth.GET("/api/pages", builderapi.ListPages)
	auth.POST("/api/pages/from-template/:slug", builderapi.CreatePageFromTemplate)
	auth.GET("/api/pages/:id", builderapi.GetPage)
	auth.DELETE("/api/pages/:id", builderapi.DeletePage)
	auth.POST("/api/pages/:id/publish", builderapi.PublishPage)
	auth.POST("/api/pages/:id/unpublish", builderapi.UnpublishPage)
	auth.GET("/api/pages/:id/preview", builderapi.PreviewPage)

	auth.POST("/api/pages/:id/components", builderapi.AddComponent)
	auth.PUT("/api/pages/:id/components/reorder", builderapi.ReorderComponents)
	auth.PUT("/api/pages/:id/components/:componentID", builderapi.UpdateComponent)
	auth.DELETE("/api/pages/:id/components/:componentID", builderapi.RemoveComponent)

	auth.GET("/api/crm/leads", crmapi.ListLeads)
	auth.POST("/api/crm/leads", crmapi.CreateLead)
	auth.PUT("/api/crm/leads/:id/stage", crmapi.UpdateLeadStage)
	auth.DELETE("/api/crm/leads/:id", crmapi.DeleteLead)

	auth.GET("/api/forms/submissions", formsapi.ListSubmissions)

	auth.GET("/api/social/profiles", socialapi.ListProfiles)
	auth.GET("/api/social/posts", socialapi.ListPosts)
	auth.POST("/api/social/posts", socialapi.CreatePost)
	auth.PUT("/api/social/posts/:id", socialapi.UpdatePost)
	auth.DELETE("/api/social/posts/:id", socialapi.DeletePost)

	auth.POST("/api/oauth/twitter/connect", oauthapi.TwitterConnect)
	auth.GET("/api/oauth/twitter/callback", oauthapi.TwitterCallback)
	auth.POST("/api/oauth/twitter/request-token", oauthapi.TwitterRequestToken)
	auth.GET("/api/oauth/twitter/access-token", oauthapi.TwitterAccessToken)

	auth.GET("/api/courses", coursesapi.ListCourses)
	auth.POST("/api/courses", coursesapi.CreateCourse)
	auth.DELETE("/api/courses/:id", coursesapi.DeleteCourse)
	auth.POST("/api/courses/:id/modules", coursesapi.CreateModule)
	auth.DELETE("/api/courses/:id/modules/:moduleID", coursesapi.DeleteModule)
	auth.POST("/api/courses/:id/modules/:moduleID/lessons", coursesapi.CreateLesson)
	auth.DELETE("/api/courses/:id/modules/:moduleID/lessons/:lessonID", coursesapi.DeleteLesson)

	auth.GET("/api/automation/flows", automationapi.ListFlows)
	auth.POST("/api/automation/flows", automationapi.CreateFlow)
	auth.GET("/api/automation/flows/:id", automationapi.GetFlow)
	auth.PUT("/api/automation/flows/:id", automationapi.UpdateFlow)
	auth.DELETE("/api/automation/flows/:id", automationapi.DeleteFlow)

	auth.GET("/api/payments", billing.GetPaymentHistory)
	auth.POST("/api/create-checkout-session", billing.CreateCheckoutSession)
	auth.POST("/api/billing-portal", billing.CreateBillingPortal)
	auth.POST("/api/cancel-downgrade", billing.CancelDowngrade)

	// Subscribed users
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireActiveSubscription())
	subscribed.POST("/api/change-plan", billing.ChangePlan)

	subscribed.POST("/api/ai/generate-ad-copy", aiapi.GenerateAdCopy)
	subscribed.POST("/api/ai/suggest-ctas", aiapi.SuggestCTAs)
	subscribed.POST("/api/ai/generate-product-review", aiapi.GenerateProductReview)
	subscribed.POST("/api/ai/generate-product-hook", aiapi.GenerateProductHook)
	subscribed.POST("/api/ai/generate-email-content", aiapi.GenerateEmailContent)
	subscribed.POST("/api/ai/generate-image", aiapi.GenerateImage)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.SessionAuth(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/sync-plans", plans.SyncPlansFromStripe)
	admin.POST("/templates", adminapi.CreateTemplate)
	admin.PUT("/templates/:slug", adminapi.UpdateTemplate)
}
