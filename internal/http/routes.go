package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kavyamehta/mindscribe/internal/ai"
	"github.com/kavyamehta/mindscribe/internal/identity"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, db *gorm.DB, gateway *ai.Gateway, users *identity.Client, corsOrigin string) {

	// --- Dependencies ---
	env := &Env{DB: db, AI: gateway, Identity: users}

	// --- Middleware ---

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	// CORS: the session cookie is SameSite=None, so credentials must be
	// allowed for the configured origin.
	if corsOrigin == "" {
		corsOrigin = "*" // Default to allow all for local dev
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// --- API Routes ---

	api := router.Group("/api")
	api.Use(IdentityMiddleware(users))
	{
		api.GET("/oauth/google/redirect_url", env.GetOAuthRedirectURL)
		api.POST("/sessions", env.CreateSession)
		api.GET("/users/me", env.GetCurrentUser)
		api.GET("/logout", env.Logout)

		api.GET("/entries", env.GetEntries)
		api.POST("/entries", env.CreateEntry)
		api.GET("/insights/weekly", env.GetWeeklyInsight)
	}

	// --- Serve Frontend ---
	// This MUST come AFTER the API routes. The OAuth callback serves the
	// same page; it posts its ?code= to /api/sessions from the browser.
	router.StaticFile("/", "./public/index.html")
	router.StaticFile("/auth/callback", "./public/index.html")
}
