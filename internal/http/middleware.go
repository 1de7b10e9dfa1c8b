package http

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/kavyamehta/mindscribe/internal/identity"
)

// sessionCookieName is the HTTP-only cookie carrying the opaque
// session token issued by the users service.
const sessionCookieName = "mindscribe_session_token"

// sessionMaxAge is 60 days, matching the token lifetime upstream.
const sessionMaxAge = 60 * 24 * 60 * 60

const userContextKey = "currentUser"

// IdentityMiddleware resolves the session cookie to a user once per
// request and stores it in the gin context. A missing cookie, an
// invalid token, or a users-service failure all mean anonymous --
// never an error.
func IdentityMiddleware(client *identity.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := client.CurrentUser(c.Request.Context(), token)
		if err != nil {
			log.Printf("Identity lookup failed, treating request as anonymous: %v", err)
			c.Next()
			return
		}
		if user != nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the identity resolved by IdentityMiddleware, or
// nil for an anonymous request.
func CurrentUser(c *gin.Context) *identity.User {
	if v, ok := c.Get(userContextKey); ok {
		if u, ok := v.(*identity.User); ok {
			return u
		}
	}
	return nil
}

// SecurityHeadersMiddleware adds basic, sensible security headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Prevents clickjacking
		c.Header("X-Frame-Options", "DENY")
		// Prevents MIME-type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// 'unsafe-inline' is needed for Alpine.js attributes; the CDNs
		// serve Alpine, Chart.js and Tailwind for the dashboard page.
		csp := "default-src 'self';"
		csp += " script-src 'self' 'unsafe-inline' cdn.jsdelivr.net;"
		csp += " style-src 'self' 'unsafe-inline' cdn.tailwindcss.com;"
		csp += " img-src 'self' data: https:;"
		c.Header("Content-Security-Policy", csp)

		c.Next()
	}
}
