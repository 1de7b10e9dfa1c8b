package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kavyamehta/mindscribe/internal/ai"
	"github.com/kavyamehta/mindscribe/internal/identity"
	"github.com/kavyamehta/mindscribe/internal/models"
)

// insightWindowDays is the trailing window the weekly insight looks at.
const insightWindowDays = 14

// --- Structs for request binding ---

type CreateEntryInput struct {
	Content        string `json:"content" binding:"required,min=1"`
	UserMoodRating *int   `json:"user_mood_rating" binding:"omitempty,min=1,max=10"`
}

type CreateSessionInput struct {
	Code string `json:"code" binding:"required"`
}

// --- Handlers ---

type Env struct {
	DB       *gorm.DB
	AI       *ai.Gateway
	Identity *identity.Client
}

// scoped narrows a query to the requester's visibility partition:
// their own rows when signed in, the anonymous rows otherwise. Listing
// and insight queries never cross that line.
func (e *Env) scoped(c *gin.Context) *gorm.DB {
	if user := CurrentUser(c); user != nil {
		return e.DB.Where("user_id = ?", user.ID)
	}
	return e.DB.Where("user_id IS NULL")
}

func (e *Env) GetOAuthRedirectURL(c *gin.Context) {
	url, err := e.Identity.RedirectURL(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching OAuth redirect URL: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get redirect URL"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirectUrl": url})
}

func (e *Env) CreateSession(c *gin.Context) {
	var input CreateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No authorization code provided"})
		return
	}

	token, err := e.Identity.ExchangeCode(c.Request.Context(), input.Code)
	if err != nil {
		log.Printf("Error exchanging authorization code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish session"})
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(sessionCookieName, token, sessionMaxAge, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (e *Env) GetCurrentUser(c *gin.Context) {
	// nil marshals to JSON null for anonymous requests
	c.JSON(http.StatusOK, CurrentUser(c))
}

func (e *Env) Logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookieName); err == nil && token != "" {
		if err := e.Identity.DeleteSession(c.Request.Context(), token); err != nil {
			// Cookie is cleared either way; the token just outlives us upstream.
			log.Printf("Error deleting session: %v", err)
		}
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (e *Env) GetEntries(c *gin.Context) {
	var entries []models.DiaryEntry
	if err := e.scoped(c).Order("created_at desc").Find(&entries).Error; err != nil {
		log.Printf("Error fetching entries: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetWeeklyInsight never fails toward the caller: any problem on the
// way (store error, unconfigured model, too few entries, model
// failure) degrades to {"insight": null}.
func (e *Env) GetWeeklyInsight(c *gin.Context) {
	cutoff := time.Now().AddDate(0, 0, -insightWindowDays)

	var entries []models.DiaryEntry
	if err := e.scoped(c).Where("created_at >= ?", cutoff).Order("created_at desc").Find(&entries).Error; err != nil {
		log.Printf("Error fetching entries for weekly insight: %v", err)
		c.JSON(http.StatusOK, gin.H{"insight": nil})
		return
	}

	insight := e.AI.WeeklyInsight(c.Request.Context(), entries)
	if !insight.Available {
		c.JSON(http.StatusOK, gin.H{"insight": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": insight.Text})
}

func (e *Env) CreateEntry(c *gin.Context) {
	var input CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !e.AI.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Gemini API key not configured. Set GEMINI_API_KEY in the server environment.",
		})
		return
	}

	analysis, err := e.AI.Classify(c.Request.Context(), input.Content)
	if err != nil {
		log.Printf("Error analyzing entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry. Please try again."})
		return
	}

	entry := models.DiaryEntry{
		Content:        input.Content,
		Mood:           analysis.Mood,
		Stress:         analysis.Stress,
		AIInsights:     analysis.Insights,
		UserMoodRating: input.UserMoodRating,
	}
	if user := CurrentUser(c); user != nil {
		entry.UserID = &user.ID
	}

	if err := e.DB.Create(&entry).Error; err != nil {
		log.Printf("Error creating entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry. Please try again."})
		return
	}

	// Re-read the row so the response carries exactly what was
	// persisted, including store-assigned timestamps.
	var created models.DiaryEntry
	if err := e.DB.First(&created, entry.ID).Error; err != nil {
		log.Printf("Error re-reading created entry %d: %v", entry.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry. Please try again."})
		return
	}

	c.JSON(http.StatusCreated, created)
}
