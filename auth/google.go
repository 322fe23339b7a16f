package auth

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"github.com/esh-dev257/ecommerce-store/models"
)

// TokenVerifier validates a Google ID token and returns its payload.
// Swapped for a stub in tests.
type TokenVerifier func(c *gin.Context, token, audience string) (*idtoken.Payload, error)

func googleVerifier(c *gin.Context, token, audience string) (*idtoken.Payload, error) {
	return idtoken.Validate(c.Request.Context(), token, audience)
}

// GoogleLoginHandler verifies a Google ID token, fetches or creates the
// user, and responds with a signed session JWT.
func GoogleLoginHandler(db *gorm.DB) gin.HandlerFunc {
	return googleLoginHandler(db, googleVerifier)
}

func googleLoginHandler(db *gorm.DB, verify TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			IDToken string `json:"idToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		payload, err := verify(c, req.IDToken, os.Getenv("GOOGLE_CLIENT_ID"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google ID token"})
			return
		}

		email, _ := payload.Claims["email"].(string)
		name, _ := payload.Claims["name"].(string)
		picture, _ := payload.Claims["picture"].(string)
		googleID := payload.Subject

		// Fetch or create the user
		var user models.User
		err = db.Where("id = ?", googleID).First(&user).Error
		if err == gorm.ErrRecordNotFound {
			user = models.User{
				ID:       googleID,
				Email:    email,
				Name:     name,
				Picture:  picture,
				Provider: "google",
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		} else if err == nil {
			// User already exists → refresh profile
			db.Model(&user).Updates(models.User{Name: name, Picture: picture})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		token, err := IssueJWT(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   token,
		})
	}
}
