package auth

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/BGreenberg79/CT-Module6-MiniProject-E-Commerce-API/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler verifies a customer account's credentials and returns a signed
// token plus the account profile.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var account models.CustomerAccount
		if err := db.Preload("Customer").Where("username = ?", req.Username).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}

		token := issueJWT(account)
		if token == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"account": account,
			"token":   token,
		})
	}
}

// issueJWT generates a JWT token for a customer account
func issueJWT(account models.CustomerAccount) string {
	claims := jwt.MapClaims{
		"account_id": account.ID,
		"username":   account.Username,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
	}
	if account.CustomerID != nil {
		claims["customer_id"] = *account.CustomerID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return ""
	}
	return signedToken
}
