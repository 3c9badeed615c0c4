package accountControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BGreenberg79/CT-Module6-MiniProject-E-Commerce-API/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateAccountRequest struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	CustomerID *uint  `json:"customer_id"`
}

type UpdateAccountInput struct {
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	CustomerID *uint   `json:"customer_id"`
}

// POST /accounts
func CreateAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateAccountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var existing models.CustomerAccount
		if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username"})
			return
		}

		if req.CustomerID != nil {
			var customer models.Customer
			if err := db.First(&customer, *req.CustomerID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		account := models.CustomerAccount{
			Username:     req.Username,
			PasswordHash: string(hash),
			CustomerID:   req.CustomerID,
		}
		if err := db.Create(&account).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}
		c.JSON(http.StatusCreated, account)
	}
}

// GET /accounts
func GetAllAccounts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var accounts []models.CustomerAccount
		if err := db.Preload("Customer").Order("created_at DESC").Find(&accounts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch accounts"})
			return
		}
		c.JSON(http.StatusOK, accounts)
	}
}

// GET /accounts/:id
func GetAccountByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
			return
		}
		var account models.CustomerAccount
		if err := db.Preload("Customer").First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

// GET /accounts/me (JWT-protected; account_id comes from the token claims)
func GetOwnAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, _ := c.Get("account_id")
		var account models.CustomerAccount
		if err := db.Preload("Customer").First(&account, "id = ?", accountID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

// PUT /accounts/:id
func UpdateAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
			return
		}
		var account models.CustomerAccount
		if err := db.First(&account, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}

		var input UpdateAccountInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Username != nil {
			var existing models.CustomerAccount
			err := db.Where("username = ? AND id <> ?", *input.Username, account.ID).First(&existing).Error
			if err == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check username"})
				return
			}
			updates["username"] = *input.Username
		}
		if input.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			updates["password_hash"] = string(hash)
		}
		if input.CustomerID != nil {
			var customer models.Customer
			if err := db.First(&customer, *input.CustomerID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
				return
			}
			updates["customer_id"] = *input.CustomerID
		}

		if len(updates) > 0 {
			if err := db.Model(&account).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
				return
			}
		}
		c.JSON(http.StatusOK, account)
	}
}

// DELETE /accounts/:id
func DeleteAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
			return
		}
		var account models.CustomerAccount
		if err := db.First(&account, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		if err := db.Delete(&account).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Account removed successfully"})
	}
}
