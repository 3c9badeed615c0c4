package routes

import (
	accountControllers "github.com/BGreenberg79/CT-Module6-MiniProject-E-Commerce-API/controllers/account"
	"github.com/BGreenberg79/CT-Module6-MiniProject-E-Commerce-API/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupAccountRoutes(r *gin.Engine, db *gorm.DB) {
	accounts := r.Group("/accounts")
	{
		accounts.POST("", accountControllers.CreateAccount(db))
		accounts.GET("", accountControllers.GetAllAccounts(db))

		// JWT-protected profile endpoint
		accounts.GET("/me", middleware.ValidateToken, accountControllers.GetOwnAccount(db))

		accounts.GET("/:id", accountControllers.GetAccountByID(db))
		accounts.PUT("/:id", accountControllers.UpdateAccount(db))
		accounts.DELETE("/:id", accountControllers.DeleteAccount(db))
	}
}
