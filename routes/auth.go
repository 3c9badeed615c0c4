package routes

import (
	"github.com/BGreenberg79/CT-Module6-MiniProject-E-Commerce-API/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	r.POST("/auth/login", auth.LoginHandler(db))
}
