package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "E-Commerce Database")
	})

	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Customer + account CRUD
	SetupCustomerRoutes(r, db)
	SetupAccountRoutes(r, db)

	// Product catalog (reads public, management API-key-protected)
	SetupProductRoutes(r, db)

	// Order aggregate routes
	SetupOrderRoutes(r, db)
}
