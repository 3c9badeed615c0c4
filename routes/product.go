package routes

import (
	productcontroller "github.com/BGreenberg79/CT-Module6-MiniProject-E-Commerce-API/controllers/product"
	"github.com/BGreenberg79/CT-Module6-MiniProject-E-Commerce-API/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		// Public catalog reads
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
	}

	// Management endpoints require the admin API key
	manage := r.Group("/products", middleware.ValidateAPIKey)
	{
		manage.POST("", productcontroller.CreateProduct(db))
		manage.PUT("/:id", productcontroller.UpdateProduct(db))
		manage.DELETE("/:id", productcontroller.DeleteProduct(db))
		manage.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
	}
}
