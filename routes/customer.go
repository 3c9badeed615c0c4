package routes

import (
	customerControllers "github.com/BGreenberg79/CT-Module6-MiniProject-E-Commerce-API/controllers/customer"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupCustomerRoutes(r *gin.Engine, db *gorm.DB) {
	customers := r.Group("/customers")
	{
		customers.POST("", customerControllers.CreateCustomer(db))
		customers.GET("", customerControllers.GetAllCustomers(db))
		customers.GET("/:id", customerControllers.GetCustomerByID(db))
		customers.PUT("/:id", customerControllers.UpdateCustomer(db))
		customers.DELETE("/:id", customerControllers.DeleteCustomer(db))
	}
}
