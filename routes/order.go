package routes

import (
	orderControllers "github.com/BGreenberg79/CT-Module6-MiniProject-E-Commerce-API/controllers/order"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// Place a new order
		orders.POST("", orderControllers.PlaceOrderHandler(db))

		// Fetch all orders
		orders.GET("", orderControllers.GetAllOrdersHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// Fetch a single order
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Replace scalar fields and the full product membership
		orders.PUT("/:orderID", orderControllers.UpdateOrderHandler(db))

		// Add/remove a single product membership
		orders.POST("/:orderID/products/:productID", orderControllers.AddOrderLineHandler(db))
		orders.DELETE("/:orderID/products/:productID", orderControllers.RemoveOrderLineHandler(db))

		// Delete an order (join rows cascade, products stay)
		orders.DELETE("/:orderID", orderControllers.DeleteOrderHandler(db))
	}
}
