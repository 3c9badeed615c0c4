package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/BGreenberg79/CT-Module6-MiniProject-E-Commerce-API/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentinel errors for the order aggregate. Handlers map these to HTTP
// statuses; callers test them with errors.Is.
var (
	ErrEmptyProductList = errors.New("order must contain at least one product")
	ErrInvalidOrderDate = errors.New("invalid order_date")
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrLineNotFound     = errors.New("product not found in order")
)

const orderDateLayout = "2006-01-02"

// -------- Request Structs --------

type PlaceOrderRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	OrderDate  string `json:"order_date" binding:"required"` // YYYY-MM-DD
	Status     string `json:"status" binding:"required"`
	ProductIDs []uint `json:"product_ids"`
}

// UpdateOrderRequest carries full replacement semantics: the product list
// becomes the order's entire membership, and anything omitted is removed.
type UpdateOrderRequest struct {
	CustomerID uint   `json:"customer_id" binding:"required"`
	OrderDate  string `json:"order_date" binding:"required"`
	Status     string `json:"status" binding:"required"`
	ProductIDs []uint `json:"product_ids"`
}

// -------- Helpers --------

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// resolveProducts looks up every id, collapsing duplicates to a single
// membership, and returns the resolved products plus the sum of their prices.
// A missing id aborts the whole resolution.
func resolveProducts(tx *gorm.DB, ids []uint) ([]models.Product, float64, error) {
	seen := make(map[uint]bool, len(ids))
	var products []models.Product
	var total float64
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
			}
			return nil, 0, err
		}
		products = append(products, product)
		total += product.Price
	}
	return products, total, nil
}

// recomputeTotalPrice re-derives total_price from the order's current product
// memberships. Must run inside the same transaction as the membership change.
func recomputeTotalPrice(tx *gorm.DB, order *models.Order) error {
	var products []models.Product
	if err := tx.Model(order).Association("Products").Find(&products); err != nil {
		return err
	}
	var total float64
	for _, p := range products {
		total += p.Price
	}
	order.TotalPrice = total
	order.Products = products
	return tx.Model(order).Update("total_price", total).Error
}

func customerExists(tx *gorm.DB, id uint) error {
	var customer models.Customer
	if err := tx.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return nil
}

// statusForOrderError picks the HTTP status for a failed order operation.
func statusForOrderError(err error) int {
	switch {
	case errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyProductList),
		errors.Is(err, ErrInvalidOrderDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// -------- Core Logic --------

// PlaceOrder creates a new order with its initial product memberships and a
// computed total price. Either the order and all of its join rows are
// persisted, or nothing is.
func PlaceOrder(db *gorm.DB, req PlaceOrderRequest) (*models.Order, error) {
	if len(req.ProductIDs) == 0 {
		return nil, ErrEmptyProductList
	}
	orderDate, err := time.Parse(orderDateLayout, req.OrderDate)
	if err != nil {
		return nil, fmt.Errorf("%w %q: expected %s", ErrInvalidOrderDate, req.OrderDate, orderDateLayout)
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := customerExists(tx, req.CustomerID); err != nil {
			return err
		}
		products, total, err := resolveProducts(tx, req.ProductIDs)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderRef:   generateOrderRef(),
			CustomerID: req.CustomerID,
			OrderDate:  orderDate,
			Status:     req.Status,
			Products:   products,
			TotalPrice: total,
			CreatedAt:  time.Now(),
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder overwrites the order's scalar fields and replaces its entire
// product membership, then recomputes the total.
func UpdateOrder(db *gorm.DB, orderID uint, req UpdateOrderRequest) (*models.Order, error) {
	if len(req.ProductIDs) == 0 {
		return nil, ErrEmptyProductList
	}
	orderDate, err := time.Parse(orderDateLayout, req.OrderDate)
	if err != nil {
		return nil, fmt.Errorf("%w %q: expected %s", ErrInvalidOrderDate, req.OrderDate, orderDateLayout)
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := customerExists(tx, req.CustomerID); err != nil {
			return err
		}
		products, total, err := resolveProducts(tx, req.ProductIDs)
		if err != nil {
			return err
		}

		if err := tx.Model(&order).Association("Products").Replace(products); err != nil {
			return err
		}
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"customer_id": req.CustomerID,
			"order_date":  orderDate,
			"status":      req.Status,
			"total_price": total,
		}).Error; err != nil {
			return err
		}

		order.CustomerID = req.CustomerID
		order.OrderDate = orderDate
		order.Status = req.Status
		order.TotalPrice = total
		order.Products = products
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// AddOrderLine associates a product with an order. Re-adding an existing
// membership is a no-op, not an error; the total is recomputed either way.
func AddOrderLine(db *gorm.DB, orderID, productID uint) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
			}
			return err
		}
		if err := tx.Model(&order).Association("Products").Append(&product); err != nil {
			return err
		}
		return recomputeTotalPrice(tx, &order)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// RemoveOrderLine drops a single product membership from an order. Removing a
// product that is not in the order reports ErrLineNotFound rather than
// succeeding silently.
func RemoveOrderLine(db *gorm.DB, orderID, productID uint) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
			}
			return err
		}

		var count int64
		if err := tx.Table("order_details").
			Where("order_id = ? AND product_id = ?", order.ID, product.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrLineNotFound
		}

		if err := tx.Model(&order).Association("Products").Delete(&product); err != nil {
			return err
		}
		return recomputeTotalPrice(tx, &order)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes an order and its join rows. Products and the customer
// are untouched.
func DeleteOrder(db *gorm.DB, orderID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := tx.Model(&order).Association("Products").Clear(); err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// -------- Handlers --------

func parseIDParam(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return uint(id), true
}

// Place order
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := PlaceOrder(db, req)
		if err != nil {
			c.JSON(statusForOrderError(err), gin.H{"error": err.Error()})
			return
		}
		broadcastOrderEvent("order_placed", *order)
		c.JSON(http.StatusCreated, order)
	}
}

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Customer").
			Preload("Products").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseIDParam(c, "orderID")
		if !ok {
			return
		}
		var order models.Order
		if err := db.
			Preload("Customer").
			Preload("Products").
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseIDParam(c, "orderID")
		if !ok {
			return
		}
		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := UpdateOrder(db, orderID, req)
		if err != nil {
			c.JSON(statusForOrderError(err), gin.H{"error": err.Error()})
			return
		}
		broadcastOrderEvent("order_updated", *order)
		c.JSON(http.StatusOK, order)
	}
}

func AddOrderLineHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseIDParam(c, "orderID")
		if !ok {
			return
		}
		productID, ok := parseIDParam(c, "productID")
		if !ok {
			return
		}
		order, err := AddOrderLine(db, orderID, productID)
		if err != nil {
			c.JSON(statusForOrderError(err), gin.H{"error": err.Error()})
			return
		}
		broadcastOrderEvent("order_updated", *order)
		c.JSON(http.StatusOK, gin.H{"message": "Product added to order"})
	}
}

func RemoveOrderLineHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseIDParam(c, "orderID")
		if !ok {
			return
		}
		productID, ok := parseIDParam(c, "productID")
		if !ok {
			return
		}
		order, err := RemoveOrderLine(db, orderID, productID)
		if err != nil {
			c.JSON(statusForOrderError(err), gin.H{"error": err.Error()})
			return
		}
		broadcastOrderEvent("order_updated", *order)
		c.JSON(http.StatusOK, gin.H{"message": "Product removed from order"})
	}
}

func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := parseIDParam(c, "orderID")
		if !ok {
			return
		}
		if err := DeleteOrder(db, orderID); err != nil {
			c.JSON(statusForOrderError(err), gin.H{"error": err.Error()})
			return
		}
		broadcastOrderEvent("order_deleted", models.Order{ID: orderID})
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
