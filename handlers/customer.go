package handlers

import (
	"net/http"
	"strings"

	"github.com/sajibgoswami11/laundry-app-v2/config"
	"github.com/sajibgoswami11/laundry-app-v2/middleware"
	"github.com/sajibgoswami11/laundry-app-v2/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckoutRequest struct {
	ShopID       uint   `json:"shopId" binding:"required"`
	PickupTime   string `json:"pickupTime" binding:"required"`
	DeliveryTime string `json:"deliveryTime" binding:"required"`
	Items        []struct {
		ServiceID uint    `json:"serviceId" binding:"required"`
		Quantity  int     `json:"quantity" binding:"required,min=1"`
		Price     float64 `json:"price"`
	} `json:"items" binding:"required,min=1"`
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// Checkout creates an order from the customer's cart. Unit prices are
// snapshotted from the live service rows, so the client-sent price never
// affects the total. Order, items and initial history are written in one
// transaction — readers never observe a partially created order.
func Checkout(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var shop models.Shop
	if err := config.DB.First(&shop, req.ShopID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	if !shop.IsApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shop is not accepting orders yet"})
		return
	}

	pickup, ok := parseOrderTime(req.PickupTime)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup time", "field": "pickupTime"})
		return
	}
	delivery, ok := parseOrderTime(req.DeliveryTime)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery time", "field": "deliveryTime"})
		return
	}

	var orderItems []models.OrderItem
	var total float64
	for _, line := range req.Items {
		var service models.Service
		if err := config.DB.First(&service, line.ServiceID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Service not found"})
			return
		}
		if service.ShopID != req.ShopID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Service does not belong to this shop"})
			return
		}
		if !service.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Service '" + service.Name + "' is not available"})
			return
		}
		total += service.Price * float64(line.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ServiceID: service.ID,
			Quantity:  line.Quantity,
			Price:     service.Price,
			Name:      service.Name,
		})
	}

	order := models.Order{
		OrderNumber:  newOrderNumber(),
		CustomerID:   customerID,
		ShopID:       req.ShopID,
		Status:       models.StatusPending,
		TotalAmount:  total,
		PickupTime:   pickup,
		DeliveryTime: delivery,
		Items:        orderItems,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: customerID,
			Note:      "Order placed by customer",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	config.DB.Preload("Items").Preload("Shop").First(&order, order.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Items").Preload("Shop").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail with history
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.
		Preload("Items").
		Preload("Shop").
		Preload("StatusHistory").
		First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
