package handlers

import (
	"net/http"

	"github.com/sajibgoswami11/laundry-app-v2/config"
	"github.com/sajibgoswami11/laundry-app-v2/middleware"
	"github.com/sajibgoswami11/laundry-app-v2/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AvailableOwner is the projection returned by the available-owners listing
type AvailableOwner struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GetAvailableOwners lists SHOP_OWNER users with no shop yet, i.e. the users
// an admin may assign to a new shop. Uses an anti-join rather than a nullable
// back-reference so the one-shop-per-owner rule holds at query level.
func GetAvailableOwners(c *gin.Context) {
	var owners []AvailableOwner
	if err := config.DB.Model(&models.User{}).
		Select("users.id, users.name, users.email").
		Joins("LEFT JOIN shops ON shops.owner_id = users.id").
		Where("users.role = ? AND shops.id IS NULL", models.RoleShopOwner).
		Scan(&owners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch available owners"})
		return
	}
	c.JSON(http.StatusOK, owners)
}

type CreateShopRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Description string `json:"description"`
	OwnerID     uint   `json:"ownerId" binding:"required"`
}

// CreateShop registers a shop on behalf of an available owner — admin only.
// New shops start unapproved and stay hidden from customers until approved.
func CreateShop(c *gin.Context) {
	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var owner models.User
	if err := config.DB.First(&owner, req.OwnerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Owner not found"})
		return
	}
	if owner.Role != models.RoleShopOwner {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "User is not a shop owner"})
		return
	}
	var existing models.Shop
	if result := config.DB.Where("owner_id = ?", owner.ID).First(&existing); result.Error == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Owner already has a shop"})
		return
	}

	shop := models.Shop{
		OwnerID:     owner.ID,
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Description: req.Description,
		IsApproved:  false,
	}
	if err := config.DB.Create(&shop).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shop"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Shop created", "shop": shop})
}

type UpdateUserRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

// UpdateUserRole changes a user's role — admin only
func UpdateUserRole(c *gin.Context) {
	var req UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	validRoles := map[models.UserRole]bool{
		models.RoleCustomer:  true,
		models.RoleShopOwner: true,
		models.RoleAdmin:     true,
	}
	if !validRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: CUSTOMER, SHOP_OWNER or ADMIN"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := config.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated", "user": user})
}

// AdminGetAllUsers returns all users — admin only
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllShops returns all shops, approved or not — admin only
func AdminGetAllShops(c *gin.Context) {
	var shops []models.Shop
	config.DB.Preload("Owner").Preload("Services").Find(&shops)
	c.JSON(http.StatusOK, gin.H{"count": len(shops), "shops": shops})
}

// AdminGetAllOrders returns all orders with full detail — admin only
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items").
		Preload("Customer").Preload("Shop").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if shopID := c.Query("shop_id"); shopID != "" {
		query = query.Where("shop_id = ?", shopID)
	}

	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusDelivered {
			totalRevenue += o.TotalAmount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

// AdminForceOrderStatus lets admin override any order state (emergency use);
// the only path that bypasses the transition table.
func AdminForceOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
		Reason string             `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value", "field": "status"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	prevStatus := order.Status
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", req.Status).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   req.Status,
			ChangedBy:  middleware.GetUserID(c),
			Note:       "[ADMIN OVERRIDE] " + req.Reason,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status force-updated by admin",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}
