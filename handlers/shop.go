package handlers

import (
	"net/http"

	"github.com/sajibgoswami11/laundry-app-v2/authz"
	"github.com/sajibgoswami11/laundry-app-v2/config"
	"github.com/sajibgoswami11/laundry-app-v2/middleware"
	"github.com/sajibgoswami11/laundry-app-v2/models"

	"github.com/gin-gonic/gin"
)

// ── Shop Management ─────────────────────────────────────────────────────────

// GetMyShop fetches the shop owned by the logged-in user
func GetMyShop(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var shop models.Shop
	if err := config.DB.Preload("Services").Where("owner_id = ?", ownerID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No shop found for your account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

// UpdateShop updates shop details. Owners may edit their own shop's contact
// fields; only admins may touch is_approved.
func UpdateShop(c *gin.Context) {
	var shop models.Shop
	if err := config.DB.First(&shop, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	identity := middleware.CurrentIdentity(c)
	if err := authz.Decide(identity, authz.ActionUpdate, authz.Resource{
		Kind:    authz.KindShop,
		OwnerID: shop.OwnerID,
	}); err != nil {
		if err == authz.ErrUnauthenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this shop"})
		}
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// the dashboard sends camelCase keys; map them onto column names
	aliases := map[string]string{"isApproved": "is_approved"}
	allowed := map[string]bool{"name": true, "address": true, "phone": true, "email": true, "description": true}
	if identity.Role == models.RoleAdmin {
		allowed["is_approved"] = true
	}
	update := map[string]interface{}{}
	for k, v := range req {
		if col, ok := aliases[k]; ok {
			k = col
		}
		if allowed[k] {
			update[k] = v
		}
	}
	if len(update) > 0 {
		if err := config.DB.Model(&shop).Updates(update).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shop"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shop updated", "shop": shop})
}

// ── Service Catalog ─────────────────────────────────────────────────────────

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// GetMyServices lists the service catalog of the caller's shop
func GetMyServices(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var shop models.Shop
	if err := config.DB.Where("owner_id = ?", ownerID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No shop found for your account"})
		return
	}
	var services []models.Service
	config.DB.Where("shop_id = ?", shop.ID).Find(&services)
	c.JSON(http.StatusOK, gin.H{"count": len(services), "services": services})
}

// AddService adds a new service to the caller's shop catalog
func AddService(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var shop models.Shop
	if err := config.DB.Where("owner_id = ?", ownerID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No shop found for your account"})
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := models.Service{
		ShopID:      shop.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	if err := config.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add service"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Service added", "service": service})
}

func serviceWithOwnership(c *gin.Context) (*models.Service, bool) {
	var service models.Service
	if err := config.DB.First(&service, c.Param("serviceId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return nil, false
	}
	var shop models.Shop
	config.DB.First(&shop, service.ShopID)

	if err := authz.Decide(middleware.CurrentIdentity(c), authz.ActionUpdate, authz.Resource{
		Kind:    authz.KindService,
		OwnerID: shop.OwnerID,
	}); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this service"})
		return nil, false
	}
	return &service, true
}

// UpdateService updates a service (only by the shop's owner)
func UpdateService(c *gin.Context) {
	service, ok := serviceWithOwnership(c)
	if !ok {
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"name": true, "description": true, "price": true, "is_active": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if price, found := update["price"]; found {
		if p, isNum := price.(float64); !isNum || p <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a positive number", "field": "price"})
			return
		}
	}
	if err := config.DB.Model(service).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service updated", "service": service})
}

// DeleteService removes a service from the catalog
func DeleteService(c *gin.Context) {
	service, ok := serviceWithOwnership(c)
	if !ok {
		return
	}
	if err := config.DB.Delete(service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

// ── Shop Orders ─────────────────────────────────────────────────────────────

// GetShopOrders returns all orders for the caller's shop
func GetShopOrders(c *gin.Context) {
	ownerID := middleware.GetUserID(c)

	var shop models.Shop
	if err := config.DB.Where("owner_id = ?", ownerID).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No shop found for your account"})
		return
	}

	var orders []models.Order
	query := config.DB.Preload("Items").Preload("Customer").
		Where("shop_id = ?", shop.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"shop":          shop.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}
