package handlers

import (
	"net/http"

	"github.com/sajibgoswami11/laundry-app-v2/authz"
	"github.com/sajibgoswami11/laundry-app-v2/config"
	"github.com/sajibgoswami11/laundry-app-v2/middleware"
	"github.com/sajibgoswami11/laundry-app-v2/models"
	"github.com/sajibgoswami11/laundry-app-v2/statemachine"

	"github.com/gin-gonic/gin"
)

// ListShops returns the shops visible to the caller. Customers see approved
// shops only; a shop owner also sees their own unapproved shop; admins see
// everything.
func ListShops(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	query := config.DB.Model(&models.Shop{})
	switch identity.Role {
	case models.RoleAdmin:
		if approved := c.Query("approved"); approved == "true" {
			query = query.Where("is_approved = ?", true)
		}
	case models.RoleShopOwner:
		query = query.Where("is_approved = ? OR owner_id = ?", true, identity.UserID)
	default:
		query = query.Where("is_approved = ?", true)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var shops []models.Shop
	query.Find(&shops)
	c.JSON(http.StatusOK, gin.H{"count": len(shops), "shops": shops})
}

// GetShop returns a single shop with its services
func GetShop(c *gin.Context) {
	var shop models.Shop
	if err := config.DB.Preload("Services").First(&shop, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	if err := authz.Decide(middleware.CurrentIdentity(c), authz.ActionRead, authz.Resource{
		Kind:     authz.KindShop,
		OwnerID:  shop.OwnerID,
		Approved: shop.IsApproved,
	}); err != nil {
		// hide unapproved shops rather than confirming they exist
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

// GetShopServices returns the active service catalog of a shop
func GetShopServices(c *gin.Context) {
	shopID := c.Param("id")
	var shop models.Shop
	if err := config.DB.First(&shop, shopID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	if err := authz.Decide(middleware.CurrentIdentity(c), authz.ActionRead, authz.Resource{
		Kind:     authz.KindShop,
		OwnerID:  shop.OwnerID,
		Approved: shop.IsApproved,
	}); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	var services []models.Service
	config.DB.Where("shop_id = ? AND is_active = ?", shopID, true).Find(&services)

	c.JSON(http.StatusOK, gin.H{
		"shop":     shop.Name,
		"count":    len(services),
		"services": services,
	})
}

// GetStateMachineInfo returns the full state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"description":     "Laundry Order Lifecycle State Machine",
	})
}
