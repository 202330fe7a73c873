package handlers

import (
	"net/http"
	"time"

	"github.com/sajibgoswami11/laundry-app-v2/authz"
	"github.com/sajibgoswami11/laundry-app-v2/config"
	"github.com/sajibgoswami11/laundry-app-v2/middleware"
	"github.com/sajibgoswami11/laundry-app-v2/models"
	"github.com/sajibgoswami11/laundry-app-v2/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// timeLayouts accepted on order timestamps. The dashboard sends the
// datetime-local format; API clients tend to send RFC 3339.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseOrderTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func roleActor(role models.UserRole) string {
	switch role {
	case models.RoleShopOwner:
		return statemachine.ActorShop
	case models.RoleAdmin:
		return statemachine.ActorAdmin
	default:
		return statemachine.ActorCustomer
	}
}

type UpdateOrderRequest struct {
	Status       *models.OrderStatus `json:"status"`
	PickupTime   *string             `json:"pickupTime"`
	DeliveryTime *string             `json:"deliveryTime"`
}

// UpdateOrder applies a partial update ({status, pickupTime, deliveryTime})
// to an existing order. Registered for both PATCH and PUT. Only the owning
// customer, the owning shop's owner, or an admin may call it; provided
// fields are validated independently and written in one atomic update.
// Concurrent updates resolve last-write-wins per field; there is no
// version token on orders.
func UpdateOrder(c *gin.Context) {
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.Preload("Shop").First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	identity := middleware.CurrentIdentity(c)
	if err := authz.Decide(identity, authz.ActionUpdate, authz.Resource{
		Kind:        authz.KindOrder,
		OwnerID:     order.CustomerID,
		ShopOwnerID: order.Shop.OwnerID,
	}); err != nil {
		if err == authz.ErrUnauthenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		}
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := map[string]interface{}{}
	prevStatus := order.Status
	statusChanged := false

	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status value",
				"field": "status",
			})
			return
		}
		// setting the current status again is a no-op, not a transition
		if *req.Status != order.Status {
			if err := statemachine.CanTransition(order.Status, *req.Status, roleActor(identity.Role)); err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":             "Invalid state transition",
					"current_status":    order.Status,
					"requested":         *req.Status,
					"reason":            err.Error(),
					"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
				})
				return
			}
			update["status"] = *req.Status
			statusChanged = true
		}
	}

	if req.PickupTime != nil {
		t, ok := parseOrderTime(*req.PickupTime)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pickup time", "field": "pickupTime"})
			return
		}
		update["pickup_time"] = t
	}
	if req.DeliveryTime != nil {
		t, ok := parseOrderTime(*req.DeliveryTime)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery time", "field": "deliveryTime"})
			return
		}
		update["delivery_time"] = t
	}

	if len(update) > 0 {
		// field writes and the history row land together or not at all
		err := config.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&order).Updates(update).Error; err != nil {
				return err
			}
			if !statusChanged {
				return nil
			}
			history := models.OrderStatusHistory{
				OrderID:    order.ID,
				FromStatus: prevStatus,
				ToStatus:   *req.Status,
				ChangedBy:  identity.UserID,
			}
			return tx.Create(&history).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
	}

	config.DB.Preload("Items").First(&order, order.ID)
	c.JSON(http.StatusOK, gin.H{"order": order})
}
