package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/sajibgoswami11/laundry-app-v2/config"
	"github.com/sajibgoswami11/laundry-app-v2/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listAvailableOwners(t *testing.T, r *gin.Engine, token string) []map[string]interface{} {
	t.Helper()
	w := doRequest(t, r, "GET", "/api/admin/available-owners", token, nil)
	requireStatus(t, w, http.StatusOK)
	var owners []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &owners))
	return owners
}

func TestAvailableOwnersRoundTrip(t *testing.T) {
	r := setupRouter(t)
	_, adminToken := createUser(t, "Root", "admin@laundry.test", models.RoleAdmin)
	free, _ := createUser(t, "Frank", "frank@shop.test", models.RoleShopOwner)
	taken, _ := createUser(t, "Tara", "tara@shop.test", models.RoleShopOwner)
	createShop(t, taken.ID, "Tara's Laundry", true)
	createUser(t, "Cara", "cara@customer.test", models.RoleCustomer)

	owners := listAvailableOwners(t, r, adminToken)
	require.Len(t, owners, 1)
	assert.EqualValues(t, free.ID, owners[0]["id"])
	assert.Equal(t, "Frank", owners[0]["name"])
	assert.Equal(t, "frank@shop.test", owners[0]["email"])

	// assigning a shop to Frank removes him from the available set
	w := doRequest(t, r, "POST", "/api/shops", adminToken, map[string]interface{}{
		"name":    "Frank's Laundry",
		"address": "5 River Rd",
		"ownerId": free.ID,
	})
	requireStatus(t, w, http.StatusCreated)

	assert.Empty(t, listAvailableOwners(t, r, adminToken))
}

func TestCreateShopForTakenOwnerRejected(t *testing.T) {
	r := setupRouter(t)
	_, adminToken := createUser(t, "Root", "admin@laundry.test", models.RoleAdmin)
	taken, _ := createUser(t, "Tara", "tara@shop.test", models.RoleShopOwner)
	createShop(t, taken.ID, "Tara's Laundry", true)

	w := doRequest(t, r, "POST", "/api/shops", adminToken, map[string]interface{}{
		"name":    "Second Laundry",
		"address": "9 Dupe St",
		"ownerId": taken.ID,
	})
	requireStatus(t, w, http.StatusUnprocessableEntity)

	var count int64
	config.DB.Model(&models.Shop{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateShopRequiresOwnerRoleUser(t *testing.T) {
	r := setupRouter(t)
	_, adminToken := createUser(t, "Root", "admin@laundry.test", models.RoleAdmin)
	customer, _ := createUser(t, "Cara", "cara@customer.test", models.RoleCustomer)

	w := doRequest(t, r, "POST", "/api/shops", adminToken, map[string]interface{}{
		"name":    "Cara's Laundry",
		"address": "1 Wrong Way",
		"ownerId": customer.ID,
	})
	requireStatus(t, w, http.StatusUnprocessableEntity)

	w = doRequest(t, r, "POST", "/api/shops", adminToken, map[string]interface{}{
		"name":    "Ghost Laundry",
		"address": "0 Nowhere",
		"ownerId": 9999,
	})
	requireStatus(t, w, http.StatusNotFound)
}

func TestCreateShopRequiresAdmin(t *testing.T) {
	r := setupRouter(t)
	free, ownerToken := createUser(t, "Frank", "frank@shop.test", models.RoleShopOwner)

	w := doRequest(t, r, "POST", "/api/shops", ownerToken, map[string]interface{}{
		"name":    "Frank's Laundry",
		"address": "5 River Rd",
		"ownerId": free.ID,
	})
	requireStatus(t, w, http.StatusForbidden)
}

func TestUpdateUserRole(t *testing.T) {
	r := setupRouter(t)
	_, adminToken := createUser(t, "Root", "admin@laundry.test", models.RoleAdmin)
	user, userToken := createUser(t, "Cara", "cara@customer.test", models.RoleCustomer)

	w := doRequest(t, r, "PATCH", fmt.Sprintf("/api/admin/users/%d", user.ID), adminToken,
		map[string]interface{}{"role": "SHOP_OWNER"})
	requireStatus(t, w, http.StatusOK)

	var got models.User
	require.NoError(t, config.DB.First(&got, user.ID).Error)
	assert.Equal(t, models.RoleShopOwner, got.Role)

	t.Run("non-admin denied", func(t *testing.T) {
		w := doRequest(t, r, "PATCH", fmt.Sprintf("/api/admin/users/%d", user.ID), userToken,
			map[string]interface{}{"role": "ADMIN"})
		requireStatus(t, w, http.StatusForbidden)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		w := doRequest(t, r, "PATCH", fmt.Sprintf("/api/admin/users/%d", user.ID), adminToken,
			map[string]interface{}{"role": "SUPERVISOR"})
		requireStatus(t, w, http.StatusBadRequest)
	})
}

func TestAdminForceOrderStatusBypassesTable(t *testing.T) {
	r := setupRouter(t)
	_, adminToken := createUser(t, "Root", "admin@laundry.test", models.RoleAdmin)
	owner, _ := createUser(t, "Owner", "owner@shop.test", models.RoleShopOwner)
	shop := createShop(t, owner.ID, "Fresh Laundry", true)
	customer, _ := createUser(t, "Cara", "cara@customer.test", models.RoleCustomer)
	order := createOrder(t, customer.ID, shop.ID, models.StatusPending, 10.00)

	// PENDING → DELIVERED is not in the transition table
	w := doRequest(t, r, "PUT", fmt.Sprintf("/api/admin/orders/%d/status", order.ID), adminToken,
		map[string]interface{}{"status": "DELIVERED", "reason": "customer picked up in person"})
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, models.StatusDelivered, reloadOrder(t, order.ID).Status)

	var history models.OrderStatusHistory
	require.NoError(t, config.DB.Where("order_id = ?", order.ID).First(&history).Error)
	assert.Contains(t, history.Note, "[ADMIN OVERRIDE]")

	var count int64
	config.DB.Model(&models.OrderStatusHistory{}).Where("order_id = ?", order.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAdminOrderListingSummary(t *testing.T) {
	r := setupRouter(t)
	_, adminToken := createUser(t, "Root", "admin@laundry.test", models.RoleAdmin)
	owner, _ := createUser(t, "Owner", "owner@shop.test", models.RoleShopOwner)
	shop := createShop(t, owner.ID, "Fresh Laundry", true)
	customer, _ := createUser(t, "Cara", "cara@customer.test", models.RoleCustomer)
	createOrder(t, customer.ID, shop.ID, models.StatusDelivered, 12.50)
	createOrder(t, customer.ID, shop.ID, models.StatusDelivered, 7.50)
	createOrder(t, customer.ID, shop.ID, models.StatusPending, 3.00)

	w := doRequest(t, r, "GET", "/api/admin/orders", adminToken, nil)
	requireStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	assert.EqualValues(t, 3, body["count"])
	assert.EqualValues(t, 20.00, body["total_revenue"])
}
