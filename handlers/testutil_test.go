package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sajibgoswami11/laundry-app-v2/config"
	"github.com/sajibgoswami11/laundry-app-v2/middleware"
	"github.com/sajibgoswami11/laundry-app-v2/models"
	"github.com/sajibgoswami11/laundry-app-v2/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var dbSeq int64

// setupRouter wires a fresh in-memory database and a full route table.
// Each test gets its own named shared-cache memory DB so gorm's connection
// pool sees a single schema.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := config.Connect(dsn)
	require.NoError(t, err)
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func createUser(t *testing.T, name, email string, role models.UserRole) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, PasswordHash: string(hash), Role: role}
	require.NoError(t, config.DB.Create(&user).Error)

	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func createShop(t *testing.T, ownerID uint, name string, approved bool) models.Shop {
	t.Helper()
	shop := models.Shop{OwnerID: ownerID, Name: name, Address: "12 Main St", IsApproved: approved}
	require.NoError(t, config.DB.Create(&shop).Error)
	return shop
}

func createService(t *testing.T, shopID uint, name string, price float64) models.Service {
	t.Helper()
	service := models.Service{ShopID: shopID, Name: name, Price: price, IsActive: true}
	require.NoError(t, config.DB.Create(&service).Error)
	return service
}

func createOrder(t *testing.T, customerID, shopID uint, status models.OrderStatus, total float64) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber: fmt.Sprintf("ORD-TEST%d", atomic.AddInt64(&dbSeq, 1)),
		CustomerID:  customerID,
		ShopID:      shopID,
		Status:      status,
		TotalAmount: total,
	}
	require.NoError(t, config.DB.Create(&order).Error)
	return order
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
