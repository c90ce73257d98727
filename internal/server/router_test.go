package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-pos-service/config"
	actDto "github.com/fekuna/omnipos-pos-service/internal/activity/dto"
	"github.com/fekuna/omnipos-pos-service/internal/auth"
	"github.com/fekuna/omnipos-pos-service/internal/model"
	"github.com/fekuna/omnipos-pos-service/internal/store/memory"
	"github.com/fekuna/omnipos-pos-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *memory.Store
	tokens map[model.Role]string
	ids    map[model.Role]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.LoadEnv()
	cfg.JWT.SecretKey = testSecret
	cfg.Server.AppEnv = "test"

	store := memory.NewStore()
	ts := &testServer{t: t, store: store, tokens: map[model.Role]string{}, ids: map[model.Role]string{}}
	for _, role := range []model.Role{model.RoleAdmin, model.RoleManager, model.RoleCashier} {
		u := model.User{
			BaseModel: model.BaseModel{ID: uuid.NewString()},
			Name:      string(role),
			Email:     string(role) + "@shop.test",
			Role:      role,
			IsActive:  true,
		}
		store.AddUser(u)
		token, err := auth.IssueToken(testSecret, u.ID, time.Hour)
		require.NoError(t, err)
		ts.tokens[role] = token
		ts.ids[role] = u.ID
	}

	repos := MemoryRepositories(store)
	log := logger.NewNop()
	ucs := NewUseCases(repos, Infra{}, log)
	ts.router = NewRouter(cfg, repos, ucs, Infra{}, log)
	return ts
}

func (ts *testServer) do(role model.Role, method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+ts.tokens[role])
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(ts.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func (ts *testServer) createProduct(sku string, stock int, price float64) string {
	ts.t.Helper()
	w, body := ts.do(model.RoleManager, http.MethodPost, "/api/products", gin.H{
		"name":          "Product " + sku,
		"category":      "general",
		"sku":           sku,
		"purchasePrice": price / 2,
		"sellingPrice":  price,
		"stock":         stock,
	})
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())
	return body["product"].(map[string]interface{})["id"].(string)
}

func (ts *testServer) stock(id string) float64 {
	ts.t.Helper()
	w, body := ts.do(model.RoleCashier, http.MethodGet, "/api/products/"+id, nil)
	require.Equal(ts.t, http.StatusOK, w.Code)
	return body["product"].(map[string]interface{})["stock"].(float64)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w, body := ts.do("", http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", body["status"])
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	w, body := ts.do("", http.MethodGet, "/api/sales", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token, authorization denied", body["message"])

	w, _ = ts.do("", http.MethodGet, "/api/sales", nil, "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleMatrix(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createProduct("RM-1", 5, 10)

	w, body := ts.do(model.RoleCashier, http.MethodPost, "/api/inventory/adjust", gin.H{"productId": id, "quantity": 1, "type": "purchase"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User role cashier is not authorized to access this route", body["message"])

	w, _ = ts.do(model.RoleManager, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = ts.do(model.RoleCashier, http.MethodGet, "/api/logs/activity", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = ts.do(model.RoleAdmin, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product deactivated successfully", body["message"])
}

func TestSaleLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createProduct("A-1", 10, 100)

	w, body := ts.do(model.RoleCashier, http.MethodPost, "/api/sales", gin.H{
		"items":         []gin.H{{"product": id, "quantity": 3}},
		"paymentMethod": "cash",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Sale created successfully", body["message"])

	sale := body["sale"].(map[string]interface{})
	assert.Equal(t, float64(300), sale["total"])
	assert.Equal(t, "paid", sale["paymentStatus"])
	assert.Equal(t, "completed", sale["status"])
	assert.Equal(t, "cashier", sale["soldBy"].(map[string]interface{})["name"])
	assert.Equal(t, float64(7), ts.stock(id))

	saleID := sale["id"].(string)
	invoice := sale["invoiceNumber"].(string)

	w, body = ts.do(model.RoleCashier, http.MethodGet, "/api/invoices/number/"+invoice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, saleID, body["invoice"].(map[string]interface{})["id"])

	w, _ = ts.do(model.RoleCashier, http.MethodPost, "/api/sales/"+saleID+"/cancel", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = ts.do(model.RoleManager, http.MethodPost, "/api/sales/"+saleID+"/cancel", gin.H{"reason": "Wrong item"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", body["sale"].(map[string]interface{})["status"])
	assert.Equal(t, float64(10), ts.stock(id))

	w, body = ts.do(model.RoleManager, http.MethodPost, "/api/sales/"+saleID+"/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Sale is already cancelled", body["message"])

	w, body = ts.do(model.RoleManager, http.MethodPost, "/api/sales/"+uuid.NewString()+"/cancel", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Sale not found", body["message"])
}

func TestSaleErrorsOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createProduct("B-1", 2, 10)

	w, body := ts.do(model.RoleCashier, http.MethodPost, "/api/sales", gin.H{
		"items":         []gin.H{{"product": id, "quantity": 3}},
		"paymentMethod": "cash",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Insufficient stock for Product B-1. Available: 2", body["message"])

	w, body = ts.do(model.RoleCashier, http.MethodPost, "/api/sales", gin.H{
		"items":         []gin.H{{"product": uuid.NewString(), "quantity": 1}},
		"paymentMethod": "cash",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, body["message"], "Product not found")

	w, body = ts.do(model.RoleCashier, http.MethodPost, "/api/sales", gin.H{
		"items":         []gin.H{},
		"paymentMethod": "cash",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, body, "errors")
	errs := body["errors"].([]interface{})
	assert.Equal(t, "items", errs[0].(map[string]interface{})["path"])

	assert.Equal(t, float64(2), ts.stock(id))
}

func TestIdempotentSalePosting(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createProduct("C-1", 10, 5)
	cart := gin.H{"items": []gin.H{{"product": id, "quantity": 2}}, "paymentMethod": "card"}

	w, first := ts.do(model.RoleCashier, http.MethodPost, "/api/sales", cart, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, w.Code)
	w, second := ts.do(model.RoleCashier, http.MethodPost, "/api/sales", cart, "Idempotency-Key", "k-1")
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t,
		first["sale"].(map[string]interface{})["id"],
		second["sale"].(map[string]interface{})["id"])
	assert.Equal(t, float64(8), ts.stock(id))
}

func TestIdempotencyKeyIsScopedToCaller(t *testing.T) {
	ts := newTestServer(t)
	x := ts.createProduct("X-1", 10, 5)
	y := ts.createProduct("Y-1", 10, 5)

	w, managerBody := ts.do(model.RoleManager, http.MethodPost, "/api/sales",
		gin.H{"items": []gin.H{{"product": x, "quantity": 5}}, "paymentMethod": "cash"},
		"Idempotency-Key", "shared")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, cashierBody := ts.do(model.RoleCashier, http.MethodPost, "/api/sales",
		gin.H{"items": []gin.H{{"product": y, "quantity": 1}}, "paymentMethod": "cash"},
		"Idempotency-Key", "shared")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	managerSale := managerBody["sale"].(map[string]interface{})
	cashierSale := cashierBody["sale"].(map[string]interface{})
	assert.NotEqual(t, managerSale["id"], cashierSale["id"])
	assert.Equal(t, "cashier", cashierSale["soldBy"].(map[string]interface{})["name"])
	assert.Equal(t, float64(5), ts.stock(x))
	assert.Equal(t, float64(9), ts.stock(y))
}

func TestIdempotencyKeyReusedWithDifferentCart(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createProduct("Z-1", 10, 5)

	w, _ := ts.do(model.RoleCashier, http.MethodPost, "/api/sales",
		gin.H{"items": []gin.H{{"product": id, "quantity": 2}}, "paymentMethod": "cash"},
		"Idempotency-Key", "k-2")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, body := ts.do(model.RoleCashier, http.MethodPost, "/api/sales",
		gin.H{"items": []gin.H{{"product": id, "quantity": 4}}, "paymentMethod": "cash"},
		"Idempotency-Key", "k-2")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Idempotency-Key was already used for a different sale", body["message"])
	assert.Equal(t, float64(8), ts.stock(id))
}

func TestInventoryAdjustOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	id := ts.createProduct("D-1", 7, 5)

	w, body := ts.do(model.RoleManager, http.MethodPost, "/api/inventory/adjust", gin.H{"productId": id, "quantity": 5, "type": "purchase"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Inventory adjusted successfully", body["message"])
	assert.Equal(t, float64(5), body["log"].(map[string]interface{})["quantityChange"])
	assert.Equal(t, float64(12), body["product"].(map[string]interface{})["currentStock"])

	w, body = ts.do(model.RoleManager, http.MethodPost, "/api/inventory/adjust", gin.H{"productId": id, "quantity": 50, "type": "damage"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot remove more than available stock", body["message"])

	w, body = ts.do(model.RoleManager, http.MethodPost, "/api/inventory/adjust", gin.H{"productId": id, "type": "damage"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product ID, quantity, and type are required", body["message"])

	assert.Equal(t, float64(12), ts.stock(id))

	w, body = ts.do(model.RoleCashier, http.MethodGet, "/api/inventory/movements/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["movements"], 2)
}

func TestActivityIsTracked(t *testing.T) {
	ts := newTestServer(t)
	ts.createProduct("E-1", 1, 1)

	assert.Eventually(t, func() bool {
		logs, _, err := ts.store.Activity().FindAll(context.Background(), &actDto.ActivityFilters{Action: string(model.ActionCreateProduct)})
		return err == nil && len(logs) == 1
	}, time.Second, 10*time.Millisecond)

	w, body := ts.do(model.RoleManager, http.MethodGet, "/api/logs/activity", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["logs"], 1)
}

func TestEmployeeManagementOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	cashierID := ts.ids[model.RoleCashier]
	adminID := ts.ids[model.RoleAdmin]

	w, _ := ts.do(model.RoleManager, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := ts.do(model.RoleAdmin, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["users"], 3)

	w, body = ts.do(model.RoleAdmin, http.MethodPut, "/api/users/"+cashierID, gin.H{"name": "Casey", "role": "manager"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Employee updated successfully", body["message"])
	assert.Equal(t, "manager", body["user"].(map[string]interface{})["role"])

	w, _ = ts.do(model.RoleAdmin, http.MethodPut, "/api/users/"+cashierID, gin.H{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = ts.do(model.RoleAdmin, http.MethodPut, "/api/users/"+adminID+"/deactivate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot deactivate your own account", body["message"])

	w, body = ts.do(model.RoleAdmin, http.MethodDelete, "/api/users/"+adminID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete your own account", body["message"])

	w, body = ts.do(model.RoleAdmin, http.MethodPut, "/api/users/"+cashierID+"/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Employee deactivated successfully", body["message"])

	w, _ = ts.do(model.RoleCashier, http.MethodGet, "/api/sales", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body = ts.do(model.RoleAdmin, http.MethodGet, "/api/users/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", body["message"])

	assert.Eventually(t, func() bool {
		logs, _, err := ts.store.Activity().FindAll(context.Background(), &actDto.ActivityFilters{Module: string(model.ModuleUsers)})
		return err == nil && len(logs) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestDeleteEmployeeOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	managerID := ts.ids[model.RoleManager]

	w, body := ts.do(model.RoleAdmin, http.MethodDelete, "/api/users/"+managerID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Employee permanently deleted", body["message"])

	w, _ = ts.do(model.RoleAdmin, http.MethodGet, "/api/users/"+managerID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
