package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"weighbridge/internal/models"
	"weighbridge/internal/repository"
	"weighbridge/internal/schema"
	"weighbridge/internal/sequence"
	"weighbridge/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Company{}, &models.Driver{}, &models.Order{}, &models.OrderCounter{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cols := schema.Detect(db)
	allocator := sequence.New(db, sequence.StrategyMaxScan)
	orderService := services.NewOrderService(repository.NewOrderRepository(db, cols), allocator, cols)
	companyService := services.NewCompanyService(repository.NewCompanyRepository(db), nil)
	driverService := services.NewDriverService(repository.NewDriverRepository(db), nil)

	api := NewAPIHandler(orderService, companyService, driverService)
	health := NewHealthHandler(db)

	router := gin.New()
	router.GET("/health", health.Check)
	group := router.Group("/api")
	{
		group.GET("/orders", api.ListOrders)
		group.GET("/orders/:id", api.GetOrder)
		group.POST("/orders", api.CreateOrder)
		group.PATCH("/orders/:id", api.PatchOrder)
		group.DELETE("/orders/:id", api.DeleteOrder)
		group.GET("/drivers", api.ListDrivers)
		group.POST("/drivers", api.UpsertDriver)
		group.GET("/companies", api.ListCompanies)
		group.POST("/companies", api.UpsertCompany)
	}
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["ok"] != true || resp["db"] != true {
		t.Fatalf("expected ok and db true, got %v", resp)
	}
}

func TestCreateOrderAllocatesNumber(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/orders", `{"product":"flour","num_bags":10}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["order_number"] != "ORD-0001" {
		t.Fatalf("expected ORD-0001 got %v", resp["order_number"])
	}
	if resp["balance_id"] != nil {
		t.Fatalf("expected balance_id passthrough nil got %v", resp["balance_id"])
	}
}

func TestCreateOrderUpsertsOnExistingNumber(t *testing.T) {
	router, db := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/orders", `{"order_number":"ORD-0042","product":"flour"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/api/orders", `{"order_number":"ORD-0042","product":"bran"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}

	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row got %d", count)
	}
}

func TestGetOrderByNumberAndNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/orders", `{"order_number":"ORD-0007"}`)

	w := doJSON(t, router, http.MethodGet, "/api/orders/ORD-0007", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var row map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &row); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if row["order_number"] != "ORD-0007" {
		t.Fatalf("expected ORD-0007 got %v", row["order_number"])
	}

	w = doJSON(t, router, http.MethodGet, "/api/orders/9999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}

func TestListOrdersWithStatusFilter(t *testing.T) {
	router, _ := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/orders", `{"status":"pending"}`)
	doJSON(t, router, http.MethodPost, "/api/orders", `{"status":"completed"}`)

	w := doJSON(t, router, http.MethodGet, "/api/orders?status=completed", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row got %d", len(rows))
	}
}

func TestPatchOrder(t *testing.T) {
	router, db := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/orders", `{"order_number":"ORD-0001"}`)
	var order models.Order
	if err := db.Where("order_number = ?", "ORD-0001").First(&order).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}

	w := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/orders/%d", order.ID), `{"status":"completed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/orders/%d", order.ID), `{"nonsense":true}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	if err := db.First(&order, order.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if order.Status != "completed" {
		t.Fatalf("expected completed got %s", order.Status)
	}
}

func TestDeleteOrder(t *testing.T) {
	router, db := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/orders", `{"order_number":"ORD-0001"}`)
	var order models.Order
	if err := db.Where("order_number = ?", "ORD-0001").First(&order).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/orders/%d", order.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 rows got %d", count)
	}
}

func TestUpsertDriverValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/drivers", `{"phone":"0501234567"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/drivers", `{"name":"John Smith","phone":"0501234567"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/drivers", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var drivers []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &drivers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(drivers) != 1 {
		t.Fatalf("expected 1 driver got %d", len(drivers))
	}
}

func TestUpsertCompanyFindsExistingByCase(t *testing.T) {
	router, db := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/companies", `{"name":"Acme Co","address":"1 Grain Rd"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/api/companies", `{"name":"ACME CO"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", w.Code)
	}

	var count int64
	if err := db.Model(&models.Company{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 company got %d", count)
	}
}
