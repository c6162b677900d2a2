package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"weighbridge/internal/repository"
	"weighbridge/internal/services"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	orderService   services.OrderService
	companyService services.CompanyService
	driverService  services.DriverService
}

func NewAPIHandler(
	orderService services.OrderService,
	companyService services.CompanyService,
	driverService services.DriverService,
) *APIHandler {
	return &APIHandler{
		orderService:   orderService,
		companyService: companyService,
		driverService:  driverService,
	}
}

// Order endpoints

func (h *APIHandler) ListOrders(c *gin.Context) {
	filter := repository.OrderFilter{
		Status:    c.Query("status"),
		OrderType: c.Query("order_type"),
	}

	rows, err := h.orderService.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *APIHandler) GetOrder(c *gin.Context) {
	row, err := h.orderService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *APIHandler) CreateOrder(c *gin.Context) {
	var input services.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.orderService.Upsert(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":           result.ID,
		"order_number": result.OrderNumber,
		"balance_id":   result.BalanceID,
	})
}

func (h *APIHandler) PatchOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.orderService.Patch(uint(id), fields); err != nil {
		if errors.Is(err, services.ErrNoFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *APIHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	if err := h.orderService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Driver endpoints

func (h *APIHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.driverService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *APIHandler) UpsertDriver(c *gin.Context) {
	var req struct {
		Name  string  `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	driver, err := h.driverService.Upsert(req.Name, req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":    driver.ID,
		"name":  driver.Name,
		"phone": driver.Phone,
	})
}

// Company endpoints

func (h *APIHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *APIHandler) UpsertCompany(c *gin.Context) {
	var req struct {
		Name    string  `json:"name"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	company, err := h.companyService.Upsert(req.Name, req.Address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":      company.ID,
		"name":    company.Name,
		"address": company.Address,
	})
}
