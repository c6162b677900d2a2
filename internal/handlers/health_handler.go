package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check answers liveness plus database reachability with a SELECT 1 probe.
func (h *HealthHandler) Check(c *gin.Context) {
	var ok int
	if err := h.db.Raw("SELECT 1").Scan(&ok).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "db": ok == 1})
}
