package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/mindloop/internal/affirm"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	catalog *affirm.Catalog
}

func NewHealthHandler(catalog *affirm.Catalog) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"catalog": gin.H{
			"affirmations": h.catalog.Size(),
		},
	})
}
