package handlers

import (
	"net/http"

	"transport/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/stats
func GetDashboardStats(c *gin.Context) {
	svc := services.ReportsService{}
	stats, err := svc.Dashboard()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
