package controllers

import (
	"net/http"
	"time"

	"agendabiz-backend/config"
	"agendabiz-backend/models"
	"agendabiz-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TodayAppointments int   `json:"todayAppointments"`
	TotalClients      int   `json:"totalClients"`
	MonthRevenueCents int64 `json:"monthRevenueCents"`
	MonthExecutions   int   `json:"monthExecutions"`
	LowStockProducts  int   `json:"lowStockProducts"`
}

// GetDashboardOverview returns the headline numbers for the home screen.
func GetDashboardOverview(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	now := time.Now()
	dayStart := utils.BeginningOfDay(now)
	dayEnd := utils.EndOfDay(now)
	monthStart, monthEnd := utils.MonthRange(now.Year(), now.Month(), now.Location())

	var todayAppointments int64
	config.DB.Model(&models.Appointment{}).
		Where("business_id = ? AND status <> ?", businessUUID, models.StatusCancelled).
		Where("starts_at >= ? AND starts_at < ?", dayStart, dayEnd).
		Count(&todayAppointments)

	var totalClients int64
	config.DB.Model(&models.Client{}).
		Where("business_id = ?", businessUUID).
		Count(&totalClients)

	var monthServicesRevenue int64
	config.DB.Model(&models.ServiceExecution{}).
		Where("business_id = ? AND performed_at >= ? AND performed_at < ?", businessUUID, monthStart, monthEnd).
		Select("COALESCE(SUM(service_price_cents), 0)").
		Scan(&monthServicesRevenue)

	var monthProductsRevenue int64
	config.DB.Model(&models.ProductMovement{}).
		Where("business_id = ? AND type = ? AND occurred_at >= ? AND occurred_at < ?",
			businessUUID, models.MovementSale, monthStart, monthEnd).
		Select("COALESCE(SUM(total_cents), 0)").
		Scan(&monthProductsRevenue)

	var monthExecutions int64
	config.DB.Model(&models.ServiceExecution{}).
		Where("business_id = ? AND performed_at >= ? AND performed_at < ?", businessUUID, monthStart, monthEnd).
		Count(&monthExecutions)

	var lowStock int64
	config.DB.Model(&models.Product{}).
		Where("business_id = ? AND active = ? AND stock_qty <= ?", businessUUID, true, 3).
		Count(&lowStock)

	c.JSON(http.StatusOK, DashboardOverview{
		TodayAppointments: int(todayAppointments),
		TotalClients:      int(totalClients),
		MonthRevenueCents: monthServicesRevenue + monthProductsRevenue,
		MonthExecutions:   int(monthExecutions),
		LowStockProducts:  int(lowStock),
	})
}
