package controllers

import (
	"errors"
	"net/http"

	"agendabiz-backend/config"
	"agendabiz-backend/models"
	"agendabiz-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name            string `json:"name" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,min=1"`
	PriceCents      int64  `json:"priceCents" binding:"min=0"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name            *string `json:"name"`
	DurationMinutes *int    `json:"durationMinutes" binding:"omitempty,min=1"`
	PriceCents      *int64  `json:"priceCents" binding:"omitempty,min=0"`
	Active          *bool   `json:"active"`
}

// CreateService creates a new service for the business
func CreateService(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		BusinessID:      businessUUID,
		Name:            input.Name,
		DurationMinutes: input.DurationMinutes,
		PriceCents:      input.PriceCents,
		Active:          true,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves all services for the business
func GetServices(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := config.DB.Where("business_id = ?", businessUUID).Order("name").
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service. Price edits never touch
// already-recorded executions; those carry a frozen copy.
func UpdateService(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.DurationMinutes != nil {
		service.DurationMinutes = *input.DurationMinutes
	}
	if input.PriceCents != nil {
		service.PriceCents = *input.PriceCents
	}
	if input.Active != nil {
		service.Active = *input.Active
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService deactivates when history references the service, deletes
// otherwise.
func DeleteService(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var history int64
	if err := config.DB.Model(&models.Appointment{}).
		Where("business_id = ? AND service_id = ?", businessUUID, serviceUUID).
		Count(&history).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if history == 0 {
		if err := config.DB.Model(&models.ServiceExecution{}).
			Where("business_id = ? AND service_id = ?", businessUUID, serviceUUID).
			Count(&history).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	if history > 0 {
		result := config.DB.Model(&models.Service{}).
			Where("business_id = ? AND id = ?", businessUUID, serviceUUID).
			Update("active", false)
		if result.Error != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate service")
			return
		}
		if result.RowsAffected == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Service deactivated (has history)"})
		return
	}

	result := config.DB.Where("business_id = ? AND id = ?", businessUUID, serviceUUID).
		Delete(&models.Service{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
