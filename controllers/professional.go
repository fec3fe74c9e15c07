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

// CreateProfessionalInput defines the expected JSON structure
type CreateProfessionalInput struct {
	Name                 string   `json:"name" binding:"required"`
	Specialty            string   `json:"specialty"`
	CompensationType     string   `json:"compensationType" binding:"required,oneof=percentage salary"`
	CommissionPercentage *float64 `json:"commissionPercentage" binding:"omitempty,min=0,max=100"`
	SalaryCents          *int64   `json:"salaryCents" binding:"omitempty,min=0"`
}

// UpdateProfessionalInput defines the expected JSON structure
type UpdateProfessionalInput struct {
	Name                 *string  `json:"name"`
	Specialty            *string  `json:"specialty"`
	Active               *bool    `json:"active"`
	CompensationType     *string  `json:"compensationType" binding:"omitempty,oneof=percentage salary"`
	CommissionPercentage *float64 `json:"commissionPercentage" binding:"omitempty,min=0,max=100"`
	SalaryCents          *int64   `json:"salaryCents" binding:"omitempty,min=0"`
}

// CreateProfessional creates a new professional for the business
func CreateProfessional(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.CompensationType == models.CompensationPercentage && input.CommissionPercentage == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "commissionPercentage required for percentage compensation")
		return
	}
	if input.CompensationType == models.CompensationSalary && input.SalaryCents == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "salaryCents required for salary compensation")
		return
	}

	professional := models.Professional{
		BusinessID:           businessUUID,
		Name:                 input.Name,
		Specialty:            input.Specialty,
		Active:               true,
		CompensationType:     input.CompensationType,
		CommissionPercentage: input.CommissionPercentage,
		SalaryCents:          input.SalaryCents,
	}

	if err := config.DB.Create(&professional).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create professional")
		return
	}

	c.JSON(http.StatusCreated, professional)
}

// GetProfessionals retrieves all professionals for the business
func GetProfessionals(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var professionals []models.Professional
	if err := config.DB.Where("business_id = ?", businessUUID).Order("name").
		Find(&professionals).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve professionals")
		return
	}

	c.JSON(http.StatusOK, professionals)
}

// GetProfessional retrieves a specific professional by ID
func GetProfessional(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	professionalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional ID format")
		return
	}

	var professional models.Professional
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, professionalUUID).
		First(&professional).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, professional)
}

// UpdateProfessional updates an existing professional
func UpdateProfessional(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	professionalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional ID format")
		return
	}

	var input UpdateProfessionalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var professional models.Professional
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, professionalUUID).
		First(&professional).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		professional.Name = *input.Name
	}
	if input.Specialty != nil {
		professional.Specialty = *input.Specialty
	}
	if input.Active != nil {
		professional.Active = *input.Active
	}
	if input.CompensationType != nil {
		professional.CompensationType = *input.CompensationType
	}
	if input.CommissionPercentage != nil {
		professional.CommissionPercentage = input.CommissionPercentage
	}
	if input.SalaryCents != nil {
		professional.SalaryCents = input.SalaryCents
	}

	if err := config.DB.Save(&professional).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update professional")
		return
	}

	c.JSON(http.StatusOK, professional)
}

// DeleteProfessional deactivates when history references the professional,
// deletes otherwise.
func DeleteProfessional(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	professionalUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional ID format")
		return
	}

	var history int64
	if err := config.DB.Model(&models.Appointment{}).
		Where("business_id = ? AND professional_id = ?", businessUUID, professionalUUID).
		Count(&history).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if history == 0 {
		if err := config.DB.Model(&models.ServiceExecution{}).
			Where("business_id = ? AND professional_id = ?", businessUUID, professionalUUID).
			Count(&history).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	if history > 0 {
		result := config.DB.Model(&models.Professional{}).
			Where("business_id = ? AND id = ?", businessUUID, professionalUUID).
			Update("active", false)
		if result.Error != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate professional")
			return
		}
		if result.RowsAffected == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Professional deactivated (has history)"})
		return
	}

	result := config.DB.Where("business_id = ? AND id = ?", businessUUID, professionalUUID).
		Delete(&models.Professional{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete professional")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Professional not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Professional deleted successfully"})
}
