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

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email" binding:"omitempty,email"`
	Notes     string `json:"notes"`
	AvatarURL string `json:"avatarUrl"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Notes     *string `json:"notes"`
	AvatarURL *string `json:"avatarUrl"`
}

// CreateClient creates a new client for the business
func CreateClient(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	client := models.Client{
		BusinessID: businessUUID,
		Name:       input.Name,
		Phone:      input.Phone,
		Email:      input.Email,
		Notes:      input.Notes,
		AvatarURL:  input.AvatarURL,
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves all clients for the business
func GetClients(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := config.DB.Where("business_id = ?", businessUUID).Order("name").
		Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client by ID
func GetClient(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	if input.AvatarURL != nil {
		client.AvatarURL = *input.AvatarURL
	}

	if err := config.DB.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient deletes a client, refusing when referencing history exists.
func DeleteClient(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	// A count failure must not read as "no history" and let the delete
	// through.
	var history int64
	if err := config.DB.Model(&models.Appointment{}).
		Where("business_id = ? AND client_id = ?", businessUUID, clientUUID).
		Count(&history).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if history == 0 {
		if err := config.DB.Model(&models.ServiceExecution{}).
			Where("business_id = ? AND client_id = ?", businessUUID, clientUUID).
			Count(&history).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}
	if history == 0 {
		if err := config.DB.Model(&models.ProductMovement{}).
			Where("business_id = ? AND client_id = ?", businessUUID, clientUUID).
			Count(&history).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}
	if history > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Client has history and cannot be deleted")
		return
	}

	result := config.DB.Where("business_id = ? AND id = ?", businessUUID, clientUUID).
		Delete(&models.Client{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
