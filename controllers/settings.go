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

// UpdateBusinessInput defines the expected JSON structure
type UpdateBusinessInput struct {
	Name        *string `json:"name"`
	Vertical    *string `json:"vertical" binding:"omitempty,oneof=barbershop salon"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	OpeningTime *string `json:"openingTime"`
	ClosingTime *string `json:"closingTime"`
}

// UpsertAntifuroPolicyInput defines the expected JSON structure
type UpsertAntifuroPolicyInput struct {
	PolicyType        string   `json:"policyType" binding:"required,oneof=none fixed_deposit percentage_deposit confirmation_only"`
	DepositValueCents *int64   `json:"depositValueCents" binding:"omitempty,min=0"`
	DepositPercentage *float64 `json:"depositPercentage" binding:"omitempty,min=0,max=100"`
	ConfirmationHours *int     `json:"confirmationHours" binding:"omitempty,min=1"`
	ReminderHours     *int     `json:"reminderHours" binding:"omitempty,min=1"`
}

// GetBusiness returns the business profile
func GetBusiness(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var business models.Business
	if err := config.DB.First(&business, "id = ?", businessUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		return
	}

	c.JSON(http.StatusOK, business)
}

// UpdateBusiness mutates the business profile and operating hours
func UpdateBusiness(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input UpdateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var business models.Business
	if err := config.DB.First(&business, "id = ?", businessUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		return
	}

	if input.Name != nil {
		business.Name = *input.Name
	}
	if input.Vertical != nil {
		business.Vertical = *input.Vertical
	}
	if input.Address != nil {
		business.Address = *input.Address
	}
	if input.Phone != nil {
		business.Phone = *input.Phone
	}
	if input.OpeningTime != nil {
		business.OpeningTime = *input.OpeningTime
	}
	if input.ClosingTime != nil {
		business.ClosingTime = *input.ClosingTime
	}

	if err := config.DB.Save(&business).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update business")
		return
	}

	c.JSON(http.StatusOK, business)
}

// GetAntifuroPolicy returns the business's no-show policy
func GetAntifuroPolicy(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var policy models.AntifuroPolicy
	if err := config.DB.Where("business_id = ?", businessUUID).First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, models.AntifuroPolicy{
				BusinessID: businessUUID,
				PolicyType: models.PolicyNone,
			})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, policy)
}

// UpsertAntifuroPolicy creates or replaces the business's no-show policy
func UpsertAntifuroPolicy(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input UpsertAntifuroPolicyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	switch input.PolicyType {
	case models.PolicyFixedDeposit:
		if input.DepositValueCents == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "depositValueCents required for fixed_deposit")
			return
		}
	case models.PolicyPercentageDeposit:
		if input.DepositPercentage == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "depositPercentage required for percentage_deposit")
			return
		}
	}

	policy := models.AntifuroPolicy{
		BusinessID:        businessUUID,
		PolicyType:        input.PolicyType,
		DepositValueCents: input.DepositValueCents,
		DepositPercentage: input.DepositPercentage,
		ConfirmationHours: input.ConfirmationHours,
		ReminderHours:     input.ReminderHours,
	}

	if err := config.DB.Save(&policy).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save policy")
		return
	}

	c.JSON(http.StatusOK, policy)
}

// GetSubscription returns the caller's billing status for display gating.
// Rows are written by the billing provider's webhooks, never here.
func GetSubscription(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var subscription models.Subscription
	if err := config.DB.Where("user_id = ?", userUUID).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, models.Subscription{UserID: userUUID, Status: "inactive"})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, subscription)
}
