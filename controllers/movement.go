package controllers

import (
	"net/http"
	"strconv"

	"agendabiz-backend/config"
	"agendabiz-backend/services"
	"agendabiz-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RecordMovementInput defines the expected JSON structure
type RecordMovementInput struct {
	ProductID     uuid.UUID  `json:"productId" binding:"required"`
	Type          string     `json:"type" binding:"required,oneof=sale consumption adjustment"`
	Qty           int        `json:"qty" binding:"required"`
	ClientID      *uuid.UUID `json:"clientId"`
	BuyerName     string     `json:"buyerName"`
	AppointmentID *uuid.UUID `json:"appointmentId"`
}

// RecordMovement records a product sale, consumption or stock adjustment
func RecordMovement(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input RecordMovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	inventory := services.NewInventory(config.DB, config.Log)
	movement, err := inventory.RecordMovement(businessUUID, services.RecordMovementInput{
		ProductID:     input.ProductID,
		Type:          input.Type,
		Qty:           input.Qty,
		ClientID:      input.ClientID,
		BuyerName:     input.BuyerName,
		AppointmentID: input.AppointmentID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, movement)
}

// GetMovements lists recent movements, newest first
func GetMovements(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	inventory := services.NewInventory(config.DB, config.Log)
	movements, err := inventory.ListMovements(businessUUID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, movements)
}
