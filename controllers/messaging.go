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

// GetConversations lists the business's WhatsApp conversations, most
// recently active first.
func GetConversations(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var conversations []models.Conversation
	if err := config.DB.Where("business_id = ?", businessUUID).
		Order("last_message_at DESC NULLS LAST").
		Find(&conversations).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve conversations")
		return
	}

	c.JSON(http.StatusOK, conversations)
}

// GetMessages lists the messages of one conversation, oldest first.
func GetMessages(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	conversationUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid conversation ID format")
		return
	}

	var conversation models.Conversation
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, conversationUUID).
		First(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Conversation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var messages []models.Message
	if err := config.DB.Where("business_id = ? AND conversation_id = ?", businessUUID, conversationUUID).
		Order("created_at").
		Find(&messages).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// GetWhatsAppConnection returns the messaging provider's connection state.
func GetWhatsAppConnection(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var connection models.WhatsAppConnection
	if err := config.DB.Where("business_id = ?", businessUUID).First(&connection).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, models.WhatsAppConnection{
				BusinessID: businessUUID,
				Status:     "disconnected",
			})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, connection)
}
