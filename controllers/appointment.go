package controllers

import (
	"net/http"
	"strings"
	"time"

	"agendabiz-backend/config"
	"agendabiz-backend/services"
	"agendabiz-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateAppointmentInput defines the expected JSON structure
type CreateAppointmentInput struct {
	ClientID       uuid.UUID `json:"clientId" binding:"required"`
	ProfessionalID uuid.UUID `json:"professionalId" binding:"required"`
	ServiceID      uuid.UUID `json:"serviceId" binding:"required"`
	StartsAt       time.Time `json:"startsAt" binding:"required"`
	Notes          string    `json:"notes"`
}

// AdvanceStatusInput defines the expected JSON structure
type AdvanceStatusInput struct {
	Status string `json:"status" binding:"required,oneof=confirmed done cancelled"`
}

// RescheduleInput defines the expected JSON structure
type RescheduleInput struct {
	StartsAt time.Time `json:"startsAt" binding:"required"`
}

// CreateAppointment books a new appointment
func CreateAppointment(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	scheduler := services.NewScheduler(config.DB, config.Log)
	appointment, err := scheduler.CreateAppointment(businessUUID, services.CreateAppointmentInput{
		ClientID:       input.ClientID,
		ProfessionalID: input.ProfessionalID,
		ServiceID:      input.ServiceID,
		StartsAt:       input.StartsAt,
		Notes:          input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetDay returns the calendar read model for one date.
// Query params: date=YYYY-MM-DD (default today), professionals=id,id
func GetDay(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	var professionalIDs []uuid.UUID
	if raw := c.Query("professionals"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid professional ID in filter")
				return
			}
			professionalIDs = append(professionalIDs, id)
		}
	}

	scheduler := services.NewScheduler(config.DB, config.Log)
	day, err := scheduler.ListDay(businessUUID, date, professionalIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, day)
}

// AdvanceAppointmentStatus moves an appointment through its lifecycle
func AdvanceAppointmentStatus(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input AdvanceStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	scheduler := services.NewScheduler(config.DB, config.Log)
	appointment, err := scheduler.AdvanceStatus(businessUUID, appointmentUUID, input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// RescheduleAppointment cancels and rebooks at a new time
func RescheduleAppointment(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	appointmentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input RescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	scheduler := services.NewScheduler(config.DB, config.Log)
	appointment, err := scheduler.Reschedule(businessUUID, appointmentUUID, input.StartsAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}
