package controllers

import (
	"net/http"
	"time"

	"agendabiz-backend/config"
	"agendabiz-backend/services"
	"agendabiz-backend/utils"

	"github.com/gin-gonic/gin"
)

// SetFinanceAccessInput defines the expected JSON structure
type SetFinanceAccessInput struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// VerifyFinanceAccessInput defines the expected JSON structure
type VerifyFinanceAccessInput struct {
	Password string `json:"password" binding:"required"`
}

// SetFinanceAccess stores the secondary finance password (owner only).
func SetFinanceAccess(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input SetFinanceAccessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	finance := services.NewFinance(config.DB, config.Log)
	if err := finance.SetFinanceAccess(businessUUID, input.Name, input.Password); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Finance access updated"})
}

// VerifyFinanceAccess checks the finance password.
func VerifyFinanceAccess(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input VerifyFinanceAccessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	finance := services.NewFinance(config.DB, config.Log)
	if err := finance.VerifyFinanceAccess(businessUUID, input.Password); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// GetFinanceSummary returns the monthly commission and revenue report.
// The finance password travels in the X-Finance-Password header; the
// report stays gated even for a valid platform session.
// Query param: month=YYYY-MM (default current month).
func GetFinanceSummary(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	finance := services.NewFinance(config.DB, config.Log)
	if err := finance.VerifyFinanceAccess(businessUUID, c.GetHeader("X-Finance-Password")); err != nil {
		respondServiceError(c, err)
		return
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month, expected YYYY-MM")
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}
	start, end := utils.MonthRange(year, month, now.Location())

	summary, err := finance.ComputeBusinessSummary(businessUUID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
