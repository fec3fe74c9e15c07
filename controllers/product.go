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

// CreateProductInput defines the expected JSON structure for creating a product
type CreateProductInput struct {
	Name       string `json:"name" binding:"required"`
	PriceCents int64  `json:"priceCents" binding:"min=0"`
	StockQty   int    `json:"stockQty" binding:"min=0"`
}

// UpdateProductInput defines the expected JSON structure for updating a product
type UpdateProductInput struct {
	Name       *string `json:"name"`
	PriceCents *int64  `json:"priceCents" binding:"omitempty,min=0"`
	Active     *bool   `json:"active"`
}

// CreateProduct creates a new product for the business
func CreateProduct(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	product := models.Product{
		BusinessID: businessUUID,
		Name:       input.Name,
		PriceCents: input.PriceCents,
		StockQty:   input.StockQty,
		Active:     true,
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetProducts retrieves all products for the business
func GetProducts(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	var products []models.Product
	if err := config.DB.Where("business_id = ?", businessUUID).Order("name").
		Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// UpdateProduct updates an existing product. Stock changes go through the
// movement ledger, not through this endpoint.
func UpdateProduct(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, productUUID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := config.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct deactivates when movements reference the product, deletes
// otherwise.
func DeleteProduct(c *gin.Context) {
	businessUUID, ok := businessIDFromContext(c)
	if !ok {
		return
	}

	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var history int64
	if err := config.DB.Model(&models.ProductMovement{}).
		Where("business_id = ? AND product_id = ?", businessUUID, productUUID).
		Count(&history).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if history > 0 {
		result := config.DB.Model(&models.Product{}).
			Where("business_id = ? AND id = ?", businessUUID, productUUID).
			Update("active", false)
		if result.Error != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate product")
			return
		}
		if result.RowsAffected == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deactivated (has movements)"})
		return
	}

	result := config.DB.Where("business_id = ? AND id = ?", businessUUID, productUUID).
		Delete(&models.Product{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
