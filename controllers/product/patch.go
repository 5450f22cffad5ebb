package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

type updateProductInput struct {
	Name        *localized.String `json:"name"`
	Description *string           `json:"description"`
	Price       *localized.Amount `json:"price"`
	SalePrice   *localized.Amount `json:"salePrice"`
	Quantity    *int              `json:"quantity"`
	Category    *string           `json:"category"`
	Images      *[]string         `json:"images"`
	IsNew       *bool             `json:"isNew"`
	IsSale      *bool             `json:"isSale"`
}

// PATCH /admin/products/:id
// Partial update; an empty body is rejected. Last write wins, there is no
// optimistic-concurrency check.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input updateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updated := false
		if input.Name != nil {
			if err := input.Name.Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			product.Name = *input.Name
			updated = true
		}
		if input.Description != nil {
			product.Description = *input.Description
			updated = true
		}
		if input.Price != nil {
			if err := input.Price.Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			product.Price = *input.Price
			updated = true
		}
		if input.SalePrice != nil {
			if err := input.SalePrice.Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			product.SalePrice = input.SalePrice
			updated = true
		}
		if input.Quantity != nil {
			product.Quantity = *input.Quantity
			updated = true
		}
		if input.Category != nil {
			product.Category = *input.Category
			updated = true
		}
		if input.Images != nil {
			product.Images = *input.Images
			updated = true
		}
		if input.IsNew != nil {
			product.IsNew = *input.IsNew
			updated = true
		}
		if input.IsSale != nil {
			product.IsSale = *input.IsSale
			updated = true
		}

		if !updated {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
			return
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
