package productcontroller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

type createProductInput struct {
	Name        localized.String  `json:"name" binding:"required"`
	Description string            `json:"description"`
	Price       localized.Amount  `json:"price" binding:"required"`
	SalePrice   *localized.Amount `json:"salePrice"`
	Quantity    int               `json:"quantity"`
	Category    string            `json:"category"`
	Images      []string          `json:"images"`
	IsSale      bool              `json:"isSale"`
}

// POST /admin/products
// New products are flagged isNew; localized name/price maps must carry an
// "en" entry.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input createProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := models.Product{
			ID:          uuid.NewString(),
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			SalePrice:   input.SalePrice,
			Quantity:    input.Quantity,
			Category:    input.Category,
			Images:      input.Images,
			IsNew:       true,
			IsSale:      input.IsSale,
			CreatedAt:   time.Now(),
		}
		if err := product.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
