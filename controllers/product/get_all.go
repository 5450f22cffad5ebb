package productcontroller

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

// Sort fields the list endpoint accepts; anything else falls back to
// created_at so the order clause can never carry client input verbatim.
var sortableColumns = map[string]bool{
	"created_at": true,
	"category":   true,
	"quantity":   true,
}

// GET /products?page=&pageSize=&sortBy=&order=&minPrice=&maxPrice=&lang=
// Offset pagination with a totals envelope. The price range filter matches
// against the price resolved for lang (JSONB maps fall back to "en").
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
		if err != nil || pageSize < 1 {
			pageSize = 20
		}

		sortBy := c.DefaultQuery("sortBy", "created_at")
		if !sortableColumns[sortBy] {
			sortBy = "created_at"
		}
		order := strings.ToLower(c.DefaultQuery("order", "desc"))
		if order != "asc" && order != "desc" {
			order = "desc"
		}
		lang := localized.ParseLang(c.Query("lang"))

		query := db.Model(&models.Product{})

		// A scalar price column is stored as a bare JSON number, a localized
		// one as a map; coalesce picks whichever shape the row has.
		priceExpr := fmt.Sprintf(
			"COALESCE((CASE WHEN jsonb_typeof(price) = 'object' THEN COALESCE(price->>'%s', price->>'en') ELSE price #>> '{}' END)::numeric, 0)",
			lang,
		)
		if minPriceStr := c.Query("minPrice"); minPriceStr != "" {
			minPrice, err := strconv.ParseFloat(minPriceStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minPrice"})
				return
			}
			query = query.Where(priceExpr+" >= ?", minPrice)
		}
		if maxPriceStr := c.Query("maxPrice"); maxPriceStr != "" {
			maxPrice, err := strconv.ParseFloat(maxPriceStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maxPrice"})
				return
			}
			query = query.Where(priceExpr+" <= ?", maxPrice)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}

		var products []models.Product
		if err := query.
			Order(fmt.Sprintf("%s %s", sortBy, order)).
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": products,
			"pagination": gin.H{
				"page":       page,
				"pageSize":   pageSize,
				"total":      total,
				"totalPages": int(math.Ceil(float64(total) / float64(pageSize))),
			},
		})
	}
}
