package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

// GET /admin/products/export-excel
// One name/price column pair per supported language so the sheet is usable
// without knowing which rows are localized.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"ID", "Category", "Quantity", "IsNew", "IsSale", "Images", "CreatedAt"}
		for _, lang := range localized.Supported {
			headers = append(headers, "Name_"+strings.ToUpper(string(lang)), "Price_"+strings.ToUpper(string(lang)))
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(p.Quantity)
			row.AddCell().SetValue(p.IsNew)
			row.AddCell().SetValue(p.IsSale)
			row.AddCell().SetValue(strings.Join(p.Images, ","))
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			for _, lang := range localized.Supported {
				row.AddCell().SetValue(p.Name.Resolve(lang))
				row.AddCell().SetValue(p.Price.Resolve(lang))
			}
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
