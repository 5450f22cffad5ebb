package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/bdimon/warm-hat/cart"
	"github.com/bdimon/warm-hat/localized"
	"github.com/bdimon/warm-hat/models"
)

type addItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

func userStore(c *gin.Context, carts *cart.Manager) (*cart.Store, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	store, err := carts.ForUser(c.Request.Context(), userIDVal.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return nil, false
	}
	return store, true
}

// GET /user/cart?lang=
func GetUserCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}
		lang := localized.ParseLang(c.Query("lang"))
		c.JSON(http.StatusOK, gin.H{
			"items": store.Items(),
			"total": store.Total(lang),
		})
	}
}

// POST /user/cart
// The line item is built from the product row, not from client fields, so
// the cart can only hold prices the catalog actually has.
func AddCartItem(db *gorm.DB, carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}

		var input addItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		store.Add(models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  input.Quantity,
			IsSale:    product.IsSale,
			SalePrice: product.SalePrice,
			Images:    product.Images,
		})

		c.JSON(http.StatusOK, gin.H{"items": store.Items()})
	}
}

// PUT /user/cart/:product_id
// Quantities below 1 are rejected; callers remove the line instead.
func UpdateCartItemQuantity(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}

		var input updateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		err := store.UpdateQuantity(c.Param("product_id"), input.Quantity)
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, cart.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		default:
			c.JSON(http.StatusOK, gin.H{"items": store.Items()})
		}
	}
}

// DELETE /user/cart/:product_id
func DeleteCartItem(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}
		if !store.Remove(c.Param("product_id")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := userStore(c, carts)
		if !ok {
			return
		}
		store.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// POST /user/signout
// Drops the local cart list the way the storefront clears state on the
// SIGNED_OUT auth event. The remote record is untouched.
func SignOut(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		carts.SignOut(userIDVal.(string))
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
	}
}
