package api

import (
	"errors"
	"net/http"

	"quickcart/internal/cart"
	"quickcart/internal/logger"
	"quickcart/internal/product"
	"quickcart/internal/storefront"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

type cartResponse struct {
	Items     cart.Items      `json:"items"`
	Lines     []cart.Line     `json:"lines"`
	Unmatched []product.ID    `json:"unmatched"`
	Count     int             `json:"count"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"currency": h.currency})
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sessions": h.sessions.Len(),
		"stats":    h.stats.Snapshot(),
	})
}

func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": stateFrom(c).Products()})
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := product.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, ok := stateFrom(c).Product(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// RefreshProducts refetches the catalog. Upstream failures still answer 200
// with the seed catalog.
func (h *Handler) RefreshProducts(c *gin.Context) {
	state := stateFrom(c)
	state.FetchProductData(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"products": state.Products()})
}

func (h *Handler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, newCartResponse(stateFrom(c)))
}

func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	id, err := product.ParseID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := stateFrom(c)
	state.AddToCart(c.Request.Context(), id)
	c.JSON(http.StatusOK, newCartResponse(state))
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := product.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	h.setQuantity(c, id, *req.Quantity)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	id, err := product.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.setQuantity(c, id, 0)
}

func (h *Handler) setQuantity(c *gin.Context, id product.ID, quantity int) {
	state := stateFrom(c)
	if err := state.UpdateQuantity(c.Request.Context(), id, quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.FromCtx(c.Request.Context()).Error("update quantity failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, newCartResponse(state))
}

func (h *Handler) GetMe(c *gin.Context) {
	state := stateFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"user":      state.User(),
		"is_seller": state.IsSeller(),
		"user_data": state.UserData(),
	})
}

func (h *Handler) SellerDashboard(c *gin.Context) {
	state := stateFrom(c)
	products := state.Products()
	c.JSON(http.StatusOK, gin.H{
		"product_count": len(products),
		"products":      products,
		"currency":      state.Currency(),
	})
}

func newCartResponse(s *storefront.State) cartResponse {
	snap := s.Snapshot()
	return cartResponse{
		Items:     snap.CartItems,
		Lines:     cart.Lines(snap.CartItems, snap.Products),
		Unmatched: cart.Unmatched(snap.CartItems, snap.Products),
		Count:     snap.CartCount,
		Amount:    snap.CartAmount,
		Currency:  snap.Currency,
	}
}
