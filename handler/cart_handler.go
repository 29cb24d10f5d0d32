package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Idyll-Intelligent-Systems/UNIUN/middleware"
	"github.com/Idyll-Intelligent-Systems/UNIUN/model"
	"github.com/Idyll-Intelligent-Systems/UNIUN/service"
)

type CartHandler struct {
	carts *service.CartService
	log   *logrus.Logger
}

func NewCartHandler(carts *service.CartService, log *logrus.Logger) *CartHandler {
	return &CartHandler{carts: carts, log: log}
}

type addCartItemRequest struct {
	ItemID string `json:"itemId"`
	// ID is accepted as an alias for itemId.
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

// Add appends an item to the caller's cart and returns the new size.
func (h *CartHandler) Add(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itemId required"})
		return
	}

	itemID := req.ItemID
	if itemID == "" {
		itemID = req.ID
	}

	userID := middleware.UserID(c)
	err := h.carts.AddItem(c.Request.Context(), userID, model.CartItem{ItemID: itemID, Price: req.Price})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	cart, err := h.carts.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "inCart": len(cart.Items)})
}

// Get returns the caller's cart.
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.carts.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Checkout returns a pretend payment URL.
func (h *CartHandler) Checkout(c *gin.Context) {
	url := h.carts.Checkout(c.Request.Context(), middleware.UserID(c))
	c.JSON(http.StatusOK, gin.H{"url": url})
}
