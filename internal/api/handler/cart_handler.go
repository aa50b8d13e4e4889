package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketloop/commerce-api/internal/api/metrics"
	"github.com/marketloop/commerce-api/internal/core/domain"
	"github.com/marketloop/commerce-api/internal/core/ports"
)

// CartHandler handles the caller's own cart. Every route sits behind the
// Auth middleware.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get returns the caller's cart with products expanded, creating an empty
// cart on first access.
//
// @Summary      Get the caller's cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartViewResponse
// @Failure      401  {object}  messageResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartViewResponse(view))
}

// Add puts a product into the caller's cart, incrementing the quantity when
// it is already there.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      cartItemRequest  true  "Product and quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /cart/add [post]
func (h *CartHandler) Add(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	cart, err := h.service.Add(c.Request().Context(), actor.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return cartError(c, err)
	}

	metrics.CartOperationsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusOK, cartResponse{Message: "product added to cart", Cart: cart})
}

// UpdateQuantity overwrites the quantity of an item already in the cart.
//
// @Summary      Update a cart item's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      cartItemRequest  true  "Product and new quantity"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /cart/update [put]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	cart, err := h.service.UpdateQuantity(c.Request().Context(), actor.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return cartError(c, err)
	}

	metrics.CartOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, cartResponse{Message: "cart updated successfully", Cart: cart})
}

// Remove drops a product from the cart; removing an absent product succeeds.
//
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string  true  "Product id"
// @Success      200        {object}  cartResponse
// @Failure      404        {object}  messageResponse
// @Router       /cart/remove/{productId} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	cart, err := h.service.Remove(c.Request().Context(), actor.UserID, c.Param("productId"))
	if err != nil {
		return cartError(c, err)
	}

	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, cartResponse{Message: "product removed from cart", Cart: cart})
}

// Clear empties the cart; the cart document itself persists.
//
// @Summary      Clear the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      404  {object}  messageResponse
// @Router       /cart/clear [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	cart, err := h.service.Clear(c.Request().Context(), actor.UserID)
	if err != nil {
		return cartError(c, err)
	}

	metrics.CartOperationsTotal.WithLabelValues("clear").Inc()
	return c.JSON(http.StatusOK, cartResponse{Message: "cart cleared", Cart: cart})
}

// cartError maps the cart service's known failures to HTTP responses.
func cartError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, messageResponse{Message: "product not found"})
	case errors.Is(err, domain.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, messageResponse{Message: "product not found in cart"})
	case errors.Is(err, domain.ErrCartNotFound):
		return c.JSON(http.StatusNotFound, messageResponse{Message: "cart not found"})
	}
	return err
}
