package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-delivery/internal/api/dto"
	"github.com/spec-kit/pizza-delivery/internal/auth"
	"github.com/spec-kit/pizza-delivery/internal/domain"
	"github.com/spec-kit/pizza-delivery/internal/service"
)

// OrdersHandler exposes the order endpoints. Routes are mounted behind the
// auth middleware, so an identity is always present.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// Create handles POST /api/v1/orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orders.CreateOrder(c.UserContext(), identity, service.CreateOrderInput{
		Size:      req.Size,
		PizzaType: req.PizzaType,
		Quantity:  req.Quantity,
		Toppings:  req.Toppings,
	})
	if err != nil {
		return err
	}
	return success(c, http.StatusCreated, "Order created successfully", dto.NewOrderResponse(order))
}

// List handles GET /api/v1/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.ListOrders(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Orders retrieved successfully", dto.NewOrderListResponse(orders))
}

// Get handles GET /api/v1/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	order, err := h.orders.GetOrder(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Order retrieved successfully", dto.NewOrderResponse(order))
}

// UpdateStatus handles PATCH /api/v1/orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UpdateOrderStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orders.UpdateOrderStatus(c.UserContext(), identity, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Order status updated successfully", dto.NewOrderResponse(order))
}

// Status handles GET /api/v1/orders/:id/status.
func (h *OrdersHandler) Status(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	id := c.Params("id")
	status, err := h.orders.GetOrderStatus(c.UserContext(), identity, id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, "Order status retrieved successfully", dto.OrderStatusResponse{ID: id, Status: status})
}

// Delete handles DELETE /api/v1/orders/:id.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	if err := h.orders.DeleteOrder(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return success(c, http.StatusOK, "Order deleted successfully", nil)
}

func currentIdentity(c *fiber.Ctx) (*domain.User, error) {
	user, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, domain.ErrMissingToken
	}
	return user, nil
}
