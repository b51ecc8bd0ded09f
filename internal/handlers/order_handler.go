package handlers

import (
	"boutique/internal/middleware"
	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, validate *validator.Validate) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the customer order routes behind auth.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	orderRoutes := router.Group("/orders", auth)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/my", h.HandleGetMyOrders)
	orderRoutes.Get("/:id", h.HandleGetMyOrderByID)
}

// RegisterAdminRoutes registers order management under an admin router.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router, guard fiber.Handler) {
	orderRoutes := router.Group("/orders", guard)
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Put("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleCreateOrder places an order for the authenticated customer.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var in services.CreateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if len(in.OrderItems) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No order items",
		})
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	order, err := h.service.CreateOrder(c.UserContext(), middleware.UserID(c), in)
	if err != nil {
		return writeError(c, err, "Order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetMyOrders lists the orders of the authenticated customer.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetMyOrders(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeError(c, err, "Order")
	}
	return c.JSON(orders)
}

// HandleGetMyOrderByID returns one of the customer's own orders.
func (h *OrderHandler) HandleGetMyOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderForUser(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Order")
	}
	return c.JSON(order)
}

// HandleListOrders serves one page of all orders.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, pagination, err := h.service.ListOrders(c.UserContext(),
		c.QueryInt("page", 1),
		c.QueryInt("limit", services.DefaultOrderPageSize),
	)
	if err != nil {
		return writeError(c, err, "Order")
	}
	return c.JSON(fiber.Map{
		"orders":     orders,
		"pagination": pagination,
	})
}

// HandleGetOrderByID retrieves any order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Order")
	}
	return c.JSON(order)
}

// StatusRequest is the body of an order status update.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req StatusRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	order, err := h.service.UpdateOrderStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return writeError(c, err, "Order")
	}
	return c.JSON(order)
}
