package handlers

import (
	"strconv"

	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validator.Validate) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// RegisterAdminRoutes registers catalog management under an admin router.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router, guard fiber.Handler) {
	productRoutes := router.Group("/products", guard)
	productRoutes.Get("/", h.HandleGetAllProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts serves one filtered page of the catalog.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	q := services.ProductQuery{
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", services.DefaultProductPageSize),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("featured"); raw != "" {
		if featured, err := strconv.ParseBool(raw); err == nil {
			q.Featured = &featured
		}
	}

	products, pagination, err := h.service.ListProducts(c.UserContext(), q)
	if err != nil {
		return writeError(c, err, "Product")
	}
	return c.JSON(fiber.Map{
		"products":   products,
		"pagination": pagination,
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Product")
	}
	return c.JSON(product)
}

// HandleGetAllProducts lists the whole catalog for admins.
func (h *ProductHandler) HandleGetAllProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return writeError(c, err, "Product")
	}
	return c.JSON(products)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if ok, err := parseAndValidate(c, h.validate, &in); !ok {
		return err
	}

	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "Product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct merges the provided fields into an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var patch services.ProductPatch
	if ok, err := parseAndValidate(c, h.validate, &patch); !ok {
		return err
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return writeError(c, err, "Product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, "Product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
