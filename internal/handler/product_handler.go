package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"go-stockbill/internal/model"
	"go-stockbill/internal/remote"
	"go-stockbill/internal/service"
	"go-stockbill/internal/ws"
)

type ProductHandler struct {
	catalog  service.CatalogService
	notifier ws.Notifier
}

func NewProductHandler(catalog service.CatalogService, notifier ws.Notifier) *ProductHandler {
	return &ProductHandler{catalog: catalog, notifier: notifier}
}

func listOptions(c *fiber.Ctx) remote.ListOptions {
	return remote.ListOptions{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Search: c.Query("search"),
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}
}

// GetProducts lists the catalog with pagination and filters.
// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	list, err := h.catalog.Products(c.Context(), listOptions(c))
	if err != nil {
		return remoteFailure(c, h.notifier, err)
	}
	return c.JSON(list)
}

// GetProduct fetches one product.
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.catalog.FindProduct(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
		}
		return remoteFailure(c, h.notifier, err)
	}
	return c.JSON(p)
}

// CreateProduct forwards a new catalog entry to the remote API.
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var p model.Product
	if err := c.BodyParser(&p); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.catalog.CreateProduct(c.Context(), &p)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return remoteFailure(c, h.notifier, err)
	}
	h.notifier.Notify("Product created", created.Name, ws.SeveritySuccess)
	return c.Status(201).JSON(created)
}

// UpdateProduct forwards an edit to the remote API.
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var p model.Product
	if err := c.BodyParser(&p); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.catalog.UpdateProduct(c.Context(), c.Params("id"), &p)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return remoteFailure(c, h.notifier, err)
	}
	h.notifier.Notify("Product updated", updated.Name, ws.SeveritySuccess)
	return c.JSON(updated)
}

// DeleteProduct removes a catalog entry via the remote API.
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return remoteFailure(c, h.notifier, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// GetLowStock lists products near or at stockout.
// GET /api/v1/products/low-stock
func (h *ProductHandler) GetLowStock(c *fiber.Ctx) error {
	products, err := h.catalog.LowStock(c.Context())
	if err != nil {
		return remoteFailure(c, h.notifier, err)
	}
	return c.JSON(products)
}

// GetExpired lists products past their expiration date.
// GET /api/v1/products/expired
func (h *ProductHandler) GetExpired(c *fiber.Ctx) error {
	products, err := h.catalog.Expired(c.Context())
	if err != nil {
		return remoteFailure(c, h.notifier, err)
	}
	return c.JSON(products)
}

// remoteFailure reports an API failure as a generic retryable message. The
// underlying error goes to the log only; response bodies stay generic.
// Local state has not been mutated by the time this runs.
func remoteFailure(c *fiber.Ctx, notifier ws.Notifier, err error) error {
	if errors.Is(err, remote.ErrRemoteUnavailable) {
		notifier.Notify("Operation failed", "The inventory service is unreachable. Please try again.", ws.SeverityError)
		return c.Status(502).JSON(fiber.Map{"error": "Operation failed"})
	}
	log.Printf("unexpected error handling %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(500).JSON(fiber.Map{"error": "Operation failed"})
}
