package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"go-stockbill/internal/model"
	"go-stockbill/internal/service"
	"go-stockbill/internal/ws"
)

type BillHandler struct {
	bills    service.BillService
	drafts   service.DraftService
	notifier ws.Notifier
}

func NewBillHandler(bills service.BillService, drafts service.DraftService, notifier ws.Notifier) *BillHandler {
	return &BillHandler{bills: bills, drafts: drafts, notifier: notifier}
}

// GetBills lists persisted bills.
// GET /api/v1/bills
func (h *BillHandler) GetBills(c *fiber.Ctx) error {
	list, err := h.bills.Bills(c.Context(), listOptions(c))
	if err != nil {
		return remoteFailure(c, h.notifier, err)
	}
	return c.JSON(list)
}

// GetBill fetches one persisted bill.
// GET /api/v1/bills/:id
func (h *BillHandler) GetBill(c *fiber.Ctx) error {
	bill, err := h.bills.Bill(c.Context(), c.Params("id"))
	if err != nil {
		return remoteFailure(c, h.notifier, err)
	}
	return c.JSON(bill)
}

// OpenDraft starts an empty draft bill.
// POST /api/v1/drafts
func (h *BillHandler) OpenDraft(c *fiber.Ctx) error {
	id, draft := h.drafts.Open()
	return c.Status(201).JSON(fiber.Map{
		"draftId":    id,
		"draft":      draft,
		"billNumber": model.GenerateBillNumber(),
	})
}

// GetDraft returns the current draft state.
// GET /api/v1/drafts/:id
func (h *BillHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.drafts.Get(c.Params("id"))
	if err != nil {
		return draftError(c, h.notifier, err)
	}
	return c.JSON(draft)
}

type DraftItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddDraftItem merges a product into the draft.
// POST /api/v1/drafts/:id/items
func (h *BillHandler) AddDraftItem(c *fiber.Ctx) error {
	var req DraftItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "productId and a positive quantity are required"})
	}

	draft, err := h.drafts.AddItem(c.Context(), c.Params("id"), req.ProductID, req.Quantity)
	if err != nil {
		return draftError(c, h.notifier, err)
	}
	return c.JSON(draft)
}

// UpdateDraftItem replaces a line's quantity; zero removes the line.
// PUT /api/v1/drafts/:id/items/:productId
func (h *BillHandler) UpdateDraftItem(c *fiber.Ctx) error {
	var req DraftItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	draft, err := h.drafts.UpdateQuantity(c.Context(), c.Params("id"), c.Params("productId"), req.Quantity)
	if err != nil {
		return draftError(c, h.notifier, err)
	}
	return c.JSON(draft)
}

// RemoveDraftItem deletes a line from the draft.
// DELETE /api/v1/drafts/:id/items/:productId
func (h *BillHandler) RemoveDraftItem(c *fiber.Ctx) error {
	draft, err := h.drafts.RemoveItem(c.Params("id"), c.Params("productId"))
	if err != nil {
		return draftError(c, h.notifier, err)
	}
	return c.JSON(draft)
}

type SubmitDraftRequest struct {
	Status model.BillStatus `json:"status"`
}

// SubmitDraft converts the draft into a persisted bill. The author is the
// authenticated user; totals are recomputed server-side by the remote API.
// POST /api/v1/drafts/:id/submit
func (h *BillHandler) SubmitDraft(c *fiber.Ctx) error {
	var req SubmitDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if !req.Status.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "status must be draft, completed, or cancelled"})
	}

	createdBy, _ := c.Locals("user_id").(string)
	bill, err := h.drafts.Submit(c.Context(), c.Params("id"), req.Status, createdBy)
	if err != nil {
		return draftError(c, h.notifier, err)
	}

	h.notifier.Notify("Bill created", fmt.Sprintf("Bill %s saved (%s)", bill.BillNumber, bill.Status), ws.SeveritySuccess)
	return c.Status(201).JSON(bill)
}

// DiscardDraft drops the draft without saving.
// DELETE /api/v1/drafts/:id
func (h *BillHandler) DiscardDraft(c *fiber.Ctx) error {
	h.drafts.Discard(c.Params("id"))
	return c.JSON(fiber.Map{"message": "Draft discarded"})
}

func draftError(c *fiber.Ctx, notifier ws.Notifier, err error) error {
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Draft not found"})
	case errors.Is(err, service.ErrProductNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	case errors.Is(err, model.ErrStockExceeded):
		notifier.Notify("Not enough stock", "The requested quantity exceeds the available stock.", ws.SeverityError)
		return c.Status(409).JSON(fiber.Map{"error": "Requested quantity exceeds available stock"})
	case errors.Is(err, model.ErrEmptyDraft):
		return c.Status(400).JSON(fiber.Map{"error": "Add at least one item before saving"})
	case errors.Is(err, service.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return remoteFailure(c, notifier, err)
	}
}
