package handler

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"go-stockbill/internal/service"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// ExportProducts downloads the product report.
// GET /api/v1/reports/products?status=&type=
func (h *ReportHandler) ExportProducts(c *fiber.Ctx) error {
	rows, err := h.reports.ProductReport(c.Query("status"), c.Query("type"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return h.download(c, "products", rows)
}

// ExportBills downloads the bill report.
// GET /api/v1/reports/bills?status=
func (h *ReportHandler) ExportBills(c *fiber.Ctx) error {
	rows, err := h.reports.BillReport(c.Query("status"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return h.download(c, "bills", rows)
}

// ExportTransactions downloads the stock-movement report.
// GET /api/v1/reports/transactions?type=
func (h *ReportHandler) ExportTransactions(c *fiber.Ctx) error {
	rows, err := h.reports.TransactionReport(c.Query("type"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return h.download(c, "stock_movement", rows)
}

// ExportSummary downloads the aggregate summary sheet.
// GET /api/v1/reports/summary
func (h *ReportHandler) ExportSummary(c *fiber.Ctx) error {
	rows, err := h.reports.SummaryReport()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return h.download(c, "summary", rows)
}

func (h *ReportHandler) download(c *fiber.Ctx, stem string, rows []service.Row) error {
	var buf bytes.Buffer
	if err := h.reports.WriteCSV(&buf, rows); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to encode report"})
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", service.ExportFilename(stem)))
	return c.Send(buf.Bytes())
}
