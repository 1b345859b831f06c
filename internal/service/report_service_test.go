package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"go-stockbill/internal/model"
	"go-stockbill/internal/repository"
	"go-stockbill/pkg/kvstore"
)

func seededReports(t *testing.T) (ReportService, repository.SnapshotRepository) {
	t.Helper()
	repo := repository.NewSnapshotRepo(kvstore.NewMemory())

	bills := []model.Bill{
		{
			ID: "b1", BillNumber: "BIL260828001", Status: model.BillCompleted,
			Items:     []model.BillItem{{ProductID: "1", Quantity: 2}},
			Subtotal:  decimal.RequireFromString("200"),
			Tax:       decimal.RequireFromString("14"),
			Total:     decimal.RequireFromString("214"),
			CreatedBy: "1", CreatedAt: time.Now(),
		},
		{
			ID: "b2", BillNumber: "BIL260828002", Status: model.BillDraft,
			Total: decimal.RequireFromString("50"), CreatedAt: time.Now(),
		},
	}
	if err := repo.SetBills(bills); err != nil {
		t.Fatalf("SetBills: %v", err)
	}

	txs := []model.StockTransaction{
		{ID: "t1", ProductName: "iPhone 15 Pro", Type: model.TxOut, Quantity: 2, CreatedAt: time.Now()},
		{ID: "t2", ProductName: "Samsung Galaxy S24", Type: model.TxIn, Quantity: 5, CreatedAt: time.Now()},
	}
	if err := repo.SetTransactions(txs); err != nil {
		t.Fatalf("SetTransactions: %v", err)
	}

	return NewReportService(repo), repo
}

func TestProductReportFilters(t *testing.T) {
	reports, _ := seededReports(t)

	all, err := reports.ProductReport("", "")
	if err != nil {
		t.Fatalf("ProductReport: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("rows = %d, want 3 from the seed catalog", len(all))
	}

	// The zero-stock MacBook reads as out_of_stock.
	outOfStock, err := reports.ProductReport("out_of_stock", "")
	if err != nil {
		t.Fatalf("ProductReport(out_of_stock): %v", err)
	}
	if len(outOfStock) != 1 {
		t.Fatalf("out_of_stock rows = %d, want 1", len(outOfStock))
	}

	computers, err := reports.ProductReport("", "Computer")
	if err != nil {
		t.Fatalf("ProductReport(Computer): %v", err)
	}
	if len(computers) != 1 || computers[0][1].Value != "MacBook Air M2" {
		t.Errorf("Computer rows = %+v", computers)
	}
}

func TestBillReport(t *testing.T) {
	reports, _ := seededReports(t)

	completed, err := reports.BillReport("completed")
	if err != nil {
		t.Fatalf("BillReport: %v", err)
	}
	if len(completed) != 1 {
		t.Fatalf("completed rows = %d, want 1", len(completed))
	}

	row := completed[0]
	if row[0].Label != "Bill Number" || row[0].Value != "BIL260828001" {
		t.Errorf("first cell = %+v", row[0])
	}
	if row[5].Label != "Total" || row[5].Value != "214.00" {
		t.Errorf("total cell = %+v", row[5])
	}
}

func TestTransactionReportFilters(t *testing.T) {
	reports, _ := seededReports(t)

	out, err := reports.TransactionReport("out")
	if err != nil {
		t.Fatalf("TransactionReport: %v", err)
	}
	if len(out) != 1 || out[0][1].Value != "iPhone 15 Pro" {
		t.Errorf("out rows = %+v", out)
	}
}

func TestSummaryReport(t *testing.T) {
	reports, _ := seededReports(t)

	rows, err := reports.SummaryReport()
	if err != nil {
		t.Fatalf("SummaryReport: %v", err)
	}

	metrics := map[string]string{}
	for _, row := range rows {
		metrics[row[0].Value] = row[1].Value
	}
	if metrics["Total Products"] != "3" {
		t.Errorf("Total Products = %s", metrics["Total Products"])
	}
	if metrics["Completed Bills"] != "1" {
		t.Errorf("Completed Bills = %s", metrics["Completed Bills"])
	}
	if metrics["Revenue"] != "214.00" {
		t.Errorf("Revenue = %s", metrics["Revenue"])
	}
}

func TestWriteCSV(t *testing.T) {
	reports, _ := seededReports(t)

	rows, err := reports.BillReport("")
	if err != nil {
		t.Fatalf("BillReport: %v", err)
	}

	var buf bytes.Buffer
	if err := reports.WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 { // header + 2 bills
		t.Fatalf("csv lines = %d, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Bill Number,Status,") {
		t.Errorf("header = %q", lines[0])
	}

	// Empty input produces an empty document, not an error.
	buf.Reset()
	if err := reports.WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV(nil): %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty report wrote %q", buf.String())
	}
}

func TestExportFilename(t *testing.T) {
	name := ExportFilename("bills")
	if !strings.HasPrefix(name, "bills_") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("filename = %q", name)
	}
}
