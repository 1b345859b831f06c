package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"go-stockbill/internal/model"
	"go-stockbill/internal/repository"
)

// Cell is one labelled value in an export row; rows keep column order.
type Cell struct {
	Label string
	Value string
}

type Row []Cell

// ReportService turns the snapshot collections into flat export-row
// sequences. Responsibility ends at the rows; the spreadsheet file format
// itself belongs to the consumer (CSV encoding is bundled as the default).
type ReportService interface {
	ProductReport(status, productType string) ([]Row, error)
	BillReport(status string) ([]Row, error)
	TransactionReport(txType string) ([]Row, error)
	SummaryReport() ([]Row, error)
	WriteCSV(w io.Writer, rows []Row) error
}

type reportService struct {
	snapshot repository.SnapshotRepository
}

func NewReportService(snapshot repository.SnapshotRepository) ReportService {
	return &reportService{snapshot: snapshot}
}

func (s *reportService) ProductReport(status, productType string) ([]Row, error) {
	products, err := s.snapshot.GetProducts()
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(products))
	for _, p := range products {
		if status != "" && string(p.DisplayStatus()) != status {
			continue
		}
		if productType != "" && p.Type != productType {
			continue
		}
		rows = append(rows, Row{
			{"ID", p.ID},
			{"Name", p.Name},
			{"Type", p.Type},
			{"Quantity", strconv.Itoa(p.Quantity)},
			{"Price", p.Price.StringFixed(2)},
			{"Cost", p.Cost.StringFixed(2)},
			{"Profit", p.Profit.StringFixed(2)},
			{"Status", string(p.DisplayStatus())},
			{"Updated", p.UpdatedAt.Format("2006-01-02")},
		})
	}
	return rows, nil
}

func (s *reportService) BillReport(status string) ([]Row, error) {
	bills, err := s.snapshot.GetBills()
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(bills))
	for _, b := range bills {
		if status != "" && string(b.Status) != status {
			continue
		}
		rows = append(rows, Row{
			{"Bill Number", b.BillNumber},
			{"Status", string(b.Status)},
			{"Items", strconv.Itoa(len(b.Items))},
			{"Subtotal", b.Subtotal.StringFixed(2)},
			{"Tax", b.Tax.StringFixed(2)},
			{"Total", b.Total.StringFixed(2)},
			{"Created By", b.CreatedBy},
			{"Created", b.CreatedAt.Format("2006-01-02 15:04")},
		})
	}
	return rows, nil
}

func (s *reportService) TransactionReport(txType string) ([]Row, error) {
	txs, err := s.snapshot.GetTransactions()
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(txs))
	for _, tx := range txs {
		if txType != "" && string(tx.Type) != txType {
			continue
		}
		rows = append(rows, Row{
			{"ID", tx.ID},
			{"Product", tx.ProductName},
			{"Type", string(tx.Type)},
			{"Quantity", strconv.Itoa(tx.Quantity)},
			{"Reason", tx.Reason},
			{"Bill ID", tx.BillID},
			{"Created", tx.CreatedAt.Format("2006-01-02 15:04")},
			{"Created By", tx.CreatedBy},
		})
	}
	return rows, nil
}

func (s *reportService) SummaryReport() ([]Row, error) {
	products, err := s.snapshot.GetProducts()
	if err != nil {
		return nil, err
	}
	bills, err := s.snapshot.GetBills()
	if err != nil {
		return nil, err
	}

	active, outOfStock := 0, 0
	stockValue := decimal.Zero
	for _, p := range products {
		switch p.DisplayStatus() {
		case model.ProductActive:
			active++
		case model.ProductOutOfStock:
			outOfStock++
		}
		stockValue = stockValue.Add(p.Cost.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}

	completed := 0
	revenue := decimal.Zero
	for _, b := range bills {
		if b.Status == model.BillCompleted {
			completed++
			revenue = revenue.Add(b.Total)
		}
	}

	return []Row{
		{{"Metric", "Total Products"}, {"Value", strconv.Itoa(len(products))}},
		{{"Metric", "Active Products"}, {"Value", strconv.Itoa(active)}},
		{{"Metric", "Out of Stock"}, {"Value", strconv.Itoa(outOfStock)}},
		{{"Metric", "Stock Value"}, {"Value", stockValue.StringFixed(2)}},
		{{"Metric", "Total Bills"}, {"Value", strconv.Itoa(len(bills))}},
		{{"Metric", "Completed Bills"}, {"Value", strconv.Itoa(completed)}},
		{{"Metric", "Revenue"}, {"Value", revenue.StringFixed(2)}},
	}, nil
}

// WriteCSV encodes rows with a header taken from the first row's labels.
func (s *reportService) WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if len(rows) > 0 {
		header := make([]string, len(rows[0]))
		for i, c := range rows[0] {
			header[i] = c.Label
		}
		if err := cw.Write(header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, c := range row {
			record[i] = c.Value
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFilename appends the current date to a filename stem, matching the
// convention used by download links.
func ExportFilename(stem string) string {
	return fmt.Sprintf("%s_%s.csv", stem, time.Now().Format("2006-01-02"))
}
