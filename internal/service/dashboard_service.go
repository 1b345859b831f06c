package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"go-stockbill/internal/model"
	"go-stockbill/internal/remote"
	"go-stockbill/internal/repository"
)

// DashboardService proxies the aggregate summary through the remote API,
// recomputing it from the snapshot store when the API is unreachable.
type DashboardService interface {
	Summary(ctx context.Context) (*remote.DashboardSummary, error)
}

type dashboardService struct {
	api      *remote.Client
	snapshot repository.SnapshotRepository
}

func NewDashboardService(api *remote.Client, snapshot repository.SnapshotRepository) DashboardService {
	return &dashboardService{api: api, snapshot: snapshot}
}

func (s *dashboardService) Summary(ctx context.Context) (*remote.DashboardSummary, error) {
	summary, err := s.api.Dashboard(ctx)
	if err == nil {
		return summary, nil
	}
	if !errors.Is(err, remote.ErrRemoteUnavailable) {
		return nil, err
	}
	return s.localSummary(err)
}

// localSummary rebuilds the dashboard aggregate from the snapshot
// collections. apiErr is returned when even the snapshot cannot be read.
func (s *dashboardService) localSummary(apiErr error) (*remote.DashboardSummary, error) {
	products, err := s.snapshot.GetProducts()
	if err != nil {
		return nil, apiErr
	}
	bills, err := s.snapshot.GetBills()
	if err != nil {
		return nil, apiErr
	}
	txs, err := s.snapshot.GetTransactions()
	if err != nil {
		return nil, apiErr
	}

	income := decimal.Zero
	for _, b := range bills {
		if b.Status == model.BillCompleted {
			income = income.Add(b.Total)
		}
	}
	sold := 0
	for _, tx := range txs {
		if tx.Type == model.TxOut {
			sold += tx.Quantity
		}
	}

	return &remote.DashboardSummary{
		TotalProducts:     len(products),
		TotalSoldProducts: sold,
		TotalBills:        len(bills),
		TotalIncome:       income,
	}, nil
}
