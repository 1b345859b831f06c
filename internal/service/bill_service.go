package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go-stockbill/internal/model"
	"go-stockbill/internal/remote"
	"go-stockbill/internal/repository"
	"go-stockbill/pkg/validator"
)

// BillService fronts the remote billing API. Created bills are mirrored into
// the snapshot store, best effort, so reporting keeps working when the API
// later goes away.
type BillService interface {
	Bills(ctx context.Context, opts remote.ListOptions) (*remote.BillList, error)
	Bill(ctx context.Context, id string) (*model.Bill, error)
	Create(ctx context.Context, payload *model.BillCreate) (*model.Bill, error)
}

type billService struct {
	api      *remote.Client
	snapshot repository.SnapshotRepository
}

func NewBillService(api *remote.Client, snapshot repository.SnapshotRepository) BillService {
	return &billService{api: api, snapshot: snapshot}
}

func (s *billService) Bills(ctx context.Context, opts remote.ListOptions) (*remote.BillList, error) {
	list, err := s.api.ListBills(ctx, opts)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, remote.ErrRemoteUnavailable) {
		return nil, err
	}

	bills, serr := s.snapshot.GetBills()
	if serr != nil {
		return nil, err
	}
	filtered := make([]model.Bill, 0, len(bills))
	for _, b := range bills {
		if opts.Status != "" && string(b.Status) != opts.Status {
			continue
		}
		filtered = append(filtered, b)
	}
	return &remote.BillList{Items: filtered, Total: len(filtered)}, nil
}

func (s *billService) Bill(ctx context.Context, id string) (*model.Bill, error) {
	return s.api.GetBill(ctx, id)
}

func (s *billService) Create(ctx context.Context, payload *model.BillCreate) (*model.Bill, error) {
	if errs := validator.ValidateStruct(payload); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.FirstError(errs))
	}

	bill, err := s.api.CreateBill(ctx, payload)
	if err != nil {
		return nil, err
	}

	if bills, serr := s.snapshot.GetBills(); serr == nil {
		if serr := s.snapshot.SetBills(append(bills, *bill)); serr != nil {
			log.Printf("warning: failed to mirror bill %s into snapshot: %v", bill.ID, serr)
		}
	}
	return bill, nil
}
