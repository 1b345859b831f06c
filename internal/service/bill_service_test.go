package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"go-stockbill/internal/model"
	"go-stockbill/internal/remote"
	"go-stockbill/internal/repository"
	"go-stockbill/pkg/kvstore"
)

func TestCreateBillMirrorsIntoSnapshot(t *testing.T) {
	var received model.BillCreate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/bills" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Bill{
			ID:         "srv-1",
			BillNumber: "BIL260828001",
			Status:     received.Status,
			CreatedBy:  received.CreatedBy,
			Total:      decimal.RequireFromString("214"),
		})
	}))
	defer srv.Close()

	snapshot := repository.NewSnapshotRepo(kvstore.NewMemory())
	bills := NewBillService(remote.NewClient(srv.URL), snapshot)

	payload := &model.BillCreate{
		Items:     []model.BillCreateItem{{ProductID: "P1", Quantity: 2}},
		Status:    model.BillCompleted,
		CreatedBy: "1",
	}
	bill, err := bills.Create(context.Background(), payload)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if bill.ID != "srv-1" {
		t.Errorf("bill = %+v", bill)
	}

	// The payload excludes computed totals; only items/status/createdBy travel.
	if len(received.Items) != 1 || received.Items[0].ProductID != "P1" || received.Items[0].Quantity != 2 {
		t.Errorf("wire payload items = %+v", received.Items)
	}
	if received.Status != model.BillCompleted || received.CreatedBy != "1" {
		t.Errorf("wire payload = %+v", received)
	}

	// The accepted bill is mirrored for degraded-mode reporting.
	stored, err := snapshot.GetBills()
	if err != nil {
		t.Fatalf("GetBills: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != "srv-1" {
		t.Errorf("snapshot bills = %+v", stored)
	}
}

func TestCreateBillRejectsInvalidPayload(t *testing.T) {
	snapshot := repository.NewSnapshotRepo(kvstore.NewMemory())
	bills := NewBillService(deadClient(t), snapshot)

	_, err := bills.Create(context.Background(), &model.BillCreate{Status: model.BillCompleted, CreatedBy: "1"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if errors.Is(err, remote.ErrRemoteUnavailable) {
		t.Errorf("invalid payload reached the API: %v", err)
	}
}

func TestBillsFallsBackToSnapshot(t *testing.T) {
	snapshot := repository.NewSnapshotRepo(kvstore.NewMemory())
	if err := snapshot.SetBills([]model.Bill{
		{ID: "b1", Status: model.BillCompleted},
		{ID: "b2", Status: model.BillDraft},
	}); err != nil {
		t.Fatalf("SetBills: %v", err)
	}

	bills := NewBillService(deadClient(t), snapshot)
	list, err := bills.Bills(context.Background(), remote.ListOptions{Status: "completed"})
	if err != nil {
		t.Fatalf("Bills: %v", err)
	}
	if list.Total != 1 || list.Items[0].ID != "b1" {
		t.Errorf("fallback list = %+v", list)
	}
}

func TestRemoteFailureLeavesStateUntouched(t *testing.T) {
	snapshot := repository.NewSnapshotRepo(kvstore.NewMemory())
	bills := NewBillService(deadClient(t), snapshot)

	payload := &model.BillCreate{
		Items:     []model.BillCreateItem{{ProductID: "P1", Quantity: 1}},
		Status:    model.BillCompleted,
		CreatedBy: "1",
	}
	if _, err := bills.Create(context.Background(), payload); !errors.Is(err, remote.ErrRemoteUnavailable) {
		t.Fatalf("err = %v, want ErrRemoteUnavailable", err)
	}

	stored, err := snapshot.GetBills()
	if err != nil {
		t.Fatalf("GetBills: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("failed create mutated the snapshot: %+v", stored)
	}
}
