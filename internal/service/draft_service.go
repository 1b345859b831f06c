package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"go-stockbill/internal/model"
)

var ErrDraftNotFound = errors.New("draft not found")

// ProductFinder is the slice of the catalog the aggregator needs: current
// stock and price for one product. CatalogService satisfies it.
type ProductFinder interface {
	FindProduct(ctx context.Context, id string) (*model.Product, error)
}

// DraftService keeps the in-memory draft bills being assembled. Drafts are
// explicit state addressed by ID, not ambient globals; a failed mutation
// leaves the draft exactly as it was. Returned drafts are value snapshots,
// safe to read while other requests keep mutating the same draft.
type DraftService interface {
	Open() (string, *model.Draft)
	Get(id string) (*model.Draft, error)
	AddItem(ctx context.Context, draftID, productID string, quantity int) (*model.Draft, error)
	UpdateQuantity(ctx context.Context, draftID, productID string, quantity int) (*model.Draft, error)
	RemoveItem(draftID, productID string) (*model.Draft, error)
	Submit(ctx context.Context, draftID string, status model.BillStatus, createdBy string) (*model.Bill, error)
	Discard(draftID string)
}

type draftService struct {
	products ProductFinder
	bills    BillService

	mu     sync.Mutex
	drafts map[string]*model.Draft
}

func NewDraftService(products ProductFinder, bills BillService) DraftService {
	return &draftService{
		products: products,
		bills:    bills,
		drafts:   make(map[string]*model.Draft),
	}
}

func (s *draftService) Open() (string, *model.Draft) {
	id := uuid.New().String()
	draft := model.NewDraft()

	s.mu.Lock()
	s.drafts[id] = draft
	s.mu.Unlock()
	return id, draft.Snapshot()
}

func (s *draftService) Get(id string) (*model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return draft.Snapshot(), nil
}

func (s *draftService) AddItem(ctx context.Context, draftID, productID string, quantity int) (*model.Draft, error) {
	product, err := s.products.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if err := draft.AddItem(product, quantity); err != nil {
		return nil, err
	}
	return draft.Snapshot(), nil
}

func (s *draftService) UpdateQuantity(ctx context.Context, draftID, productID string, quantity int) (*model.Draft, error) {
	// Zero or less means removal, which needs no catalog lookup; the line
	// must still go away even when the product has since been deleted.
	if quantity <= 0 {
		return s.RemoveItem(draftID, productID)
	}

	product, err := s.products.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if err := draft.UpdateQuantity(product, quantity); err != nil {
		return nil, err
	}
	return draft.Snapshot(), nil
}

func (s *draftService) RemoveItem(draftID, productID string) (*model.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	draft.RemoveItem(productID)
	return draft.Snapshot(), nil
}

// Submit converts the draft into a creation payload and hands it to the
// billing API. The draft is discarded only after the API accepts it; on
// failure it stays open for the user to retry.
func (s *draftService) Submit(ctx context.Context, draftID string, status model.BillStatus, createdBy string) (*model.Bill, error) {
	// The payload is built under the lock; only the remote call runs outside
	// it so a concurrent mutation cannot race the item walk.
	s.mu.Lock()
	draft, ok := s.drafts[draftID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrDraftNotFound
	}
	payload, err := draft.ToCreate(status, createdBy)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	bill, err := s.bills.Create(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.drafts, draftID)
	s.mu.Unlock()
	return bill, nil
}

func (s *draftService) Discard(draftID string) {
	s.mu.Lock()
	delete(s.drafts, draftID)
	s.mu.Unlock()
}
