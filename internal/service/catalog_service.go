package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-stockbill/internal/model"
	"go-stockbill/internal/remote"
	"go-stockbill/internal/repository"
	"go-stockbill/pkg/validator"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrValidation      = errors.New("validation failed")
)

// CatalogService fronts the remote product API, degrading to the local
// snapshot store when the API is unreachable. Writes always go to the API;
// the snapshot is never the system of record while the API answers.
type CatalogService interface {
	Products(ctx context.Context, opts remote.ListOptions) (*remote.ProductList, error)
	FindProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, p *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	LowStock(ctx context.Context) ([]model.Product, error)
	Expired(ctx context.Context) ([]model.Product, error)
}

type catalogService struct {
	api      *remote.Client
	snapshot repository.SnapshotRepository
}

func NewCatalogService(api *remote.Client, snapshot repository.SnapshotRepository) CatalogService {
	return &catalogService{api: api, snapshot: snapshot}
}

func (s *catalogService) Products(ctx context.Context, opts remote.ListOptions) (*remote.ProductList, error) {
	list, err := s.api.ListProducts(ctx, opts)
	if err == nil {
		return list, nil
	}
	if !errors.Is(err, remote.ErrRemoteUnavailable) {
		return nil, err
	}

	// Degraded mode: filter and paginate the snapshot catalog locally.
	products, serr := s.snapshot.GetProducts()
	if serr != nil {
		return nil, err
	}
	filtered := filterProducts(products, opts)
	return &remote.ProductList{
		Items: paginate(filtered, opts.Page, opts.Limit),
		Total: len(filtered),
	}, nil
}

func (s *catalogService) FindProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.api.GetProduct(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, remote.ErrRemoteUnavailable) {
		return nil, err
	}

	products, serr := s.snapshot.GetProducts()
	if serr != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *catalogService) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if p.ID == "" {
		p.ID = s.snapshot.GenerateID()
	}
	if errs := validator.ValidateStruct(p); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.FirstError(errs))
	}
	return s.api.CreateProduct(ctx, p)
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, p *model.Product) (*model.Product, error) {
	if p.ID == "" {
		p.ID = id
	}
	if errs := validator.ValidateStruct(p); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.FirstError(errs))
	}
	return s.api.UpdateProduct(ctx, id, p)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.api.DeleteProduct(ctx, id)
}

func (s *catalogService) LowStock(ctx context.Context) ([]model.Product, error) {
	return s.api.LowStockProducts(ctx)
}

func (s *catalogService) Expired(ctx context.Context) ([]model.Product, error) {
	return s.api.ExpiredProducts(ctx)
}

func filterProducts(products []model.Product, opts remote.ListOptions) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if opts.Status != "" && string(p.Status) != opts.Status {
			continue
		}
		if opts.Type != "" && p.Type != opts.Type {
			continue
		}
		if opts.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(opts.Search)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func paginate(products []model.Product, page, limit int) []model.Product {
	if limit <= 0 {
		return products
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(products) {
		return []model.Product{}
	}
	end := start + limit
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
