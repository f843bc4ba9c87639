package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/badhusha-dev/AurumReserve/internal/domain"
	"github.com/badhusha-dev/AurumReserve/internal/pricing"
)

type CatalogRepository interface {
	CreateItem(ctx context.Context, item domain.Item) error
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id string) (domain.Item, error)
	SetItemVisibility(ctx context.Context, id string, visible bool) error
	SetItemStock(ctx context.Context, id string, stock int) error
	DeleteItem(ctx context.Context, id string) error
}

type CatalogService struct {
	repo  CatalogRepository
	rates RateSource
}

func NewCatalogService(repo CatalogRepository, rates RateSource) *CatalogService {
	return &CatalogService{repo: repo, rates: rates}
}

type CreateItemInput struct {
	Name             string
	SKU              string
	Category         domain.Category
	WeightGrams      decimal.Decimal
	Purity           int
	MakingCharge     decimal.Decimal
	MakingChargeKind domain.MakingChargeKind
	StockCount       int
	IsVisible        bool
	ImageRef         string
}

func (s *CatalogService) CreateItem(ctx context.Context, in CreateItemInput) (domain.Item, error) {
	if in.Name == "" {
		return domain.Item{}, domain.ErrValidation
	}
	if !domain.ValidCategory(in.Category) {
		return domain.Item{}, domain.ErrValidation
	}
	if !in.WeightGrams.IsPositive() || in.MakingCharge.IsNegative() || in.StockCount < 0 {
		return domain.Item{}, domain.ErrValidation
	}
	if _, err := pricing.PurityMultiplier(in.Purity); err != nil {
		return domain.Item{}, err
	}
	kind := in.MakingChargeKind
	if kind == "" {
		kind = domain.MakingChargeFixed
	}
	if kind != domain.MakingChargeFixed && kind != domain.MakingChargePercentage {
		return domain.Item{}, domain.ErrValidation
	}

	sku := in.SKU
	if sku == "" {
		sku = newSKU(string(in.Category))
	}

	item := domain.Item{
		ID:               newID("itm"),
		SKU:              sku,
		Name:             in.Name,
		Category:         in.Category,
		WeightGrams:      in.WeightGrams,
		Purity:           in.Purity,
		MakingCharge:     in.MakingCharge,
		MakingChargeKind: kind,
		StockCount:       in.StockCount,
		IsVisible:        in.IsVisible,
		ImageRef:         in.ImageRef,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

// Listing is a storefront entry: an item quoted at the current rate.
type Listing struct {
	Item  domain.Item
	Price pricing.Breakdown
}

// Storefront lists visible, in-stock items quoted at the current shop rate.
func (s *CatalogService) Storefront(ctx context.Context) ([]Listing, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	rate := s.rates.Current()
	listings := make([]Listing, 0, len(items))
	for _, item := range items {
		if !item.IsVisible || item.StockCount <= 0 {
			continue
		}
		quote, err := pricing.QuoteItem(item, rate.Price24K)
		if err != nil {
			return nil, err
		}
		listings = append(listings, Listing{Item: item, Price: quote})
	}
	return listings, nil
}

// ListItems returns the full catalog, hidden and out-of-stock items included.
func (s *CatalogService) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *CatalogService) ToggleVisibility(ctx context.Context, itemID string) (domain.Item, error) {
	if itemID == "" {
		return domain.Item{}, domain.ErrValidation
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	item.IsVisible = !item.IsVisible
	if err := s.repo.SetItemVisibility(ctx, itemID, item.IsVisible); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (s *CatalogService) UpdateStock(ctx context.Context, itemID string, stock int) (domain.Item, error) {
	if itemID == "" || stock < 0 {
		return domain.Item{}, domain.ErrValidation
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if err := s.repo.SetItemStock(ctx, itemID, stock); err != nil {
		return domain.Item{}, err
	}
	item.StockCount = stock
	return item, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, itemID string) error {
	if itemID == "" {
		return domain.ErrValidation
	}
	return s.repo.DeleteItem(ctx, itemID)
}

// Valuation totals the retail value of everything on the shelf at the
// current rate: quoted total times units in stock, summed over the catalog.
func (s *CatalogService) Valuation(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	rate := s.rates.Current()
	total := decimal.Zero
	for _, item := range items {
		quote, err := pricing.QuoteItem(item, rate.Price24K)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total = total.Add(quote.Total.Mul(decimal.NewFromInt(int64(item.StockCount))))
	}
	return total.Round(2), nil
}
