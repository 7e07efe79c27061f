package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/catalog"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles admin product management
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	stock        catalog.StockLedger
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	stock catalog.StockLedger,
	logger *zap.Logger,
) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		stock:        stock,
		logger:       logger,
	}
}

// List lists products including inactive ones
func (s *ProductService) List(ctx context.Context, filter AdminProductFilter) (*shared.Paginated[ProductResponse], error) {
	query := catalog.ProductQuery{
		CategorySlug: filter.Category,
		Search:       filter.Search,
		Sort:         catalog.ParseProductSort(filter.Sort),
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}.Normalize()

	products, total, err := s.productRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(ToProductResponses(products), total, query.Page, query.PageSize)
	return &result, nil
}

// GetByID retrieves a product by ID regardless of its active flag
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.CategoryID, req.Name, req.Price, req.StockQuantity)
	if err != nil {
		return nil, err
	}
	if req.Slug != "" {
		if err := product.SetSlug(req.Slug); err != nil {
			return nil, err
		}
	}
	if err := s.ensureSlugFree(ctx, product.Slug, uuid.Nil); err != nil {
		return nil, err
	}
	if err := product.SetPrices(req.Price, req.DiscountedPrice); err != nil {
		return nil, err
	}
	if err := product.Update(product.Name, req.Description, req.ImageURL); err != nil {
		return nil, err
	}
	product.SetHighlights(req.Featured, req.Bestseller)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("slug", product.Slug),
	)
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update applies the non-nil fields of req to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(*req.CategoryID)
		product.Category = nil
	}

	if req.Name != nil || req.Description != nil || req.ImageURL != nil {
		name, description, imageURL := product.Name, product.Description, product.ImageURL
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.ImageURL != nil {
			imageURL = *req.ImageURL
		}
		if err := product.Update(name, description, imageURL); err != nil {
			return nil, err
		}
	}

	if req.Slug != nil {
		if err := product.SetSlug(*req.Slug); err != nil {
			return nil, err
		}
		if err := s.ensureSlugFree(ctx, product.Slug, product.ID); err != nil {
			return nil, err
		}
	}

	if req.Price != nil || req.DiscountedPrice != nil || req.ClearDiscount {
		price, discounted := product.Price, product.DiscountedPrice
		if req.Price != nil {
			price = *req.Price
		}
		if req.DiscountedPrice != nil {
			discounted = req.DiscountedPrice
		}
		if req.ClearDiscount {
			discounted = nil
		}
		if err := product.SetPrices(price, discounted); err != nil {
			return nil, err
		}
	}

	if req.StockQuantity != nil {
		if err := product.SetStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}

	if req.Featured != nil || req.Bestseller != nil {
		featured, bestseller := product.Featured, product.Bestseller
		if req.Featured != nil {
			featured = *req.Featured
		}
		if req.Bestseller != nil {
			bestseller = *req.Bestseller
		}
		product.SetHighlights(featured, bestseller)
	}

	if req.Active != nil {
		if *req.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if req.StockQuantity != nil {
		// explicit stock override
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
	} else {
		if err := s.productRepo.UpdateDetails(ctx, product); err != nil {
			return nil, err
		}
		if product, err = s.productRepo.FindByID(ctx, id); err != nil {
			return nil, err
		}
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Restock adds units to a product's stock through the stock ledger, so it
// never overwrites a concurrent checkout's decrement
func (s *ProductService) Restock(ctx context.Context, id uuid.UUID, req RestockRequest) (*ProductResponse, error) {
	if err := s.stock.Release(ctx, id, req.Quantity); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("product restocked",
		zap.String("product_id", id.String()),
		zap.Int("quantity", req.Quantity),
		zap.Int("stock", product.StockQuantity),
	)
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete deletes a product. Cart lines and reviews go with it; order lines
// keep their snapshot.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *ProductService) ensureSlugFree(ctx context.Context, slug string, excludeID uuid.UUID) error {
	exists, err := s.productRepo.ExistsBySlug(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "A product with this slug already exists")
	}
	return nil
}
