package services

import (
	"context"
	"log/slog"

	"github.com/creditkeep/creditkeep/internal/apperrors"
	"github.com/creditkeep/creditkeep/internal/core/domain"
	portsrepo "github.com/creditkeep/creditkeep/internal/core/ports/repositories"
	portssvc "github.com/creditkeep/creditkeep/internal/core/ports/services"
	"github.com/creditkeep/creditkeep/internal/dto"
	"github.com/creditkeep/creditkeep/internal/middleware"
)

type productService struct {
	productRepo portsrepo.ProductRepository
}

// NewProductService creates the product catalog service.
func NewProductService(productRepo portsrepo.ProductRepository) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Price.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	product := domain.Product{
		Name:           req.Name,
		Price:          req.Price,
		Category:       req.Category,
		IsPrescription: req.IsPrescription,
	}
	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("Failed to create product", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}
	logger.Info("Product created", slog.Int64("product_id", created.ID))
	return created, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productRepo.ListProducts(ctx)
}

func (s *productService) UpdateProduct(ctx context.Context, productID int64, req dto.UpdateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Price.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	existing, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Price = req.Price
	existing.Category = req.Category
	existing.IsPrescription = req.IsPrescription

	if err := s.productRepo.UpdateProduct(ctx, *existing); err != nil {
		logger.Error("Failed to update product", slog.String("error", err.Error()), slog.Int64("product_id", productID))
		return nil, err
	}
	logger.Info("Product updated", slog.Int64("product_id", productID))
	return existing, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		logger.Error("Failed to delete product", slog.String("error", err.Error()), slog.Int64("product_id", productID))
		return err
	}
	logger.Info("Product deleted", slog.Int64("product_id", productID))
	return nil
}
