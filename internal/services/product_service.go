package services

import (
	"context"
	"fmt"
	"time"

	"boutique/internal/models"
	"boutique/internal/repositories"
)

// Catalog listing defaults.
const (
	DefaultProductPageSize = 12
	DefaultOrderPageSize   = 10
)

// ProductQuery holds the public listing parameters.
type ProductQuery struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Featured *bool
}

// ProductInput is the admin payload for creating a product.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=1000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required,category"`
	Image       string   `json:"image" validate:"required"`
	Images      []string `json:"images"`
	Quantity    int      `json:"quantity" validate:"gte=0"`
	Featured    bool     `json:"featured"`
	Sizes       []string `json:"sizes" validate:"dive,size"`
	Colors      []string `json:"colors"`
	Rating      *float64 `json:"rating" validate:"omitnil,gte=1,lte=5"`
}

// ProductPatch is the admin payload for updating a product. Nil fields keep
// their stored value; non-nil fields overwrite it, false and zero included.
type ProductPatch struct {
	Name        *string   `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string   `json:"description" validate:"omitnil,min=1,max=1000"`
	Price       *float64  `json:"price" validate:"omitnil,gte=0"`
	Category    *string   `json:"category" validate:"omitnil,category"`
	Image       *string   `json:"image" validate:"omitnil,min=1"`
	Images      *[]string `json:"images"`
	Quantity    *int      `json:"quantity" validate:"omitnil,gte=0"`
	InStock     *bool     `json:"inStock"`
	Featured    *bool     `json:"featured"`
	Sizes       *[]string `json:"sizes" validate:"omitnil,dive,size"`
	Colors      *[]string `json:"colors"`
	Rating      *float64  `json:"rating" validate:"omitnil,gte=1,lte=5"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	userRepo repositories.UserRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, userRepo repositories.UserRepository) *ProductService {
	return &ProductService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// ListProducts returns one page of the public catalog.
func (s *ProductService) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, models.Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultProductPageSize
	}
	products, total, err := s.repo.List(ctx, repositories.ProductFilter{
		Category: q.Category,
		Featured: q.Featured,
		Search:   q.Search,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, models.NewPagination(q.Page, q.Limit, total), nil
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProductByID retrieves a product and expands the authors of its reviews.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(product.Reviews) == 0 || s.userRepo == nil {
		return product, nil
	}

	ids := make([]string, 0, len(product.Reviews))
	for _, r := range product.Reviews {
		if r.UserID != "" {
			ids = append(ids, r.UserID)
		}
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	for i, r := range product.Reviews {
		if name, ok := names[r.UserID]; ok {
			product.Reviews[i].Author = &models.UserSummary{ID: r.UserID, Name: name}
		}
	}
	return product, nil
}

// CreateProduct stores a new product. InStock follows Quantity.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	rating := 5.0
	if in.Rating != nil {
		rating = *in.Rating
	}
	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
		Images:      nonNil(in.Images),
		Sizes:       nonNil(in.Sizes),
		Colors:      nonNil(in.Colors),
		Quantity:    in.Quantity,
		InStock:     in.Quantity > 0,
		Featured:    in.Featured,
		Rating:      rating,
		Reviews:     []models.Review{},
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct merges patch into the stored product. An explicit InStock
// wins; otherwise writing Quantity re-derives it; otherwise it is kept.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.Images != nil {
		product.Images = nonNil(*patch.Images)
	}
	if patch.Quantity != nil {
		product.Quantity = *patch.Quantity
	}
	switch {
	case patch.InStock != nil:
		product.InStock = *patch.InStock
	case patch.Quantity != nil:
		product.InStock = product.Quantity > 0
	}
	if patch.Featured != nil {
		product.Featured = *patch.Featured
	}
	if patch.Sizes != nil {
		product.Sizes = nonNil(*patch.Sizes)
	}
	if patch.Colors != nil {
		product.Colors = nonNil(*patch.Colors)
	}
	if patch.Rating != nil {
		product.Rating = *patch.Rating
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SeedSampleProducts fills an empty catalog with the sample collection. It
// does nothing when any product exists and reports how many were added.
func (s *ProductService) SeedSampleProducts(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	products := sampleProducts(time.Now())
	if err := s.repo.CreateMany(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}
	return len(products), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
