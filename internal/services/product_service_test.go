package services_test

import (
	"context"
	"testing"
	"time"

	"boutique/internal/database"
	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) CreateMany(ctx context.Context, products []models.Product) error {
	args := m.Called(products)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory(uuid.NewString())
	require.NoError(t, err)
	return db
}

func newProductService(t *testing.T) (*services.ProductService, *gorm.DB) {
	db := openDB(t)
	return services.NewProductService(
		repositories.NewGORMProductRepository(db),
		repositories.NewGORMUserRepository(db),
	), db
}

func ptr[T any](v T) *T { return &v }

func productInput(name string, qty int) services.ProductInput {
	return services.ProductInput{
		Name:        name,
		Description: "Hand finished " + name,
		Price:       120,
		Category:    "Accessories",
		Image:       "/uploads/" + name + ".jpg",
		Quantity:    qty,
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", Price: 10.0, Quantity: 100},
		{ID: "2", Name: "Product B", Price: 20.0, Quantity: 50},
	}
	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockUsers := new(MockUserRepository)
	service := services.NewProductService(mockRepo, mockUsers)

	product := &models.Product{
		ID:   "1",
		Name: "Product A",
		Reviews: []models.Review{
			{UserID: "u-1", Rating: 5, Comment: "lovely"},
			{UserID: "u-gone", Rating: 3},
		},
	}
	mockRepo.On("GetByID", "1").Return(product, nil).Once()
	mockUsers.On("GetByIDs", []string{"u-1", "u-gone"}).Return([]models.User{{ID: "u-1", Name: "Siti"}}, nil).Once()

	got, err := service.GetProductByID(context.Background(), "1")
	require.NoError(t, err)
	require.NotNil(t, got.Reviews[0].Author)
	assert.Equal(t, models.UserSummary{ID: "u-1", Name: "Siti"}, *got.Reviews[0].Author)
	assert.Nil(t, got.Reviews[1].Author)

	mockRepo.On("GetByID", "missing").Return(nil, repositories.ErrNotFound).Once()
	_, err = service.GetProductByID(context.Background(), "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)

	mockRepo.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestProductService_CreateProduct_DerivesInStock(t *testing.T) {
	service, _ := newProductService(t)
	ctx := context.Background()

	stocked, err := service.CreateProduct(ctx, productInput("scarf", 3))
	require.NoError(t, err)
	assert.True(t, stocked.InStock)
	assert.Equal(t, 5.0, stocked.Rating)
	assert.Equal(t, []string{}, stocked.Images)

	empty, err := service.CreateProduct(ctx, productInput("gloves", 0))
	require.NoError(t, err)
	assert.False(t, empty.InStock)

	stored, err := service.GetProductByID(ctx, empty.ID)
	require.NoError(t, err)
	assert.False(t, stored.InStock)
	assert.Equal(t, 0, stored.Quantity)
}

func TestProductService_UpdateProduct_InStockRule(t *testing.T) {
	service, _ := newProductService(t)
	ctx := context.Background()

	p, err := service.CreateProduct(ctx, productInput("bag", 2))
	require.NoError(t, err)

	// Writing quantity re-derives inStock.
	updated, err := service.UpdateProduct(ctx, p.ID, services.ProductPatch{Quantity: ptr(0)})
	require.NoError(t, err)
	assert.False(t, updated.InStock)

	// An explicit value wins over the quantity.
	updated, err = service.UpdateProduct(ctx, p.ID, services.ProductPatch{InStock: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.InStock)
	assert.Equal(t, 0, updated.Quantity)

	// The override survives unrelated edits.
	updated, err = service.UpdateProduct(ctx, p.ID, services.ProductPatch{Name: ptr("Evening bag")})
	require.NoError(t, err)
	assert.True(t, updated.InStock)

	stored, err := service.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, stored.InStock)
	assert.Equal(t, "Evening bag", stored.Name)

	// Until quantity is written again.
	updated, err = service.UpdateProduct(ctx, p.ID, services.ProductPatch{Quantity: ptr(0)})
	require.NoError(t, err)
	assert.False(t, updated.InStock)
}

func TestProductService_UpdateProduct_ExplicitFalse(t *testing.T) {
	service, _ := newProductService(t)
	ctx := context.Background()

	in := productInput("watch", 1)
	in.Featured = true
	p, err := service.CreateProduct(ctx, in)
	require.NoError(t, err)
	require.True(t, p.Featured)

	_, err = service.UpdateProduct(ctx, p.ID, services.ProductPatch{Featured: ptr(false), Price: ptr(0.0)})
	require.NoError(t, err)

	stored, err := service.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stored.Featured)
	assert.Equal(t, 0.0, stored.Price)
	assert.Equal(t, "watch", stored.Name)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	service, _ := newProductService(t)
	_, err := service.UpdateProduct(context.Background(), "missing", services.ProductPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	service, _ := newProductService(t)
	ctx := context.Background()

	p, err := service.CreateProduct(ctx, productInput("ring", 1))
	require.NoError(t, err)

	require.NoError(t, service.DeleteProduct(ctx, p.ID))
	assert.ErrorIs(t, service.DeleteProduct(ctx, p.ID), services.ErrNotFound)
}

func TestProductService_ListProducts(t *testing.T) {
	service, db := newProductService(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, p := range []models.Product{
		{Name: "Silk Scarf", Description: "soft", Category: "Accessories", Featured: true},
		{Name: "Gold Ring", Description: "18k gold band", Category: "Jewelry"},
		{Name: "Leather Tote", Description: "Italian leather", Category: "Luxury Bags", Featured: true},
	} {
		p.ID = uuid.NewString()
		p.Image = "x.jpg"
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&p).Error)
	}

	all, pg, err := service.ListProducts(ctx, services.ProductQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Leather Tote", all[0].Name, "newest first")
	assert.Equal(t, models.Pagination{Page: 1, Pages: 1, Total: 3}, pg)

	featured, _, err := service.ListProducts(ctx, services.ProductQuery{Featured: ptr(true)})
	require.NoError(t, err)
	assert.Len(t, featured, 2)

	notFeatured, _, err := service.ListProducts(ctx, services.ProductQuery{Featured: ptr(false)})
	require.NoError(t, err)
	require.Len(t, notFeatured, 1)
	assert.Equal(t, "Gold Ring", notFeatured[0].Name)

	byCategory, _, err := service.ListProducts(ctx, services.ProductQuery{Category: "Jewelry"})
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	// Search matches name or description, case-insensitively.
	searched, _, err := service.ListProducts(ctx, services.ProductQuery{Search: "GOLD"})
	require.NoError(t, err)
	assert.Len(t, searched, 1)
	searched, _, err = service.ListProducts(ctx, services.ProductQuery{Search: "italian", Featured: ptr(true)})
	require.NoError(t, err)
	assert.Len(t, searched, 1)

	page2, pg, err := service.ListProducts(ctx, services.ProductQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
	assert.Equal(t, models.Pagination{Page: 2, Pages: 2, Total: 3, HasPrev: true}, pg)
}

func TestProductService_SeedSampleProducts(t *testing.T) {
	service, _ := newProductService(t)
	ctx := context.Background()

	n, err := service.SeedSampleProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = service.SeedSampleProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "seeding is a no-op once products exist")

	all, err := service.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}
