package comparison

import (
	"context"
	"errors"
	"testing"

	"smartMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComparisonEngine struct {
	productOutcome domain.ComparisonOutcome
	storeInsights  map[string]any
	err            error

	gotCriteria       []string
	gotRecommendation bool
}

func (f *fakeComparisonEngine) CompareProducts(ctx context.Context, products []domain.Product, criteria []string, includeRecommendation bool) (domain.ComparisonOutcome, error) {
	f.gotCriteria = criteria
	f.gotRecommendation = includeRecommendation
	return f.productOutcome, f.err
}

func (f *fakeComparisonEngine) CompareStores(ctx context.Context, stores []domain.Store, comparisonType string, categoryID *uint64) (map[string]any, error) {
	return f.storeInsights, f.err
}

type fakeComparisonRepo struct {
	productComparisons []domain.ProductComparison
	storeComparisons   []domain.StoreComparison
}

func (f *fakeComparisonRepo) CreateProductComparison(ctx context.Context, comparison *domain.ProductComparison) error {
	comparison.ID = uint64(len(f.productComparisons) + 1)
	f.productComparisons = append(f.productComparisons, *comparison)
	return nil
}

func (f *fakeComparisonRepo) CreateStoreComparison(ctx context.Context, comparison *domain.StoreComparison) error {
	comparison.ID = uint64(len(f.storeComparisons) + 1)
	f.storeComparisons = append(f.storeComparisons, *comparison)
	return nil
}

func (f *fakeComparisonRepo) FindProductComparisonsByUser(ctx context.Context, userID uint, limit int) ([]domain.ProductComparison, error) {
	return f.productComparisons, nil
}

func (f *fakeComparisonRepo) FindStoreComparisonsByUser(ctx context.Context, userID uint, limit int) ([]domain.StoreComparison, error) {
	return f.storeComparisons, nil
}

type fakeProductLookup struct {
	products []domain.Product
	err      error
}

func (f *fakeProductLookup) FindActiveByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	return f.products, f.err
}

type fakeStoreLookup struct {
	stores []domain.Store
	err    error
}

func (f *fakeStoreLookup) FindActiveByIDs(ctx context.Context, ids []uint64) ([]domain.Store, error) {
	return f.stores, f.err
}

func TestCompareProducts(t *testing.T) {
	engine := &fakeComparisonEngine{productOutcome: domain.ComparisonOutcome{
		Criteria: []string{"price", "rating"},
		Analysis: map[string]any{"winner": "Product A"},
	}}
	repo := &fakeComparisonRepo{}
	products := &fakeProductLookup{products: []domain.Product{{ID: 1}, {ID: 2}}}

	svc := NewComparisonService(engine, repo, products, &fakeStoreLookup{})

	userID := uint(3)
	comparison, err := svc.CompareProducts(context.Background(), &userID, []uint64{1, 2}, []string{"price"}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"price"}, engine.gotCriteria)
	assert.True(t, engine.gotRecommendation)

	// exactly one persisted row with exactly the submitted products
	require.Len(t, repo.productComparisons, 1)
	saved := repo.productComparisons[0]
	require.NotNil(t, saved.UserID)
	assert.Equal(t, userID, *saved.UserID)
	assert.Len(t, saved.Products, 2)
	assert.Equal(t, "Product A", comparison.AIAnalysis["winner"])
}

func TestCompareProductsMissingProduct(t *testing.T) {
	// lookup returns fewer rows than requested ids
	products := &fakeProductLookup{products: []domain.Product{{ID: 1}}}
	repo := &fakeComparisonRepo{}

	svc := NewComparisonService(&fakeComparisonEngine{}, repo, products, &fakeStoreLookup{})

	_, err := svc.CompareProducts(context.Background(), nil, []uint64{1, 999}, nil, false)
	require.Error(t, err)
	assert.Equal(t, "one or more products not found or inactive", err.Error())
	assert.Empty(t, repo.productComparisons)
}

func TestCompareProductsEngineFailure(t *testing.T) {
	engine := &fakeComparisonEngine{err: errors.New("engine timeout")}
	products := &fakeProductLookup{products: []domain.Product{{ID: 1}, {ID: 2}}}
	repo := &fakeComparisonRepo{}

	svc := NewComparisonService(engine, repo, products, &fakeStoreLookup{})

	_, err := svc.CompareProducts(context.Background(), nil, []uint64{1, 2}, nil, true)
	require.Error(t, err)
	assert.Empty(t, repo.productComparisons)
}

func TestCompareStores(t *testing.T) {
	engine := &fakeComparisonEngine{storeInsights: map[string]any{"best_prices": "Store B"}}
	repo := &fakeComparisonRepo{}
	stores := &fakeStoreLookup{stores: []domain.Store{{ID: 1}, {ID: 2}}}

	svc := NewComparisonService(engine, repo, &fakeProductLookup{}, stores)

	comparison, err := svc.CompareStores(context.Background(), nil, []uint64{1, 2}, "overall", nil)
	require.NoError(t, err)

	require.Len(t, repo.storeComparisons, 1)
	assert.Equal(t, "overall", comparison.ComparisonType)
	assert.Equal(t, "Store B", comparison.AIInsights["best_prices"])
	assert.Nil(t, comparison.UserID)
}

func TestCompareStoresRequiresType(t *testing.T) {
	svc := NewComparisonService(&fakeComparisonEngine{}, &fakeComparisonRepo{}, &fakeProductLookup{}, &fakeStoreLookup{})

	_, err := svc.CompareStores(context.Background(), nil, []uint64{1, 2}, "", nil)
	require.Error(t, err)
	assert.Equal(t, "comparison type is required", err.Error())
}

func TestCompareStoresMissingStore(t *testing.T) {
	stores := &fakeStoreLookup{stores: []domain.Store{{ID: 1}}}
	svc := NewComparisonService(&fakeComparisonEngine{}, &fakeComparisonRepo{}, &fakeProductLookup{}, stores)

	_, err := svc.CompareStores(context.Background(), nil, []uint64{1, 2}, "overall", nil)
	require.Error(t, err)
	assert.Equal(t, "one or more stores not found or inactive", err.Error())
}

func TestGetHistory(t *testing.T) {
	userID := uint(3)
	repo := &fakeComparisonRepo{
		productComparisons: []domain.ProductComparison{{ID: 1, UserID: &userID}},
		storeComparisons:   []domain.StoreComparison{{ID: 2, UserID: &userID}},
	}

	svc := NewComparisonService(&fakeComparisonEngine{}, repo, &fakeProductLookup{}, &fakeStoreLookup{})

	history, err := svc.GetHistory(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, history.ProductComparisons, 1)
	assert.Len(t, history.StoreComparisons, 1)
}
