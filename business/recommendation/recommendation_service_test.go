package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	general      []domain.ScoredProduct
	personalized []domain.ScoredProduct
	realtime     map[string]any
	err          error
	calls        int
}

func (f *fakeEngine) GeneralRecommendations(ctx context.Context, limit int, categoryID *uint64, excludeProducts []uint64) ([]domain.ScoredProduct, error) {
	f.calls++
	return f.general, f.err
}

func (f *fakeEngine) PersonalizedRecommendations(ctx context.Context, userID uint, limit int, categoryID *uint64, excludeProducts []uint64) ([]domain.ScoredProduct, error) {
	f.calls++
	return f.personalized, f.err
}

func (f *fakeEngine) RealtimePersonalization(ctx context.Context, userID uint, sessionID string) (map[string]any, error) {
	f.calls++
	return f.realtime, f.err
}

type fakeRecoRepo struct {
	sessions []domain.RecommendationSession
	results  []domain.RecommendationResult
	found    domain.RecommendationResult
	findErr  error
	updated  *domain.RecommendationResult
}

func (f *fakeRecoRepo) CreateSession(ctx context.Context, session *domain.RecommendationSession) error {
	session.ID = uint(len(f.sessions) + 1)
	f.sessions = append(f.sessions, *session)
	return nil
}

func (f *fakeRecoRepo) CreateResults(ctx context.Context, results []domain.RecommendationResult) error {
	f.results = append(f.results, results...)
	return nil
}

func (f *fakeRecoRepo) FindResult(ctx context.Context, sessionID uint, productID uint64) (domain.RecommendationResult, error) {
	return f.found, f.findErr
}

func (f *fakeRecoRepo) UpdateResult(ctx context.Context, result *domain.RecommendationResult) error {
	f.updated = result
	return nil
}

type fakeCache struct {
	entries map[string]*domain.RecommendationResponse
	ttls    map[string]time.Duration
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: map[string]*domain.RecommendationResponse{},
		ttls:    map[string]time.Duration{},
	}
}

func (f *fakeCache) Get(ctx context.Context, key string) (*domain.RecommendationResponse, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.entries[key], nil
}

func (f *fakeCache) Set(ctx context.Context, key string, response *domain.RecommendationResponse, ttl time.Duration) error {
	f.entries[key] = response
	f.ttls[key] = ttl
	return nil
}

func scored(ids ...uint64) []domain.ScoredProduct {
	out := make([]domain.ScoredProduct, 0, len(ids))
	for i, id := range ids {
		out = append(out, domain.ScoredProduct{
			ProductID: id,
			Score:     1.0 - float64(i)*0.1,
			Algorithm: "popularity",
		})
	}
	return out
}

func TestGeneralRecommendationsCacheMiss(t *testing.T) {
	engine := &fakeEngine{general: scored(11, 22, 33)}
	repo := &fakeRecoRepo{}
	cache := newFakeCache()

	svc := NewRecommendationService(engine, repo, cache)

	resp, cacheHit, err := svc.GeneralRecommendations(context.Background(), nil, Request{Limit: 3})
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, domain.RecommendationTypeGeneral, resp.AlgorithmInfo.Type)

	// one session, one result row per recommendation
	require.Len(t, repo.sessions, 1)
	require.Len(t, repo.results, 3)
	assert.Nil(t, repo.sessions[0].UserID)
	assert.NotEmpty(t, repo.sessions[0].SessionID)

	// positions are 1-based and follow engine order
	for i, r := range repo.results {
		assert.Equal(t, i+1, r.Position)
		assert.Equal(t, engine.general[i].ProductID, r.ProductID)
		assert.Equal(t, resp.SessionID, r.SessionID)
	}

	assert.Equal(t, GeneralCacheTTL, cache.ttls["recommendations:general:3"])
}

func TestGeneralRecommendationsCacheHit(t *testing.T) {
	engine := &fakeEngine{general: scored(11)}
	repo := &fakeRecoRepo{}
	cache := newFakeCache()
	stored := &domain.RecommendationResponse{
		SessionID:       42,
		Recommendations: scored(7, 8),
		TotalCount:      2,
		AlgorithmInfo:   algorithmInfoGeneral(),
	}
	cache.entries["recommendations:general:10"] = stored

	svc := NewRecommendationService(engine, repo, cache)

	resp, cacheHit, err := svc.GeneralRecommendations(context.Background(), nil, Request{Limit: 10})
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, stored, resp)

	// a hit must not touch the engine or create new rows
	assert.Zero(t, engine.calls)
	assert.Empty(t, repo.sessions)
	assert.Empty(t, repo.results)
}

func TestGeneralRecommendationsCacheFailureDegrades(t *testing.T) {
	engine := &fakeEngine{general: scored(5)}
	repo := &fakeRecoRepo{}
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")

	svc := NewRecommendationService(engine, repo, cache)

	resp, cacheHit, err := svc.GeneralRecommendations(context.Background(), nil, Request{Limit: 1})
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 1, resp.TotalCount)
}

func TestPersonalizedRecommendations(t *testing.T) {
	engine := &fakeEngine{personalized: scored(1, 2)}
	repo := &fakeRecoRepo{}
	cache := newFakeCache()

	svc := NewRecommendationService(engine, repo, cache)

	userID := uint(9)
	resp, cacheHit, err := svc.PersonalizedRecommendations(context.Background(), userID, Request{Limit: 2, SessionID: "client-abc"})
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, domain.RecommendationTypePersonalized, resp.AlgorithmInfo.Type)

	require.Len(t, repo.sessions, 1)
	require.NotNil(t, repo.sessions[0].UserID)
	assert.Equal(t, userID, *repo.sessions[0].UserID)
	assert.Equal(t, "client-abc", repo.sessions[0].SessionID)

	assert.Equal(t, PersonalizedCacheTTL, cache.ttls["recommendations:personalized:9:2"])
}

func TestPersonalizedRecommendationsRequiresUser(t *testing.T) {
	svc := NewRecommendationService(&fakeEngine{}, &fakeRecoRepo{}, newFakeCache())

	_, _, err := svc.PersonalizedRecommendations(context.Background(), 0, Request{Limit: 5})
	require.Error(t, err)
	assert.Equal(t, "user is required", err.Error())
}

func TestTrackInteractionClick(t *testing.T) {
	repo := &fakeRecoRepo{found: domain.RecommendationResult{SessionID: 1, ProductID: 10}}
	svc := NewRecommendationService(&fakeEngine{}, repo, newFakeCache())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.timeSource = func() time.Time { return now }

	err := svc.TrackInteraction(context.Background(), 1, 10, ActionClick, nil)
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.True(t, repo.updated.WasClicked)
	require.NotNil(t, repo.updated.ClickTimestamp)
	assert.Equal(t, now, *repo.updated.ClickTimestamp)
	assert.False(t, repo.updated.WasAddedToCart)
	assert.False(t, repo.updated.WasPurchased)
}

func TestTrackInteractionPurchase(t *testing.T) {
	repo := &fakeRecoRepo{found: domain.RecommendationResult{SessionID: 1, ProductID: 10}}
	svc := NewRecommendationService(&fakeEngine{}, repo, newFakeCache())

	err := svc.TrackInteraction(context.Background(), 1, 10, ActionPurchase, nil)
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.True(t, repo.updated.WasPurchased)
	assert.Nil(t, repo.updated.ClickTimestamp)
}

func TestTrackInteractionUnknownActionIsNoOp(t *testing.T) {
	repo := &fakeRecoRepo{found: domain.RecommendationResult{SessionID: 1, ProductID: 10}}
	svc := NewRecommendationService(&fakeEngine{}, repo, newFakeCache())

	err := svc.TrackInteraction(context.Background(), 1, 10, "hover", nil)
	require.NoError(t, err)
	assert.Nil(t, repo.updated)
}

func TestTrackInteractionResultNotFound(t *testing.T) {
	repo := &fakeRecoRepo{findErr: errors.New("recommendation not found")}
	svc := NewRecommendationService(&fakeEngine{}, repo, newFakeCache())

	err := svc.TrackInteraction(context.Background(), 99, 10, ActionClick, nil)
	require.Error(t, err)
	assert.Equal(t, "recommendation not found", err.Error())
}

func TestRealtimePersonalizationRequiresSession(t *testing.T) {
	svc := NewRecommendationService(&fakeEngine{}, &fakeRecoRepo{}, newFakeCache())

	_, err := svc.RealtimePersonalization(context.Background(), 1, "")
	require.Error(t, err)
	assert.Equal(t, "session_id is required", err.Error())
}

func TestRealtimePersonalizationPassthrough(t *testing.T) {
	engine := &fakeEngine{realtime: map[string]any{"boost": []any{"electronics"}}}
	svc := NewRecommendationService(engine, &fakeRecoRepo{}, newFakeCache())

	data, err := svc.RealtimePersonalization(context.Background(), 1, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, engine.realtime, data)
}
