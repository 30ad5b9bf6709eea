package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smartMarket/business/recommendation"
	"smartMarket/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecoService struct {
	response *domain.RecommendationResponse
	cacheHit bool
	err      error

	trackedAction string
	gotUserID     *uint
	gotRequest    recommendation.Request
}

func (s *stubRecoService) GeneralRecommendations(ctx context.Context, userID *uint, req recommendation.Request) (*domain.RecommendationResponse, bool, error) {
	s.gotUserID = userID
	s.gotRequest = req
	return s.response, s.cacheHit, s.err
}

func (s *stubRecoService) PersonalizedRecommendations(ctx context.Context, userID uint, req recommendation.Request) (*domain.RecommendationResponse, bool, error) {
	s.gotUserID = &userID
	s.gotRequest = req
	return s.response, s.cacheHit, s.err
}

func (s *stubRecoService) TrackInteraction(ctx context.Context, sessionID uint, productID uint64, action string, timestamp *time.Time) error {
	s.trackedAction = action
	return s.err
}

func (s *stubRecoService) RealtimePersonalization(ctx context.Context, userID uint, sessionID string) (map[string]any, error) {
	return map[string]any{"session_id": sessionID}, s.err
}

func recoResponse() *domain.RecommendationResponse {
	return &domain.RecommendationResponse{
		SessionID: 1,
		Recommendations: []domain.ScoredProduct{
			{ProductID: 10, Score: 0.9, Algorithm: "popularity"},
		},
		TotalCount:    1,
		AlgorithmInfo: domain.AlgorithmInfo{Type: domain.RecommendationTypeGeneral},
	}
}

func TestGeneralRecommendationsAnonymous(t *testing.T) {
	svc := &stubRecoService{response: recoResponse()}
	handler := NewRecommendationHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/recommendations?limit=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.General(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.gotUserID)
	assert.Equal(t, 5, svc.gotRequest.Limit)

	var body domain.RecommendationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.TotalCount)
}

func TestGeneralRecommendationsLimitTooLarge(t *testing.T) {
	handler := NewRecommendationHandler(&stubRecoService{response: recoResponse()})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/recommendations?limit=500", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.General(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPersonalizedRequiresUser(t *testing.T) {
	handler := NewRecommendationHandler(&stubRecoService{response: recoResponse()})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/recommendations/personalized", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Personalized(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPersonalizedPassesUser(t *testing.T) {
	svc := &stubRecoService{response: recoResponse()}
	handler := NewRecommendationHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/recommendations/personalized?limit=3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(7))

	require.NoError(t, handler.Personalized(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.gotUserID)
	assert.Equal(t, uint(7), *svc.gotUserID)
}

func TestTrackInteraction(t *testing.T) {
	svc := &stubRecoService{}
	handler := NewRecommendationHandler(svc)

	body := `{"session_id": 1, "product_id": 10, "action": "click"}`

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/recommendations/track", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Track(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "click", svc.trackedAction)
}

func TestTrackInteractionUnknownSession(t *testing.T) {
	svc := &stubRecoService{err: errors.New("recommendation not found")}
	handler := NewRecommendationHandler(svc)

	body := `{"session_id": 99, "product_id": 10, "action": "click"}`

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/recommendations/track", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Track(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrackInteractionMissingAction(t *testing.T) {
	handler := NewRecommendationHandler(&stubRecoService{})

	body := `{"session_id": 1, "product_id": 10}`

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/recommendations/track", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Track(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRealtimeRequiresSession(t *testing.T) {
	handler := NewRecommendationHandler(&stubRecoService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/recommendations/realtime", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(7))

	require.NoError(t, handler.Realtime(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
