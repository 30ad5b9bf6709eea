package aiengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"smartMarket/domain"
	"time"

	"github.com/pobyzaarif/goshortcute"
)

// AIEngineConfig points at the external AI engine. All scoring, analysis
// and summarization happens on the other side of this client.
type AIEngineConfig struct {
	BaseUrl           string
	BasicAuthUsername string
	BasicAuthPassword string
}

type AIEngineRepository struct {
	aiConfig AIEngineConfig
	client   *http.Client
}

func NewAIEngineRepository(cfg AIEngineConfig) *AIEngineRepository {
	return &AIEngineRepository{
		aiConfig: cfg,
		client:   &http.Client{},
	}
}

func (r *AIEngineRepository) post(ctx context.Context, path string, payload any, out any) error {
	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.aiConfig.BaseUrl+path, bytes.NewReader(payloadByte))
	if err != nil {
		return err
	}

	buildBasicAuth := goshortcute.StringtoBase64Encode(r.aiConfig.BasicAuthUsername + ":" + r.aiConfig.BasicAuthPassword)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Basic "+buildBasicAuth)

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("ai engine returned negative response %v", res.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal ai engine response: %w", err)
	}

	return nil
}

type compareProductsPayload struct {
	ProductIDs            []uint64 `json:"product_ids"`
	Criteria              []string `json:"criteria,omitempty"`
	IncludeRecommendation bool     `json:"include_recommendation"`
}

func (r *AIEngineRepository) CompareProducts(ctx context.Context, products []domain.Product, criteria []string, includeRecommendation bool) (domain.ComparisonOutcome, error) {
	ids := make([]uint64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	var out domain.ComparisonOutcome
	err := r.post(ctx, "/v1/compare/products", compareProductsPayload{
		ProductIDs:            ids,
		Criteria:              criteria,
		IncludeRecommendation: includeRecommendation,
	}, &out)
	if err != nil {
		return domain.ComparisonOutcome{}, err
	}

	return out, nil
}

type compareStoresPayload struct {
	StoreIDs       []uint64 `json:"store_ids"`
	ComparisonType string   `json:"comparison_type"`
	CategoryID     *uint64  `json:"category_id,omitempty"`
}

func (r *AIEngineRepository) CompareStores(ctx context.Context, stores []domain.Store, comparisonType string, categoryID *uint64) (map[string]any, error) {
	ids := make([]uint64, 0, len(stores))
	for _, s := range stores {
		ids = append(ids, s.ID)
	}

	var out map[string]any
	err := r.post(ctx, "/v1/compare/stores", compareStoresPayload{
		StoreIDs:       ids,
		ComparisonType: comparisonType,
		CategoryID:     categoryID,
	}, &out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

type recommendationsPayload struct {
	UserID          *uint    `json:"user_id,omitempty"`
	Limit           int      `json:"limit"`
	CategoryID      *uint64  `json:"category_id,omitempty"`
	ExcludeProducts []uint64 `json:"exclude_products,omitempty"`
}

type recommendationsResponse struct {
	Recommendations []domain.ScoredProduct `json:"recommendations"`
}

func (r *AIEngineRepository) GeneralRecommendations(ctx context.Context, limit int, categoryID *uint64, excludeProducts []uint64) ([]domain.ScoredProduct, error) {
	var out recommendationsResponse
	err := r.post(ctx, "/v1/recommendations/general", recommendationsPayload{
		Limit:           limit,
		CategoryID:      categoryID,
		ExcludeProducts: excludeProducts,
	}, &out)
	if err != nil {
		return nil, err
	}

	return out.Recommendations, nil
}

func (r *AIEngineRepository) PersonalizedRecommendations(ctx context.Context, userID uint, limit int, categoryID *uint64, excludeProducts []uint64) ([]domain.ScoredProduct, error) {
	var out recommendationsResponse
	err := r.post(ctx, "/v1/recommendations/personalized", recommendationsPayload{
		UserID:          &userID,
		Limit:           limit,
		CategoryID:      categoryID,
		ExcludeProducts: excludeProducts,
	}, &out)
	if err != nil {
		return nil, err
	}

	return out.Recommendations, nil
}

type realtimePayload struct {
	UserID    uint   `json:"user_id"`
	SessionID string `json:"session_id"`
}

func (r *AIEngineRepository) RealtimePersonalization(ctx context.Context, userID uint, sessionID string) (map[string]any, error) {
	var out map[string]any
	err := r.post(ctx, "/v1/recommendations/realtime", realtimePayload{
		UserID:    userID,
		SessionID: sessionID,
	}, &out)
	if err != nil {
		return nil, err
	}

	return out, nil
}

type similarProductsPayload struct {
	ProductID uint64 `json:"product_id"`
	Limit     int    `json:"limit"`
}

func (r *AIEngineRepository) SimilarProducts(ctx context.Context, productID uint64, limit int) ([]domain.ScoredProduct, error) {
	var out recommendationsResponse
	err := r.post(ctx, "/v1/recommendations/similar", similarProductsPayload{
		ProductID: productID,
		Limit:     limit,
	}, &out)
	if err != nil {
		return nil, err
	}

	return out.Recommendations, nil
}

type bestProductsPayload struct {
	CategoryID *uint64 `json:"category_id,omitempty"`
	Limit      int     `json:"limit"`
}

func (r *AIEngineRepository) BestProducts(ctx context.Context, categoryID *uint64, limit int) ([]domain.ScoredProduct, error) {
	var out recommendationsResponse
	err := r.post(ctx, "/v1/recommendations/best", bestProductsPayload{
		CategoryID: categoryID,
		Limit:      limit,
	}, &out)
	if err != nil {
		return nil, err
	}

	return out.Recommendations, nil
}

type enhanceQueryPayload struct {
	Query string `json:"query"`
}

type enhanceQueryResponse struct {
	EnhancedQuery string `json:"enhanced_query"`
}

func (r *AIEngineRepository) EnhanceSearchQuery(ctx context.Context, query string) (string, error) {
	var out enhanceQueryResponse
	err := r.post(ctx, "/v1/search/enhance", enhanceQueryPayload{Query: query}, &out)
	if err != nil {
		return "", err
	}

	if out.EnhancedQuery == "" {
		return query, nil
	}

	return out.EnhancedQuery, nil
}

type generateReportPayload struct {
	ReportType string         `json:"report_type"`
	UserID     uint           `json:"user_id"`
	StoreID    *uint64        `json:"store_id,omitempty"`
	DateFrom   time.Time      `json:"date_from"`
	DateTo     time.Time      `json:"date_to"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

func (r *AIEngineRepository) GenerateReport(ctx context.Context, reportType string, userID uint, storeID *uint64, dateFrom, dateTo time.Time, parameters map[string]any) (domain.ReportOutcome, error) {
	var out domain.ReportOutcome
	err := r.post(ctx, "/v1/reports/generate", generateReportPayload{
		ReportType: reportType,
		UserID:     userID,
		StoreID:    storeID,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		Parameters: parameters,
	}, &out)
	if err != nil {
		return domain.ReportOutcome{}, err
	}

	return out, nil
}
