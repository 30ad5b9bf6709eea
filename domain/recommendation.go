package domain

import "time"

const (
	RecommendationTypeGeneral      = "general"
	RecommendationTypePersonalized = "personalized"
)

// RecommendationSession identifies one recommendation request. Created per
// cache miss, immutable afterwards, used as the unit of feedback tracking.
type RecommendationSession struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             *uint     `gorm:"column:user_id" json:"user_id,omitempty"`
	SessionID          string    `gorm:"column:session_id;index" json:"session_id"`
	RecommendationType string    `gorm:"column:recommendation_type;not null" json:"recommendation_type"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RecommendationSession) TableName() string {
	return "recommendation_sessions"
}

// RecommendationResult is one scored product within a session. At most one
// row per (session, product) pair.
type RecommendationResult struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	SessionID      uint       `gorm:"column:session_id;not null;uniqueIndex:idx_reco_results_session_product" json:"session_id"`
	ProductID      uint64     `gorm:"column:product_id;not null;uniqueIndex:idx_reco_results_session_product" json:"product_id"`
	Score          float64    `gorm:"column:score;not null" json:"score"`
	Position       int        `gorm:"column:position;not null" json:"position"`
	AlgorithmUsed  string     `gorm:"column:algorithm_used" json:"algorithm_used"`
	WasClicked     bool       `gorm:"column:was_clicked;default:false" json:"was_clicked"`
	WasAddedToCart bool       `gorm:"column:was_added_to_cart;default:false" json:"was_added_to_cart"`
	WasPurchased   bool       `gorm:"column:was_purchased;default:false" json:"was_purchased"`
	ClickTimestamp *time.Time `gorm:"column:click_timestamp" json:"click_timestamp,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RecommendationResult) TableName() string {
	return "recommendation_results"
}

// ScoredProduct is one entry of the ordered list returned by the AI engine.
type ScoredProduct struct {
	ProductID uint64  `json:"product_id"`
	Score     float64 `json:"score"`
	Algorithm string  `json:"algorithm"`
}

type AlgorithmInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// RecommendationResponse is the full API payload. Cached verbatim, so a
// cache hit replays the session id minted when the entry was stored.
type RecommendationResponse struct {
	SessionID       uint            `json:"session_id"`
	Recommendations []ScoredProduct `json:"recommendations"`
	TotalCount      int             `json:"total_count"`
	AlgorithmInfo   AlgorithmInfo   `json:"algorithm_info"`
}
