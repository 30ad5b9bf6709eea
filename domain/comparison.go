package domain

import (
	"time"

	"gorm.io/datatypes"
)

type ProductComparison struct {
	ID                 uint64            `gorm:"primaryKey" json:"id"`
	UserID             *uint             `gorm:"column:user_id" json:"user_id,omitempty"`
	ComparisonCriteria datatypes.JSON    `gorm:"column:comparison_criteria;type:jsonb" json:"comparison_criteria"`
	AIAnalysis         datatypes.JSONMap `gorm:"column:ai_analysis;type:jsonb" json:"ai_analysis"`
	Products           []Product         `gorm:"many2many:product_comparison_products" json:"products"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ProductComparison) TableName() string {
	return "product_comparisons"
}

type StoreComparison struct {
	ID             uint64            `gorm:"primaryKey" json:"id"`
	UserID         *uint             `gorm:"column:user_id" json:"user_id,omitempty"`
	ComparisonType string            `gorm:"column:comparison_type;not null" json:"comparison_type"`
	AIInsights     datatypes.JSONMap `gorm:"column:ai_insights;type:jsonb" json:"ai_insights"`
	Stores         []Store           `gorm:"many2many:store_comparison_stores" json:"stores"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StoreComparison) TableName() string {
	return "store_comparisons"
}
