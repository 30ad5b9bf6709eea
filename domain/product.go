package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Store struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	OwnerID       uint      `gorm:"column:owner_id;not null" json:"owner_id"`
	Name          string    `gorm:"column:name;type:text;not null" json:"name"`
	Slug          string    `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Description   string    `gorm:"column:description;type:text" json:"description"`
	IsActive      bool      `gorm:"column:is_active;default:true" json:"is_active"`
	IsVerified    bool      `gorm:"column:is_verified;default:false" json:"is_verified"`
	AverageRating float64   `gorm:"column:average_rating;type:numeric;default:0" json:"average_rating"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Store) TableName() string {
	return "stores"
}

type Category struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"column:name;type:text;not null" json:"name"`
	Slug      string  `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	ParentID  *uint64 `gorm:"column:parent_id" json:"parent_id,omitempty"`
	SortOrder int     `gorm:"column:sort_order;default:0" json:"sort_order"`
	IsActive  bool    `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Category) TableName() string {
	return "categories"
}

type Brand struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"column:name;type:text;not null" json:"name"`
	Slug     string `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	IsActive bool   `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Brand) TableName() string {
	return "brands"
}

type Product struct {
	ID                 uint64            `gorm:"primaryKey" json:"id"`
	StoreID            uint64            `gorm:"column:store_id;not null" json:"store_id"`
	CategoryID         uint64            `gorm:"column:category_id" json:"category_id"`
	BrandID            *uint64           `gorm:"column:brand_id" json:"brand_id,omitempty"`
	Name               string            `gorm:"column:name;type:text;not null" json:"name"`
	Slug               string            `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	SKU                string            `gorm:"column:sku;type:text" json:"sku"`
	Description        string            `gorm:"column:description;type:text" json:"description"`
	Price              float64           `gorm:"column:price;type:numeric;not null" json:"price"`
	DiscountPercentage float64           `gorm:"column:discount_percentage;type:numeric;default:0" json:"discount_percentage"`
	StockQuantity      int               `gorm:"column:stock_quantity;default:0" json:"stock_quantity"`
	InStock            bool              `gorm:"column:in_stock;default:true" json:"in_stock"`
	IsActive           bool              `gorm:"column:is_active;default:true" json:"is_active"`
	IsFeatured         bool              `gorm:"column:is_featured;default:false" json:"is_featured"`
	ViewCount          uint64            `gorm:"column:view_count;default:0" json:"view_count"`
	AverageRating      float64           `gorm:"column:average_rating;type:numeric;default:0" json:"average_rating"`
	TotalReviews       int               `gorm:"column:total_reviews;default:0" json:"total_reviews"`
	Attributes         datatypes.JSONMap `gorm:"column:attributes;type:jsonb" json:"attributes"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// FinalPrice applies the discount percentage to the list price.
func (p Product) FinalPrice() float64 {
	if p.DiscountPercentage <= 0 {
		return p.Price
	}
	return p.Price * (1 - p.DiscountPercentage/100)
}

type ProductLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_product_likes_user_product" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null;uniqueIndex:idx_product_likes_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ProductLike) TableName() string {
	return "product_likes"
}

// UserBehaviorLog feeds the external AI engine with interaction history.
type UserBehaviorLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	UserID     uint              `gorm:"column:user_id;not null" json:"user_id"`
	ProductID  uint64            `gorm:"column:product_id;not null" json:"product_id"`
	ActionType string            `gorm:"column:action_type;not null" json:"action_type"`
	Metadata   datatypes.JSONMap `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserBehaviorLog) TableName() string {
	return "user_behavior_logs"
}
