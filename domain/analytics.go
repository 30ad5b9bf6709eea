package domain

import "time"

type StoreAnalytics struct {
	ID                uint64    `gorm:"primaryKey" json:"-"`
	StoreID           uint64    `gorm:"column:store_id;not null;index" json:"store_id"`
	Date              time.Time `gorm:"column:date;not null" json:"date"`
	TotalViews        int       `gorm:"column:total_views;default:0" json:"total_views"`
	UniqueVisitors    int       `gorm:"column:unique_visitors;default:0" json:"unique_visitors"`
	ProductViews      int       `gorm:"column:product_views;default:0" json:"product_views"`
	TotalClicks       int       `gorm:"column:total_clicks;default:0" json:"total_clicks"`
	AddToCartCount    int       `gorm:"column:add_to_cart_count;default:0" json:"add_to_cart_count"`
	ConversionRate    float64   `gorm:"column:conversion_rate;type:numeric;default:0" json:"conversion_rate"`
	TotalOrders       int       `gorm:"column:total_orders;default:0" json:"total_orders"`
	TotalRevenue      float64   `gorm:"column:total_revenue;type:numeric;default:0" json:"total_revenue"`
	AverageOrderValue float64   `gorm:"column:average_order_value;type:numeric;default:0" json:"average_order_value"`
}

func (StoreAnalytics) TableName() string {
	return "store_analytics"
}

type ProductPerformance struct {
	ID                uint64    `gorm:"primaryKey" json:"-"`
	ProductID         uint64    `gorm:"column:product_id;not null;index" json:"product_id"`
	Date              time.Time `gorm:"column:date;not null" json:"date"`
	Views             int       `gorm:"column:views;default:0" json:"views"`
	Clicks            int       `gorm:"column:clicks;default:0" json:"clicks"`
	AddToCart         int       `gorm:"column:add_to_cart;default:0" json:"add_to_cart"`
	Purchases         int       `gorm:"column:purchases;default:0" json:"purchases"`
	AverageTimeOnPage float64   `gorm:"column:average_time_on_page;type:numeric;default:0" json:"average_time_on_page"`
	BounceRate        float64   `gorm:"column:bounce_rate;type:numeric;default:0" json:"bounce_rate"`
}

func (ProductPerformance) TableName() string {
	return "product_performance"
}
