package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カタログ商品。価格と割引は注文側からは読み取りのみ
type Item struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	WebsiteID   string          `gorm:"type:uuid;not null;index" json:"website_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`

	//割引。activeでも期限切れなら適用しない
	DiscountActive    bool            `gorm:"not null;default:false" json:"discount_active"`
	DiscountPrice     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"discount_price"`
	DiscountExpiresAt *time.Time      `json:"discount_expires_at"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
