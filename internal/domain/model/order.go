package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// 注文ヘッダ。total_priceは作成時点の明細合計で、以後再計算しない
type Order struct {
	ID         string          `gorm:"type:uuid;primaryKey" json:"id"`
	WebsiteID  string          `gorm:"type:uuid;not null;index" json:"website_id"`
	BuyerID    string          `gorm:"type:uuid;not null;uniqueIndex:idx_orders_buyer_idem" json:"buyer_id"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`

	//二重送信対策。同じ買い手が同じキーを再送したら同じ注文を返す。
	//一意性は(buyer_id, key)で、他人のキーとは衝突させない
	IdempotencyKey string `gorm:"type:varchar(255);not null;uniqueIndex:idx_orders_buyer_idem" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
