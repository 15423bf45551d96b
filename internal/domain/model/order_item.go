package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。priceは行合計（単価×数量）のスナップショットで、
// カタログ価格が変わっても書き換えない
type OrderItem struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID string `gorm:"type:uuid;not null;index" json:"order_id"`

	//注文ヘッダが消えたら明細も一緒に消す（belongs toで外部キーを張る）
	Order Order `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	ItemID   string `gorm:"type:uuid;not null;index" json:"item_id"`
	Quantity int64  `gorm:"not null" json:"quantity"`

	Price decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
