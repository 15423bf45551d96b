package model

import "time"

// カートの明細。価格は持たない（注文確定時に解決して凍結する）
type CartItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID   string    `gorm:"type:uuid;not null;index:idx_cart_buyer_item,unique" json:"buyer_id"`
	ItemID    string    `gorm:"type:uuid;not null;index:idx_cart_buyer_item,unique" json:"item_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
