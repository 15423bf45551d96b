package repository

import (
	"context"
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 割引の更新内容。任意のmapではなく更新できる項目を列挙する
type ItemDiscountPatch struct {
	Active    bool
	Price     decimal.Decimal
	ExpiresAt *time.Time
}

// カタログ商品の窓口。注文側はFindByIDの読み取りしか使わない
type ItemRepository interface {
	Create(ctx context.Context, item model.Item) (model.Item, error)

	//商品IDから1件取得
	FindByID(ctx context.Context, itemID string) (model.Item, error)

	//websiteの商品数（プラン上限チェック用）
	CountByWebsiteID(ctx context.Context, websiteID string) (int64, error)

	//基本価格の更新
	UpdatePrice(ctx context.Context, itemID string, price decimal.Decimal) error

	//割引の更新。非activeにするときは価格・期限もクリアする
	UpdateDiscount(ctx context.Context, itemID string, patch ItemDiscountPatch) error
}
