package usecase

import (
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

// ResolveUnitPrice はasOf時点の実効単価を返す。
// 割引はactiveで期限が設定済み、かつ期限がasOfより後のときだけ適用する
// （期限ちょうどは適用しない）。渡されたitemだけを見て、再取得はしない。
func ResolveUnitPrice(item model.Item, asOf time.Time) decimal.Decimal {
	if item.DiscountActive && item.DiscountExpiresAt != nil && item.DiscountExpiresAt.After(asOf) {
		return item.DiscountPrice
	}
	return item.Price
}
