package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartItemRepository interface {
	//買い手のカート明細一覧
	ListByBuyerID(ctx context.Context, buyerID string) ([]model.CartItem, error)

	// 同一商品はプラス
	UpsertByBuyerAndItem(ctx context.Context, cartItemID string, buyerID string, itemID string, addQty int64) error

	DeleteByID(ctx context.Context, cartItemID string) error
	IsOwnedByBuyer(ctx context.Context, cartItemID string, buyerID string) (bool, error)
}
