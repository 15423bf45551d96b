package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByBuyerID(ctx context.Context, buyerID string) ([]model.Order, error)
	ListByWebsiteID(ctx context.Context, websiteID string) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) error
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error

	//買い手のPendingの注文（最初の1件）
	FindPendingByBuyerID(ctx context.Context, buyerID string) (model.Order, error)

	//検索（同じキーなら同じ結果を返す）
	FindByIdempotencyKey(ctx context.Context, buyerID string, key string) (model.Order, bool, error)
}
