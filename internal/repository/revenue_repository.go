package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 期間ごとの売上集計。該当なしでもゼロ値で返す（nilにしない）
type SalesSummary struct {
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// 直近のPaid注文を明細1行ごとに展開したもの
type LatestOrderLine struct {
	ItemName  string          `json:"item_name"`
	Amount    decimal.Decimal `json:"amount"`
	OrderedAt time.Time       `json:"ordered_at"`
}

// 売れ筋商品。sales_countは明細行数
type BestSellingItem struct {
	ItemName    string          `json:"item_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SalesCount  int64           `json:"sales_count"`
}

// 注文台帳の読み取り専用集計。台帳は変更しない。
// すべてwebsite単位に絞り、Paidの注文だけを数える。
type RevenueRepository interface {
	//Paid注文の買い手数（重複なし）
	ActiveBuyerCount(ctx context.Context, websiteID string) (int64, error)

	//日別・月別・年別の売上（UTCのカレンダー日付で切る）
	SalesByDay(ctx context.Context, websiteID string, day time.Time) (SalesSummary, error)
	SalesByMonth(ctx context.Context, websiteID string, year int, month time.Month) (SalesSummary, error)
	SalesByYear(ctx context.Context, websiteID string, year int) (SalesSummary, error)

	//全期間の売上合計と件数
	TotalRevenue(ctx context.Context, websiteID string) (decimal.Decimal, error)
	TotalSalesCount(ctx context.Context, websiteID string) (int64, error)

	//直近limit件のPaid注文を明細ごとに展開
	LatestOrderLines(ctx context.Context, websiteID string, limit int) ([]LatestOrderLine, error)

	//売れ筋。sales_count降順、同数ならitem_id昇順で安定させる
	BestSellingItems(ctx context.Context, websiteID string, limit int) ([]BestSellingItem, error)
}
