package usecase

import (
	"context"
	"net/http"
	"time"

	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 台帳を読むだけの集計。台帳は変更しない
type AnalyticsUsecase struct {
	revenue repo.RevenueRepository
	dates   DateFormatter
}

func NewAnalyticsUsecase(revenue repo.RevenueRepository, dates DateFormatter) *AnalyticsUsecase {
	return &AnalyticsUsecase{revenue: revenue, dates: dates}
}

type SalesSummaryOutput struct {
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type TotalRevenueOutput struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

type SalesCountOutput struct {
	Count int64 `json:"count"`
}

type ActiveBuyersOutput struct {
	ActiveBuyers int64 `json:"active_buyers"`
}

type LatestOrderOutput struct {
	ItemName string          `json:"item_name"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
}

type BestSellingOutput struct {
	ProductName string          `json:"product_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SalesCount  int64           `json:"sales_count"`
}

type AverageOrderOutput struct {
	AverageOrderValue int64 `json:"average_order_value"`
}

func (u *AnalyticsUsecase) SalesByDay(ctx context.Context, websiteID string, day time.Time) (SalesSummaryOutput, error) {
	if websiteID == "" {
		return SalesSummaryOutput{Revenue: decimal.Zero}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	s, err := u.revenue.SalesByDay(ctx, websiteID, day)
	if err != nil {
		return SalesSummaryOutput{Revenue: decimal.Zero}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return SalesSummaryOutput{Count: s.Count, Revenue: s.Revenue}, nil
}

func (u *AnalyticsUsecase) SalesByMonth(ctx context.Context, websiteID string, year int, month int) (SalesSummaryOutput, error) {
	if websiteID == "" {
		return SalesSummaryOutput{Revenue: decimal.Zero}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if year <= 0 || month < 1 || month > 12 {
		return SalesSummaryOutput{Revenue: decimal.Zero}, NewHTTPError(http.StatusBadRequest, "invalid year/month")
	}

	s, err := u.revenue.SalesByMonth(ctx, websiteID, year, time.Month(month))
	if err != nil {
		return SalesSummaryOutput{Revenue: decimal.Zero}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return SalesSummaryOutput{Count: s.Count, Revenue: s.Revenue}, nil
}

func (u *AnalyticsUsecase) SalesByYear(ctx context.Context, websiteID string, year int) (SalesSummaryOutput, error) {
	if websiteID == "" {
		return SalesSummaryOutput{Revenue: decimal.Zero}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if year <= 0 {
		return SalesSummaryOutput{Revenue: decimal.Zero}, NewHTTPError(http.StatusBadRequest, "invalid year")
	}

	s, err := u.revenue.SalesByYear(ctx, websiteID, year)
	if err != nil {
		return SalesSummaryOutput{Revenue: decimal.Zero}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return SalesSummaryOutput{Count: s.Count, Revenue: s.Revenue}, nil
}

func (u *AnalyticsUsecase) TotalRevenue(ctx context.Context, websiteID string) (TotalRevenueOutput, error) {
	if websiteID == "" {
		return TotalRevenueOutput{TotalRevenue: decimal.Zero}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	total, err := u.revenue.TotalRevenue(ctx, websiteID)
	if err != nil {
		return TotalRevenueOutput{TotalRevenue: decimal.Zero}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return TotalRevenueOutput{TotalRevenue: total}, nil
}

func (u *AnalyticsUsecase) TotalSalesCount(ctx context.Context, websiteID string) (SalesCountOutput, error) {
	if websiteID == "" {
		return SalesCountOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	count, err := u.revenue.TotalSalesCount(ctx, websiteID)
	if err != nil {
		return SalesCountOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return SalesCountOutput{Count: count}, nil
}

func (u *AnalyticsUsecase) ActiveBuyerCount(ctx context.Context, websiteID string) (ActiveBuyersOutput, error) {
	if websiteID == "" {
		return ActiveBuyersOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	count, err := u.revenue.ActiveBuyerCount(ctx, websiteID)
	if err != nil {
		return ActiveBuyersOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ActiveBuyersOutput{ActiveBuyers: count}, nil
}

// LatestOrders は直近のPaid注文を明細1行ごとに返す。
// 日付の表示形式は外部のDateFormatterに任せる。
func (u *AnalyticsUsecase) LatestOrders(ctx context.Context, websiteID string, limit int) ([]LatestOrderOutput, error) {
	if websiteID == "" {
		return []LatestOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}

	lines, err := u.revenue.LatestOrderLines(ctx, websiteID, limit)
	if err != nil {
		return []LatestOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]LatestOrderOutput, 0, len(lines))
	for _, line := range lines {
		outs = append(outs, LatestOrderOutput{
			ItemName: line.ItemName,
			Amount:   line.Amount,
			Date:     u.dates.Format(line.OrderedAt),
		})
	}
	return outs, nil
}

func (u *AnalyticsUsecase) BestSellingItems(ctx context.Context, websiteID string, limit int) ([]BestSellingOutput, error) {
	if websiteID == "" {
		return []BestSellingOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}

	items, err := u.revenue.BestSellingItems(ctx, websiteID, limit)
	if err != nil {
		return []BestSellingOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]BestSellingOutput, 0, len(items))
	for _, it := range items {
		outs = append(outs, BestSellingOutput{
			ProductName: it.ItemName,
			TotalAmount: it.TotalAmount,
			SalesCount:  it.SalesCount,
		})
	}
	return outs, nil
}

// AverageOrderPerBuyer は売上合計をPaid買い手数で割った整数値（切り捨て）。
// 買い手0はゼロ除算を避けて0を返す。
func (u *AnalyticsUsecase) AverageOrderPerBuyer(ctx context.Context, websiteID string) (AverageOrderOutput, error) {
	if websiteID == "" {
		return AverageOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	buyers, err := u.revenue.ActiveBuyerCount(ctx, websiteID)
	if err != nil {
		return AverageOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if buyers == 0 {
		return AverageOrderOutput{AverageOrderValue: 0}, nil
	}

	total, err := u.revenue.TotalRevenue(ctx, websiteID)
	if err != nil {
		return AverageOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	avg := total.Div(decimal.NewFromInt(buyers)).IntPart()
	return AverageOrderOutput{AverageOrderValue: avg}, nil
}
