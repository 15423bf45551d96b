package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RevenueGormRepository struct {
	db *gorm.DB
}

func NewRevenueGormRepository(db *gorm.DB) *RevenueGormRepository {
	return &RevenueGormRepository{db: db}
}

func (r *RevenueGormRepository) ActiveBuyerCount(ctx context.Context, websiteID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("website_id = ? AND status = ?", websiteID, model.OrderStatusPaid).
		Distinct("buyer_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// COUNT/SUMの受け皿
type salesRow struct {
	Count   int64
	Revenue decimal.Decimal
}

// created_atの範囲[from, to)でPaid注文を集計する
func (r *RevenueGormRepository) sumSalesBetween(ctx context.Context, websiteID string, from time.Time, to time.Time) (repo.SalesSummary, error) {
	var row salesRow
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COUNT(id) AS count, COALESCE(SUM(total_price), 0) AS revenue").
		Where("website_id = ? AND status = ?", websiteID, model.OrderStatusPaid).
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return repo.SalesSummary{Revenue: decimal.Zero}, err
	}
	return repo.SalesSummary{Count: row.Count, Revenue: row.Revenue}, nil
}

func (r *RevenueGormRepository) SalesByDay(ctx context.Context, websiteID string, day time.Time) (repo.SalesSummary, error) {
	//UTCのカレンダー日付で切る
	d := day.UTC()
	from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return r.sumSalesBetween(ctx, websiteID, from, from.AddDate(0, 0, 1))
}

func (r *RevenueGormRepository) SalesByMonth(ctx context.Context, websiteID string, year int, month time.Month) (repo.SalesSummary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return r.sumSalesBetween(ctx, websiteID, from, from.AddDate(0, 1, 0))
}

func (r *RevenueGormRepository) SalesByYear(ctx context.Context, websiteID string, year int) (repo.SalesSummary, error) {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return r.sumSalesBetween(ctx, websiteID, from, from.AddDate(1, 0, 0))
}

func (r *RevenueGormRepository) TotalRevenue(ctx context.Context, websiteID string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total_price), 0) AS total").
		Where("website_id = ? AND status = ?", websiteID, model.OrderStatusPaid).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func (r *RevenueGormRepository) TotalSalesCount(ctx context.Context, websiteID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("website_id = ? AND status = ?", websiteID, model.OrderStatusPaid).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RevenueGormRepository) LatestOrderLines(ctx context.Context, websiteID string, limit int) ([]repo.LatestOrderLine, error) {
	if limit <= 0 {
		limit = 5
	}

	//直近limit件のPaid注文を取り、明細1行ごとに展開する
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("website_id = ? AND status = ?", websiteID, model.OrderStatusPaid).
		Order("created_at desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return []repo.LatestOrderLine{}, err
	}

	lines := []repo.LatestOrderLine{}
	for _, o := range orders {
		var rows []struct {
			ItemName string
			Amount   decimal.Decimal
		}
		err := r.db.WithContext(ctx).Table("order_items").
			Select("items.name AS item_name, order_items.price AS amount").
			Joins("JOIN items ON items.id = order_items.item_id").
			Where("order_items.order_id = ?", o.ID).
			Order("order_items.id asc").
			Scan(&rows).Error
		if err != nil {
			return []repo.LatestOrderLine{}, err
		}

		for _, row := range rows {
			lines = append(lines, repo.LatestOrderLine{
				ItemName:  row.ItemName,
				Amount:    row.Amount,
				OrderedAt: o.CreatedAt,
			})
		}
	}
	return lines, nil
}

func (r *RevenueGormRepository) BestSellingItems(ctx context.Context, websiteID string, limit int) ([]repo.BestSellingItem, error) {
	if limit <= 0 {
		limit = 5
	}

	var rows []struct {
		ItemName    string
		TotalAmount decimal.Decimal
		SalesCount  int64
	}

	//sales_countは明細の行数。同数はitem_id昇順で安定させる
	err := r.db.WithContext(ctx).Table("order_items").
		Select("items.name AS item_name, COALESCE(SUM(order_items.price), 0) AS total_amount, COUNT(order_items.id) AS sales_count").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN items ON items.id = order_items.item_id").
		Where("orders.website_id = ? AND orders.status = ?", websiteID, model.OrderStatusPaid).
		Group("items.id, items.name").
		Order("COUNT(order_items.id) DESC, items.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return []repo.BestSellingItem{}, err
	}

	out := make([]repo.BestSellingItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, repo.BestSellingItem{
			ItemName:    row.ItemName,
			TotalAmount: row.TotalAmount,
			SalesCount:  row.SalesCount,
		})
	}
	return out, nil
}
