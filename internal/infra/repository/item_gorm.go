package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemGormRepository struct {
	db *gorm.DB
}

func NewItemGormRepository(db *gorm.DB) *ItemGormRepository {
	return &ItemGormRepository{db: db}
}

func (r *ItemGormRepository) Create(ctx context.Context, item model.Item) (model.Item, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.Item{}, err
	}
	return item, nil
}

func (r *ItemGormRepository) FindByID(ctx context.Context, itemID string) (model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Item{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (r *ItemGormRepository) CountByWebsiteID(ctx context.Context, websiteID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("website_id = ?", websiteID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ItemGormRepository) UpdatePrice(ctx context.Context, itemID string, price decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ?", itemID).
		Update("price", price)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ItemGormRepository) UpdateDiscount(ctx context.Context, itemID string, patch repo.ItemDiscountPatch) error {
	//非activeなら価格・期限も一緒にクリアする
	values := map[string]interface{}{
		"discount_active":     patch.Active,
		"discount_price":      patch.Price,
		"discount_expires_at": patch.ExpiresAt,
	}
	if !patch.Active {
		values["discount_price"] = decimal.Zero
		values["discount_expires_at"] = nil
	}

	res := r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ?", itemID).
		Updates(values)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
