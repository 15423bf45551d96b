package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

func (r *CartItemGormRepository) ListByBuyerID(ctx context.Context, buyerID string) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return []model.CartItem{}, err
	}
	return items, nil
}

// 同じ(buyer, item)ならquantityを加算する
func (r *CartItemGormRepository) UpsertByBuyerAndItem(ctx context.Context, cartItemID string, buyerID string, itemID string, addQty int64) error {
	line := model.CartItem{
		ID:       cartItemID,
		BuyerID:  buyerID,
		ItemID:   itemID,
		Quantity: addQty,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "buyer_id"}, {Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + ?", addQty),
			}),
		}).
		Create(&line).Error
}

func (r *CartItemGormRepository) DeleteByID(ctx context.Context, cartItemID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", cartItemID).Delete(&model.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CartItemGormRepository) IsOwnedByBuyer(ctx context.Context, cartItemID string, buyerID string) (bool, error) {
	var line model.CartItem
	err := r.db.WithContext(ctx).
		Select("id").
		Where("id = ? AND buyer_id = ?", cartItemID, buyerID).
		First(&line).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
