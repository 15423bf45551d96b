package usecase

import (
	"context"
	"errors"
	"net/http"

	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// カート明細は価格を持たず、表示用の金額は現在の実効価格で計算する。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	itemRepo     repo.ItemRepository
	idGen        IDGenerator
	clock        Clock
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	itemRepo repo.ItemRepository,
	idGen IDGenerator,
	clock Clock,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		itemRepo:     itemRepo,
		idGen:        idGen,
		clock:        clock,
	}
}

// priceは現在の実効単価（確定値ではない）
type CartLineResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type AddCartInput struct {
	ItemID   string
	Quantity int64
}

// GetCart はカート取得（空なら空のまま返す）。
func (u *CartUsecase) GetCart(ctx context.Context, buyerID string) (CartResponse, error) {
	if buyerID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	lines, err := u.cartItemRepo.ListByBuyerID(ctx, buyerID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := u.clock.Now().UTC()
	out := CartResponse{
		Items: make([]CartLineResponse, 0, len(lines)),
		Total: decimal.Zero,
	}

	for _, line := range lines {
		item, err := u.itemRepo.FindByID(ctx, line.ItemID)
		if errors.Is(err, repo.ErrNotFound) {
			//削除済み商品は表示から外す
			continue
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		unit := ResolveUnitPrice(item, now)
		lineTotal := unit.Mul(decimal.NewFromInt(line.Quantity))
		out.Items = append(out.Items, CartLineResponse{
			ID:        line.ID,
			ItemID:    line.ItemID,
			Name:      item.Name,
			UnitPrice: unit,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		out.Total = out.Total.Add(lineTotal)
	}

	return out, nil
}

// AddToCart は明細追加（同一商品は数量を加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, buyerID string, in AddCartInput) (CartResponse, error) {
	if buyerID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ItemID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item_id")
	}
	if in.Quantity <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//存在しない商品は入れられない
	if _, err := u.itemRepo.FindByID(ctx, in.ItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "item not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.UpsertByBuyerAndItem(ctx, u.idGen.NewID(), buyerID, in.ItemID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetCart(ctx, buyerID)
}

// RemoveItem は明細削除（他人の明細は「存在しない扱い」）。
func (u *CartUsecase) RemoveItem(ctx context.Context, buyerID string, cartItemID string) error {
	if buyerID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartItemRepo.IsOwnedByBuyer(ctx, cartItemID, buyerID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
