package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUsecaseForTest(cartItems *CartItemRepoMock, items *ItemRepoMock, idGen *seqIDGen, now time.Time) *usecase.CartUsecase {
	return usecase.NewCartUsecase(cartItems, items, idGen, &fixedClock{t: now})
}

// 削除済み商品は表示から外す（エラーにしない）
func TestCartUsecase_GetCart_SkipsDeletedItems(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cartItems := new(CartItemRepoMock)
	items := new(ItemRepoMock)

	cartItems.On("ListByBuyerID", mock.Anything, "buyer-1").Return([]model.CartItem{
		{ID: "cart-1", ItemID: "item-1", Quantity: 2},
		{ID: "cart-2", ItemID: "item-gone", Quantity: 1},
	}, nil)
	items.On("FindByID", mock.Anything, "item-1").Return(model.Item{
		ID: "item-1", Name: "Coffee", Price: decimal.NewFromInt(500),
	}, nil)
	items.On("FindByID", mock.Anything, "item-gone").Return(model.Item{}, repo.ErrNotFound)

	uc := newCartUsecaseForTest(cartItems, items, &seqIDGen{}, now)

	out, err := uc.GetCart(context.Background(), "buyer-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(1000)))
}

// カート表示の単価は現在の実効価格（割引中なら割引価格）
func TestCartUsecase_GetCart_UsesCurrentDiscountPrice(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exp := now.Add(time.Hour)

	cartItems := new(CartItemRepoMock)
	items := new(ItemRepoMock)

	cartItems.On("ListByBuyerID", mock.Anything, "buyer-1").Return([]model.CartItem{
		{ID: "cart-1", ItemID: "item-1", Quantity: 3},
	}, nil)
	items.On("FindByID", mock.Anything, "item-1").Return(model.Item{
		ID: "item-1", Name: "Coffee",
		Price:          decimal.NewFromInt(1000),
		DiscountActive: true, DiscountPrice: decimal.NewFromInt(700), DiscountExpiresAt: &exp,
	}, nil)

	uc := newCartUsecaseForTest(cartItems, items, &seqIDGen{}, now)

	out, err := uc.GetCart(context.Background(), "buyer-1")
	assert.NoError(t, err)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.NewFromInt(700)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(2100)))
}

func TestCartUsecase_AddToCart_InvalidQuantity(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := newCartUsecaseForTest(new(CartItemRepoMock), new(ItemRepoMock), &seqIDGen{}, now)

	_, err := uc.AddToCart(context.Background(), "buyer-1", usecase.AddCartInput{ItemID: "item-1", Quantity: 0})
	assertErrContains(t, err, "invalid quantity")
}

func TestCartUsecase_AddToCart_ItemNotFound(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	items := new(ItemRepoMock)
	items.On("FindByID", mock.Anything, "item-404").Return(model.Item{}, repo.ErrNotFound)

	uc := newCartUsecaseForTest(new(CartItemRepoMock), items, &seqIDGen{}, now)

	_, err := uc.AddToCart(context.Background(), "buyer-1", usecase.AddCartInput{ItemID: "item-404", Quantity: 1})
	assertErrContains(t, err, "item not found")
}

// 同一商品は数量加算（upsertに委ねる）
func TestCartUsecase_AddToCart_Success(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cartItems := new(CartItemRepoMock)
	items := new(ItemRepoMock)

	items.On("FindByID", mock.Anything, "item-1").Return(model.Item{
		ID: "item-1", Name: "Coffee", Price: decimal.NewFromInt(500),
	}, nil)
	cartItems.On("UpsertByBuyerAndItem", mock.Anything, "cart-1", "buyer-1", "item-1", int64(2)).Return(nil)
	cartItems.On("ListByBuyerID", mock.Anything, "buyer-1").Return([]model.CartItem{
		{ID: "cart-1", ItemID: "item-1", Quantity: 2},
	}, nil)

	uc := newCartUsecaseForTest(cartItems, items, &seqIDGen{ids: []string{"cart-1"}}, now)

	out, err := uc.AddToCart(context.Background(), "buyer-1", usecase.AddCartInput{ItemID: "item-1", Quantity: 2})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(2), out.Items[0].Quantity)

	cartItems.AssertExpectations(t)
}

// 他人の明細は「存在しない扱い」で削除できない
func TestCartUsecase_RemoveItem_NotOwned(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cartItems := new(CartItemRepoMock)
	cartItems.On("IsOwnedByBuyer", mock.Anything, "cart-1", "buyer-1").Return(false, nil)

	uc := newCartUsecaseForTest(cartItems, new(ItemRepoMock), &seqIDGen{}, now)

	err := uc.RemoveItem(context.Background(), "buyer-1", "cart-1")
	assertErrContains(t, err, "not found")

	cartItems.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestCartUsecase_RemoveItem_Success(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cartItems := new(CartItemRepoMock)
	cartItems.On("IsOwnedByBuyer", mock.Anything, "cart-1", "buyer-1").Return(true, nil)
	cartItems.On("DeleteByID", mock.Anything, "cart-1").Return(nil)

	uc := newCartUsecaseForTest(cartItems, new(ItemRepoMock), &seqIDGen{}, now)

	err := uc.RemoveItem(context.Background(), "buyer-1", "cart-1")
	assert.NoError(t, err)

	cartItems.AssertExpectations(t)
}
