package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =====================
// 共通ヘルパー
// =====================

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("error expected (want %q), got nil", want)
	}
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("error %q does not contain %q", err.Error(), want)
	}
}

// テスト用の固定時刻
type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

// 呼ばれた順にIDを返す
type seqIDGen struct {
	ids []string
	i   int
}

func (g *seqIDGen) NewID() string {
	if g.i >= len(g.ids) {
		panic("seqIDGen: out of ids")
	}
	id := g.ids[g.i]
	g.i++
	return id
}

// トランザクションは開かず、そのままモックに流す
type txStub struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	cartItems  repo.CartItemRepository
	items      repo.ItemRepository
}

func (s *txStub) Orders() repo.OrderRepository         { return s.orders }
func (s *txStub) OrderItems() repo.OrderItemRepository { return s.orderItems }
func (s *txStub) CartItems() repo.CartItemRepository   { return s.cartItems }
func (s *txStub) Items() repo.ItemRepository           { return s.items }

func (s *txStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s)
}

// 許可/拒否を切り替えるだけのプランポリシー
type policyStub struct {
	createErr   error
	discountErr error
}

func (p *policyStub) CanCreateItem(ctx context.Context, websiteID string, currentCount int64) error {
	return p.createErr
}

func (p *policyStub) CanActivateDiscount(ctx context.Context, websiteID string) error {
	return p.discountErr
}

// 表示用の日付フォーマット（UTCの日付だけ）
type dateFmtStub struct{}

func (f *dateFmtStub) Format(t time.Time) string { return t.UTC().Format("2006-01-02") }

var _ usecase.DateFormatter = (*dateFmtStub)(nil)

// =====================
// Mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByBuyerID(ctx context.Context, buyerID string) ([]model.Order, error) {
	args := m.Called(ctx, buyerID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListByWebsiteID(ctx context.Context, websiteID string) ([]model.Order, error) {
	args := m.Called(ctx, websiteID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) FindPendingByBuyerID(ctx context.Context, buyerID string) (model.Order, error) {
	args := m.Called(ctx, buyerID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, buyerID string, key string) (model.Order, bool, error) {
	args := m.Called(ctx, buyerID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByBuyerID(ctx context.Context, buyerID string) ([]model.CartItem, error) {
	args := m.Called(ctx, buyerID)
	lines, _ := args.Get(0).([]model.CartItem)
	return lines, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByBuyerAndItem(ctx context.Context, cartItemID string, buyerID string, itemID string, addQty int64) error {
	args := m.Called(ctx, cartItemID, buyerID, itemID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID string) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) IsOwnedByBuyer(ctx context.Context, cartItemID string, buyerID string) (bool, error) {
	args := m.Called(ctx, cartItemID, buyerID)
	return args.Bool(0), args.Error(1)
}

type ItemRepoMock struct{ mock.Mock }

func (m *ItemRepoMock) Create(ctx context.Context, item model.Item) (model.Item, error) {
	args := m.Called(ctx, item)
	created, _ := args.Get(0).(model.Item)
	return created, args.Error(1)
}

func (m *ItemRepoMock) FindByID(ctx context.Context, itemID string) (model.Item, error) {
	args := m.Called(ctx, itemID)
	item, _ := args.Get(0).(model.Item)
	return item, args.Error(1)
}

func (m *ItemRepoMock) CountByWebsiteID(ctx context.Context, websiteID string) (int64, error) {
	args := m.Called(ctx, websiteID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ItemRepoMock) UpdatePrice(ctx context.Context, itemID string, price decimal.Decimal) error {
	args := m.Called(ctx, itemID, price)
	return args.Error(0)
}

func (m *ItemRepoMock) UpdateDiscount(ctx context.Context, itemID string, patch repo.ItemDiscountPatch) error {
	args := m.Called(ctx, itemID, patch)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

type RevenueRepoMock struct{ mock.Mock }

func (m *RevenueRepoMock) ActiveBuyerCount(ctx context.Context, websiteID string) (int64, error) {
	args := m.Called(ctx, websiteID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RevenueRepoMock) SalesByDay(ctx context.Context, websiteID string, day time.Time) (repo.SalesSummary, error) {
	args := m.Called(ctx, websiteID, day)
	s, _ := args.Get(0).(repo.SalesSummary)
	return s, args.Error(1)
}

func (m *RevenueRepoMock) SalesByMonth(ctx context.Context, websiteID string, year int, month time.Month) (repo.SalesSummary, error) {
	args := m.Called(ctx, websiteID, year, month)
	s, _ := args.Get(0).(repo.SalesSummary)
	return s, args.Error(1)
}

func (m *RevenueRepoMock) SalesByYear(ctx context.Context, websiteID string, year int) (repo.SalesSummary, error) {
	args := m.Called(ctx, websiteID, year)
	s, _ := args.Get(0).(repo.SalesSummary)
	return s, args.Error(1)
}

func (m *RevenueRepoMock) TotalRevenue(ctx context.Context, websiteID string) (decimal.Decimal, error) {
	args := m.Called(ctx, websiteID)
	d, _ := args.Get(0).(decimal.Decimal)
	return d, args.Error(1)
}

func (m *RevenueRepoMock) TotalSalesCount(ctx context.Context, websiteID string) (int64, error) {
	args := m.Called(ctx, websiteID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RevenueRepoMock) LatestOrderLines(ctx context.Context, websiteID string, limit int) ([]repo.LatestOrderLine, error) {
	args := m.Called(ctx, websiteID, limit)
	lines, _ := args.Get(0).([]repo.LatestOrderLine)
	return lines, args.Error(1)
}

func (m *RevenueRepoMock) BestSellingItems(ctx context.Context, websiteID string, limit int) ([]repo.BestSellingItem, error) {
	args := m.Called(ctx, websiteID, limit)
	items, _ := args.Get(0).([]repo.BestSellingItem)
	return items, args.Error(1)
}
