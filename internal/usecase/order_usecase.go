package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// コミット前に必ず打ち切るデッドライン。途中までの注文は残さない
const checkoutTimeout = 10 * time.Second

type OrderUsecase struct {
	tx    repo.TransactionManager
	idGen IDGenerator
	clock Clock
}

func NewOrderUsecase(tx repo.TransactionManager, idGen IDGenerator, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, idGen: idGen, clock: clock}
}

type PlaceOrderInput struct {
	WebsiteID      string
	IdempotencyKey string
}

type OrderItemOutput struct {
	ItemID   string          `json:"item_id"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type OrderOutput struct {
	ID         string            `json:"id"`
	WebsiteID  string            `json:"website_id"`
	BuyerID    string            `json:"buyer_id"`
	Status     string            `json:"status"`
	TotalPrice decimal.Decimal   `json:"total_price"`
	CreatedAt  time.Time         `json:"created_at"`
	Items      []OrderItemOutput `json:"items"`
}

// PlaceOrder はカートを注文に変換する。
// ヘッダと明細は1トランザクションで書き、失敗したら何も残さない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, buyerID string, in PlaceOrderInput) (OrderOutput, error) {
	if buyerID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.WebsiteID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid website_id")
	}

	//二重送信対策キー。クライアントが送らなければ生成する
	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}
	if key == "" {
		key = u.idGen.NewID()
	}

	//コミット前に打ち切るためのデッドライン
	ctx, cancel := context.WithTimeout(ctx, checkoutTimeout)
	defer cancel()

	var out OrderOutput

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, buyerID, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(existing, items)
			return nil
		}

		//カート明細取得
		cartLines, err := r.CartItems().ListByBuyerID(ctx, buyerID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartLines) == 0 {
			return NewHTTPError(http.StatusNotFound, "cart is empty")
		}

		//注文全体で処理時刻は1つ。明細ごとに時刻を取り直さない
		now := u.clock.Now().UTC()

		orderItems := make([]model.OrderItem, 0, len(cartLines))
		total := decimal.Zero

		for _, line := range cartLines {
			item, err := r.Items().FindByID(ctx, line.ItemID)
			if errors.Is(err, repo.ErrNotFound) {
				//削除済み商品が混ざっていたら注文全体を中止
				return NewHTTPError(http.StatusNotFound, "item not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			//別テナントの商品は混ぜられない
			if item.WebsiteID != in.WebsiteID {
				return NewHTTPError(http.StatusBadRequest, "item not in this website")
			}

			//スナップショット。priceは行合計で凍結する
			unit := ResolveUnitPrice(item, now)
			lineTotal := unit.Mul(decimal.NewFromInt(line.Quantity))
			total = total.Add(lineTotal)

			orderItems = append(orderItems, model.OrderItem{
				ItemID:   line.ItemID,
				Quantity: line.Quantity,
				Price:    lineTotal,
			})
		}

		order := model.Order{
			ID:             u.idGen.NewID(),
			WebsiteID:      in.WebsiteID,
			BuyerID:        buyerID,
			Status:         model.OrderStatusPending,
			TotalPrice:     total,
			IdempotencyKey: key,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			//競合（同時で同じキーが入った等）はもう一回検索して同じ結果を返す
			ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, buyerID, key)
			if err2 == nil && found2 {
				items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
				if err3 != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				out = toOrderOutput(ex2, items2)
				return nil
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートはここでは消さない（クリアは外部の責務）
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		//デッドライン超過はタイムアウトとして返す（部分的な注文は残っていない）
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return OrderOutput{}, NewHTTPError(http.StatusGatewayTimeout, "checkout timeout")
		}
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetMyOrder(ctx context.Context, buyerID string, orderID string) (OrderOutput, error) {
	if buyerID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.BuyerID != buyerID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, buyerID string) ([]OrderOutput, error) {
	if buyerID == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByBuyerID(ctx, buyerID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// PendingOrder は買い手のPending注文（先頭1件）を返す。無ければ404。
func (u *OrderUsecase) PendingOrder(ctx context.Context, buyerID string) (OrderOutput, error) {
	if buyerID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindPendingByBuyerID(ctx, buyerID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ItemID:   it.ItemID,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	return OrderOutput{
		ID:         o.ID,
		WebsiteID:  o.WebsiteID,
		BuyerID:    o.BuyerID,
		Status:     string(o.Status),
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt,
		Items:      outItems,
	}
}
