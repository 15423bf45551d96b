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

// カタログ商品のうち、このコアが触るのは価格と割引だけ。
// 作成・割引はプランポリシー（外部）に先に問い合わせる。
type ItemUsecase struct {
	itemRepo   repo.ItemRepository
	auditRepo  repo.AuditLogRepository
	planPolicy PlanPolicy
	idGen      IDGenerator
	clock      Clock
}

func NewItemUsecase(
	itemRepo repo.ItemRepository,
	auditRepo repo.AuditLogRepository,
	planPolicy PlanPolicy,
	idGen IDGenerator,
	clock Clock,
) *ItemUsecase {
	return &ItemUsecase{
		itemRepo:   itemRepo,
		auditRepo:  auditRepo,
		planPolicy: planPolicy,
		idGen:      idGen,
		clock:      clock,
	}
}

type CreateItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

type UpdateDiscountInput struct {
	Active    bool
	Price     decimal.Decimal
	ExpiresAt *time.Time
}

type UpdatePriceInput struct {
	Price decimal.Decimal
}

func (u *ItemUsecase) CreateItem(ctx context.Context, websiteID string, in CreateItemInput) (model.Item, error) {
	if websiteID == "" {
		return model.Item{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 255 {
		return model.Item{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.Price.IsNegative() {
		return model.Item{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	//プラン上限チェック（外部ポリシー）
	count, err := u.itemRepo.CountByWebsiteID(ctx, websiteID)
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.planPolicy.CanCreateItem(ctx, websiteID, count); err != nil {
		return model.Item{}, NewHTTPError(http.StatusForbidden, "plan limit reached")
	}

	item, err := u.itemRepo.Create(ctx, model.Item{
		ID:          u.idGen.NewID(),
		WebsiteID:   websiteID,
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
	})
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

func (u *ItemUsecase) GetItem(ctx context.Context, itemID string) (model.Item, error) {
	if itemID == "" {
		return model.Item{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Item{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Item{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

// UpdateDiscount は割引の有効化・解除。
// 有効化は割引価格が必須で、プランポリシーに先に問い合わせる。
func (u *ItemUsecase) UpdateDiscount(ctx context.Context, actorSellerID string, websiteID string, itemID string, in UpdateDiscountInput) error {
	if actorSellerID == "" || websiteID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//他テナントの商品は「存在しない扱い」にする
	if item.WebsiteID != websiteID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if in.Active {
		if !in.Price.IsPositive() {
			return NewHTTPError(http.StatusBadRequest, "invalid discount_price")
		}
		if err := u.planPolicy.CanActivateDiscount(ctx, websiteID); err != nil {
			return NewHTTPError(http.StatusForbidden, "discount not allowed by plan")
		}
	}

	patch := repo.ItemDiscountPatch{
		Active:    in.Active,
		Price:     in.Price,
		ExpiresAt: in.ExpiresAt,
	}
	if err := u.itemRepo.UpdateDiscount(ctx, itemID, patch); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// ★監査ログ（UPDATE_ITEM_DISCOUNT）
	beforeJSON := `{"discount_active":` + boolJSON(item.DiscountActive) + `,"discount_price":"` + item.DiscountPrice.String() + `"}`
	afterJSON := `{"discount_active":` + boolJSON(in.Active) + `,"discount_price":"` + in.Price.String() + `"}`
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorSellerID,
		Action:       model.AuditActionUpdateItemDiscount,
		ResourceType: model.AuditResourceItem,
		ResourceID:   itemID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    u.clock.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

func (u *ItemUsecase) UpdatePrice(ctx context.Context, websiteID string, itemID string, in UpdatePriceInput) error {
	if websiteID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if itemID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if !in.Price.IsPositive() {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	item, err := u.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.WebsiteID != websiteID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.itemRepo.UpdatePrice(ctx, itemID, in.Price); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func boolJSON(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
