package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 表示用日付はUTCのまま整形する
type displayDateFormatter struct{}

func (f *displayDateFormatter) Format(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// PLAN_MAX_ITEMS で商品数の上限を決める（0は無制限）。割引は常に許可
type envPlanPolicy struct {
	maxItems int64
}

func newEnvPlanPolicy() *envPlanPolicy {
	maxItems := int64(0)
	if v := os.Getenv("PLAN_MAX_ITEMS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("PLAN_MAX_ITEMS is not a number, ignoring: %v", err)
		} else {
			maxItems = n
		}
	}
	return &envPlanPolicy{maxItems: maxItems}
}

func (p *envPlanPolicy) CanCreateItem(_ context.Context, websiteID string, currentCount int64) error {
	if p.maxItems > 0 && currentCount >= p.maxItems {
		return fmt.Errorf("website %s reached item limit %d", websiteID, p.maxItems)
	}
	return nil
}

func (p *envPlanPolicy) CanActivateDiscount(_ context.Context, _ string) error {
	return nil
}

func main() {
	//.envがなければ環境変数だけで動かす
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Website{},
		&model.Item{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	itemRepo := infraRepo.NewItemGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	revenueRepo := infraRepo.NewRevenueGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	dates := &displayDateFormatter{}
	plan := newEnvPlanPolicy()

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(txManager, idGen, clock)
	sellerOrderUC := usecase.NewSellerOrderUsecase(txManager, auditRepo, clock)
	cartUC := usecase.NewCartUsecase(cartItemRepo, itemRepo, idGen, clock)
	itemUC := usecase.NewItemUsecase(itemRepo, auditRepo, plan, idGen, clock)
	analyticsUC := usecase.NewAnalyticsUsecase(revenueRepo, dates)

	//Handler生成
	orderH := handler.NewOrderHandler(orderUC)
	sellerOrderH := handler.NewSellerOrderHandler(sellerOrderUC)
	cartH := handler.NewCartHandler(cartUC)
	itemH := handler.NewItemHandler(itemUC)
	analyticsH := handler.NewAnalyticsHandler(analyticsUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	e := server.New(cfg, orderH, sellerOrderH, cartH, itemH, analyticsH)
	if err := server.Start(e, addr); err != nil {
		panic(err)
	}
}
