package usecase

import (
	"context"
	"time"
)

// 現在時刻。テストで差し替える
type Clock interface {
	Now() time.Time
}

// ID生成（UUID）。テストで差し替える
type IDGenerator interface {
	NewID() string
}

// 表示用の日付文字列を作る外部コラボレータ。
// ロケールや暦の変換はこの実装側の責務で、コアは関与しない。
type DateFormatter interface {
	Format(t time.Time) string
}

// プラン上限の判断をする外部コラボレータ。
// カタログ変更の前に問い合わせるだけで、注文経路では使わない。
type PlanPolicy interface {
	CanCreateItem(ctx context.Context, websiteID string, currentCount int64) error
	CanActivateDiscount(ctx context.Context, websiteID string) error
}
