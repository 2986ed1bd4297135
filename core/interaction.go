package core

import (
	"context"
	"time"
)

// InteractionKind 表示一次会话-商品交互的类型。
type InteractionKind string

const (
	KindView     InteractionKind = "view"     // 浏览
	KindLike     InteractionKind = "like"     // 喜欢
	KindDislike  InteractionKind = "dislike"  // 不喜欢
	KindPurchase InteractionKind = "purchase" // 购买
)

// Weight 返回交互类型对应的评分权重。
// 权重是固定映射：view=1.0 / like=3.0 / dislike=-2.0 / purchase=5.0，
// 未知类型按 view 处理（1.0）。
func (k InteractionKind) Weight() float64 {
	switch k {
	case KindView:
		return 1.0
	case KindLike:
		return 3.0
	case KindDislike:
		return -2.0
	case KindPurchase:
		return 5.0
	default:
		return 1.0
	}
}

// Interaction 是一条交互事件：某个会话在某个时间点对某个商品做了某种交互。
// 事件一旦记录即不可变，唯一的例外是同一 (session, product, kind)
// 重复发生时刷新 Timestamp。
type Interaction struct {
	SessionID string          `json:"session_id"`
	ProductID string          `json:"product_id"`
	Kind      InteractionKind `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
}

// InteractionLog 是交互日志的领域接口。
//
// 训练时全量读取事件重建交互矩阵；写入采用 upsert 语义：
// (session, product, kind) 相同的事件只刷新时间戳，不产生重复记录。
type InteractionLog interface {
	// ListInteractions 返回全部交互事件（训练输入）
	ListInteractions(ctx context.Context) ([]Interaction, error)

	// CountInteractions 返回日志中的事件条数（upsert 去重后的条数）
	CountInteractions(ctx context.Context) (int64, error)

	// UpsertInteraction 写入一条交互事件；重复事件只刷新时间戳
	UpsertInteraction(ctx context.Context, sessionID, productID string, kind InteractionKind, ts time.Time) error

	// MostInteracted 按交互总次数降序返回前 n 个商品 ID（热门兜底用）；
	// n < 0 返回完整排行
	MostInteracted(ctx context.Context, n int) ([]string, error)
}
