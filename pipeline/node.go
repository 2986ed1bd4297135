package pipeline

import (
	"context"

	"github.com/rushteam/shopkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合约束的结果
	KindReRank Kind = "rerank" // 重排阶段：在结果上做排序/截断/业务调优
)

// Node 是后处理 Pipeline 的最小可扩展单元。
// 统一采用"输入 recommendations -> 输出 recommendations"的形态，
// 方便 Filter 剔除、ReRank 重排/截断等操作。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		recs []core.Recommendation,
	) ([]core.Recommendation, error)
}
