// Package rerank 提供推荐结果的重排节点。
package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/pipeline"
)

// TopN 是 Top-N 截断节点：按分数降序稳定排序后截取前 N 个结果。
// 通常放在后处理 Pipeline 的末尾，用于控制返回结果数量。
//
// N <= 0 时使用请求上下文里的 RecommendContext.N；
// 两者都没有给出时不截断。
type TopN struct {
	N int
}

func (n *TopN) Name() string {
	return "rerank.topn"
}

func (n *TopN) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopN) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	recs []core.Recommendation,
) ([]core.Recommendation, error) {
	limit := n.N
	if limit <= 0 && rctx != nil {
		limit = rctx.N
	}

	// 在副本上排序：入参切片保持原序，后续节点失败时
	// 编排层还要原样返回未处理的结果
	out := make([]core.Recommendation, len(recs))
	copy(out, recs)

	// 稳定排序：分数相等时保持上游给出的顺序
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if limit <= 0 || len(out) <= limit {
		return out, nil
	}
	return out[:limit], nil
}

var _ pipeline.Node = (*TopN)(nil)
