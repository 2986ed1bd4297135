// Package pipeline 把推荐结果的后处理拆成可组合的 Node 链：
// 推荐编排层产出原始结果后，依次经过 上架过滤 → 规则过滤 → TopN 截断
// 等节点，每个节点都可以按业务配置插拔。
package pipeline

import (
	"context"

	"github.com/rushteam/shopkit/core"
)

// Pipeline 是后处理链：把推荐结果依次交给每个 Node 处理。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	recs []core.Recommendation,
) ([]core.Recommendation, error) {
	cur := recs
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
