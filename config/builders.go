package config

import (
	"fmt"

	"github.com/rushteam/shopkit/filter"
	"github.com/rushteam/shopkit/pipeline"
	"github.com/rushteam/shopkit/pkg/conv"
	"github.com/rushteam/shopkit/rerank"
)

// 内置 Node 的构建器注册。
func init() {
	Register("filter.active", buildActiveFilterNode)
	Register("filter.expr", buildExprFilterNode)
	Register("rerank.topn", buildTopNNode)
}

func buildActiveFilterNode(deps Deps, _ map[string]any) (pipeline.Node, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("filter.active: catalog is required")
	}
	return &filter.Node{
		Filters: []filter.Filter{&filter.Active{Catalog: deps.Catalog}},
	}, nil
}

func buildExprFilterNode(deps Deps, cfg map[string]any) (pipeline.Node, error) {
	expr := conv.ConfigGet[string](cfg, "expr", "")
	if expr == "" {
		return nil, fmt.Errorf("filter.expr: expr is required")
	}
	f, err := filter.NewExpr(expr, deps.Catalog)
	if err != nil {
		return nil, err
	}
	return &filter.Node{Filters: []filter.Filter{f}}, nil
}

func buildTopNNode(_ Deps, cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopN{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}
