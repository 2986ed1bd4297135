package filter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/shopkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv 获取或创建 CEL 环境，定义规则可引用的变量
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("rec", cel.DynType),
			cel.Variable("product", cel.DynType),
			cel.Variable("params", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Expr 是 CEL (Common Expression Language) 规则过滤器，
// 用于运营/商品化规则的配置化下发，表达式返回 true 表示保留。
//
// 可引用的变量：
//   - rec：推荐结果，字段 product_id / score / reason
//   - product：商品，字段 id / name / category / price / active
//   - params：请求级上下文参数（RecommendContext.Params）
//
// 示例：
//   - `product.price < 500.0` → 只保留低价商品
//   - `product.category != "Adult"` → 屏蔽某类目
//   - `rec.reason == "popularity" || rec.score > 0.5` → 低分结果只留热门
type Expr struct {
	// Catalog 用于取出商品字段供表达式引用（可选；缺省时 product 为空 map）
	Catalog core.Catalog

	expr string
	prg  cel.Program
}

// NewExpr 创建规则过滤器。表达式编译一次并缓存，可以多次求值。
func NewExpr(expr string, catalog core.Catalog) (*Expr, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile rule %q: %w", expr, iss.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program rule %q: %w", expr, err)
	}

	return &Expr{Catalog: catalog, expr: expr, prg: prg}, nil
}

func (f *Expr) Name() string {
	return "filter.expr"
}

func (f *Expr) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	rec core.Recommendation,
) (bool, error) {
	product := map[string]any{}
	if f.Catalog != nil {
		if p, err := f.Catalog.GetProduct(ctx, rec.ProductID); err == nil {
			product = map[string]any{
				"id":       p.ID,
				"name":     p.Name,
				"category": p.Category,
				"price":    p.Price,
				"active":   p.Active,
			}
		}
	}

	params := map[string]any{}
	if rctx != nil && rctx.Params != nil {
		params = rctx.Params
	}

	out, _, err := f.prg.Eval(map[string]any{
		"rec": map[string]any{
			"product_id": rec.ProductID,
			"score":      rec.Score,
			"reason":     rec.Reason,
		},
		"product": product,
		"params":  params,
	})
	if err != nil {
		return false, fmt.Errorf("eval rule %q: %w", f.expr, err)
	}

	keep, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule %q did not evaluate to bool", f.expr)
	}
	return !keep, nil
}
