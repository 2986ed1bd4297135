package filter

import (
	"context"

	"github.com/rushteam/shopkit/core"
)

// Active 是上架过滤器：剔除目录中不存在或已下架的商品。
// 训练态里的商品在下一次重训前可能已经下架，读路径必须兜住。
type Active struct {
	Catalog core.Catalog
}

func (f *Active) Name() string {
	return "filter.active"
}

func (f *Active) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	rec core.Recommendation,
) (bool, error) {
	p, err := f.Catalog.GetProduct(ctx, rec.ProductID)
	if err != nil {
		if core.IsNotFound(err) {
			return true, nil
		}
		return false, err
	}
	return !p.Active, nil
}
