package store

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/rushteam/shopkit/core"
)

// CatalogAdapter 是基于 core.KeyValueStore 的商品目录适配器，
// 实现 core.Catalog 接口。
//
// 存储布局：
//   - 商品 Hash：{KeyPrefix}:products，field = 商品 ID，value = 商品 JSON
type CatalogAdapter struct {
	store core.KeyValueStore

	// KeyPrefix 是存储 key 的前缀
	KeyPrefix string
}

// NewCatalogAdapter 创建商品目录适配器。
func NewCatalogAdapter(s core.KeyValueStore, keyPrefix string) *CatalogAdapter {
	if keyPrefix == "" {
		keyPrefix = "shop"
	}
	return &CatalogAdapter{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

func (a *CatalogAdapter) productsKey() string {
	return a.KeyPrefix + ":products"
}

// PutProduct 写入/更新一个商品（目录维护入口，供导入与后台使用）。
func (a *CatalogAdapter) PutProduct(ctx context.Context, p core.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return a.store.HSet(ctx, a.productsKey(), p.ID, data)
}

// DeleteProduct 从目录中删除一个商品。
func (a *CatalogAdapter) DeleteProduct(ctx context.Context, id string) error {
	return a.store.HDel(ctx, a.productsKey(), id)
}

// GetProduct 实现 core.Catalog 接口。
func (a *CatalogAdapter) GetProduct(ctx context.Context, id string) (*core.Product, error) {
	data, err := a.store.HGet(ctx, a.productsKey(), id)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrProductNotFound
		}
		return nil, err
	}

	var p core.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListActiveProducts 实现 core.Catalog 接口。
// 结果按商品 ID 排序，保证同一目录状态下输出稳定。
func (a *CatalogAdapter) ListActiveProducts(ctx context.Context) ([]core.Product, error) {
	all, err := a.store.HGetAll(ctx, a.productsKey())
	if err != nil {
		return nil, err
	}

	out := make([]core.Product, 0, len(all))
	for _, data := range all {
		var p core.Product
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		if p.Active {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ core.Catalog = (*CatalogAdapter)(nil)
