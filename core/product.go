package core

import "context"

// Product 是商品目录中的一条商品记录。
// 推荐链路只读取商品的文本字段（名称/描述/类目）与价格，
// 上架状态（Active）决定商品是否可以出现在推荐结果中。
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Active      bool    `json:"active"`
}

// Catalog 是商品目录的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 推荐引擎只通过这个窄接口读取目录，不关心目录的存储形态
//
// 实现：
//   - store.CatalogAdapter（基于 KeyValueStore，支持 Memory/Redis）
//   - 业务方也可以用自己的 DB 模型实现此接口
type Catalog interface {
	// ListActiveProducts 返回所有上架商品
	ListActiveProducts(ctx context.Context) ([]Product, error)

	// GetProduct 按 ID 获取商品；不存在时返回 ErrProductNotFound
	GetProduct(ctx context.Context, id string) (*Product, error)
}
