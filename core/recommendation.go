package core

// 推荐理由标签。Reason 记录一条推荐结果出自哪条策略，
// 用于 explain / 观测 / 上层展示（"猜你喜欢" vs "看了又看" vs "热门"）。
const (
	ReasonCollaborative  = "collaborative_filtering" // 协同过滤
	ReasonItemSimilarity = "item_similarity"         // 物品相似度
	ReasonPopularity     = "popularity"              // 热门兜底
	ReasonSameCategory   = "same_category"           // 同类目兜底
)

// Recommendation 是推荐链路中的统一承载结构：商品、分数、理由。
// Score 用于排序决策；Reason 用于解释与策略驱动。
type Recommendation struct {
	ProductID string  `json:"product_id"`
	Score     float64 `json:"score"`
	Reason    string  `json:"reason"`
}

// RecommendContext 承载一次推荐请求的上下文，贯穿后处理 Pipeline 透传。
type RecommendContext struct {
	// SessionID 是匿名访客标识，作为推荐的"用户"轴
	SessionID string

	// ProductID 在"相似商品"请求中是种子商品 ID
	ProductID string

	// N 是期望返回的结果数量
	N int

	// Params 请求级上下文参数（设备类型、页面场景等），
	// 规则过滤器（filter.Expr）可以引用
	Params map[string]any
}
