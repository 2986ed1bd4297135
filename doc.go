// Package shopkit 是一个电商推荐引擎工具包（Shop Recommender Kit）。
//
// 设计要点：
// - 会话优先: 以匿名会话（而非登录用户）为推荐主体，交互即信号（view/like/dislike/purchase）
// - 全量重训: 交互日志 → 聚合矩阵 → 余弦相似度，训练态整体原子替换，读写互不阻塞
// - 永不空手: 冷启动与未知会话/商品退化为 热门/同类目 兜底，读路径不返回错误
// - 可插拔后处理: 推荐结果经 Node 串联的 Pipeline（Filter → ReRank）做规则过滤与重排
package shopkit

import "github.com/rushteam/shopkit/pipeline"

// 轻量 facade：便于用户直接 import "shopkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
