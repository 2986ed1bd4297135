package feature

import (
	"context"

	"github.com/rushteam/shopkit/core"
)

// Source 是商品内容特征的统一来源接口，采用策略模式。
//
// 内容特征在训练中是 best-effort 的：来源失败只会让本次训练
// 缺少内容特征，不会阻塞协同过滤训练。
//
// 实现：
//   - *Vectorizer：本地 TF-IDF + 价格标准化（默认）
//   - *FeastSource：从 Feast Feature Store 在线读取预计算特征
type Source interface {
	// Name 返回来源名称（用于日志/监控）
	Name() string

	// Features 为每个商品产出一行特征向量，行序与 products 一致；
	// 没有商品或没有可用特征时返回 (nil, nil)
	Features(ctx context.Context, products []core.Product) ([][]float64, error)
}

// Name 实现 Source 接口
func (v *Vectorizer) Name() string { return "feature.tfidf" }

// Features 实现 Source 接口（本地计算，忽略 ctx）
func (v *Vectorizer) Features(_ context.Context, products []core.Product) ([][]float64, error) {
	return v.Fit(products), nil
}

var _ Source = (*Vectorizer)(nil)
