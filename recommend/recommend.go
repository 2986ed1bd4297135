package recommend

import (
	"context"
	"sort"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/similarity"
)

// RecommendForSession 为会话生成最多 n 条推荐（n<=0 取 DefaultN）。
//
// 未训练时先做一次惰性训练；会话不在训练数据中（或仍无训练态）时
// 退化为热门兜底。任何失败都已在内部记录日志并退化为空结果，
// 读路径不向调用方暴露错误。
func (s *Service) RecommendForSession(ctx context.Context, sessionID string, n int) []core.Recommendation {
	if n <= 0 {
		n = s.cfg.DefaultN
	}

	snap := s.ensureTrained(ctx)

	var recs []core.Recommendation
	row, seen := -1, false
	if snap != nil {
		row, seen = snap.data.SessionIndex[sessionID]
	}
	if !seen {
		recs = s.popularityFallback(ctx, n)
	} else {
		scored := similarity.TopN(snap.data.Matrix, snap.userSim, row, n, s.cfg.NeighborK)
		recs = make([]core.Recommendation, 0, len(scored))
		for _, sc := range scored {
			productID := snap.data.Products[sc.Col]
			if !s.productActive(ctx, productID) {
				continue
			}
			recs = append(recs, core.Recommendation{
				ProductID: productID,
				Score:     sc.Score,
				Reason:    core.ReasonCollaborative,
			})
		}
	}

	rctx := &core.RecommendContext{SessionID: sessionID, N: n}
	return s.postProcess(ctx, rctx, recs)
}

// SimilarToProduct 返回与给定商品最相似的最多 n 个商品（n<=0 取
// DefaultN）。商品不在训练数据中时退化为同类目兜底；商品本身不存在
// 时返回空。
func (s *Service) SimilarToProduct(ctx context.Context, productID string, n int) []core.Recommendation {
	if n <= 0 {
		n = s.cfg.DefaultN
	}

	snap := s.ensureTrained(ctx)

	col, seen := -1, false
	if snap != nil {
		col, seen = snap.data.ProductIndex[productID]
	}

	var recs []core.Recommendation
	if !seen {
		recs = s.categoryFallback(ctx, productID, n)
	} else {
		recs = s.similarByItemSim(ctx, snap, col, n)
	}

	rctx := &core.RecommendContext{ProductID: productID, N: n}
	return s.postProcess(ctx, rctx, recs)
}

// similarByItemSim 在物品相似度矩阵的一行里取相似度最高的 n 个其他
// 商品。只保留相似度为正的候选，相同相似度按列下标升序保证确定性。
func (s *Service) similarByItemSim(ctx context.Context, snap *model, col, n int) []core.Recommendation {
	sims := snap.itemSim[col]
	cands := make([]similarity.Scored, 0, len(sims))
	for j, sim := range sims {
		if j == col || sim <= 0 {
			continue
		}
		cands = append(cands, similarity.Scored{Col: j, Score: sim})
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].Score != cands[b].Score {
			return cands[a].Score > cands[b].Score
		}
		return cands[a].Col < cands[b].Col
	})
	if len(cands) > n {
		cands = cands[:n]
	}

	recs := make([]core.Recommendation, 0, len(cands))
	for _, c := range cands {
		productID := snap.data.Products[c.Col]
		if !s.productActive(ctx, productID) {
			continue
		}
		recs = append(recs, core.Recommendation{
			ProductID: productID,
			Score:     c.Score,
			Reason:    core.ReasonItemSimilarity,
		})
	}
	return recs
}

// popularityFallback 按交互次数排行返回活跃商品，排行覆盖不足 n 个
// 时用剩余活跃商品（按 ID 升序）补齐。兜底分数统一为 1.0。
func (s *Service) popularityFallback(ctx context.Context, n int) []core.Recommendation {
	products, err := s.catalog.ListActiveProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("popularity fallback: list products failed")
		return nil
	}
	active := make(map[string]bool, len(products))
	for _, p := range products {
		active[p.ID] = true
	}

	ranked, err := s.log.MostInteracted(ctx, -1)
	if err != nil {
		s.logger.Warn().Err(err).Msg("popularity fallback: ranking unavailable")
		ranked = nil
	}

	recs := make([]core.Recommendation, 0, n)
	taken := make(map[string]bool, n)
	for _, id := range ranked {
		if len(recs) >= n {
			break
		}
		if !active[id] || taken[id] {
			continue
		}
		taken[id] = true
		recs = append(recs, core.Recommendation{ProductID: id, Score: 1.0, Reason: core.ReasonPopularity})
	}
	// ListActiveProducts 已按 ID 升序，直接顺序补齐
	for _, p := range products {
		if len(recs) >= n {
			break
		}
		if taken[p.ID] {
			continue
		}
		taken[p.ID] = true
		recs = append(recs, core.Recommendation{ProductID: p.ID, Score: 1.0, Reason: core.ReasonPopularity})
	}
	return recs
}

// categoryFallback 返回与给定商品同类目的其他活跃商品。
// 商品不存在时返回空。
func (s *Service) categoryFallback(ctx context.Context, productID string, n int) []core.Recommendation {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if !core.IsNotFound(err) {
			s.logger.Error().Err(err).Str("product", productID).Msg("category fallback: get product failed")
		}
		return nil
	}

	products, err := s.catalog.ListActiveProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("category fallback: list products failed")
		return nil
	}

	recs := make([]core.Recommendation, 0, n)
	for _, cand := range products {
		if len(recs) >= n {
			break
		}
		if cand.ID == productID || cand.Category != p.Category {
			continue
		}
		recs = append(recs, core.Recommendation{ProductID: cand.ID, Score: 1.0, Reason: core.ReasonSameCategory})
	}
	return recs
}

// ensureTrained 返回训练态快照；尚未训练时先做一次惰性训练。
// 训练失败（或无数据）时返回 nil，由调用方走兜底路径。
func (s *Service) ensureTrained(ctx context.Context) *model {
	if snap := s.snapshot(); snap != nil {
		return snap
	}
	if _, err := s.Train(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("lazy training failed")
	}
	return s.snapshot()
}

// postProcess 把推荐结果交给后处理链（过滤、重排）。链失败时
// 记日志并返回未处理的结果，读路径宁可少过滤也不空手而归。
func (s *Service) postProcess(ctx context.Context, rctx *core.RecommendContext, recs []core.Recommendation) []core.Recommendation {
	if s.post == nil || len(recs) == 0 {
		return recs
	}
	out, err := s.post.Run(ctx, rctx, recs)
	if err != nil {
		s.logger.Warn().Err(err).Msg("post-processing pipeline failed, returning raw results")
		return recs
	}
	return out
}

func (s *Service) productActive(ctx context.Context, id string) bool {
	p, err := s.catalog.GetProduct(ctx, id)
	return err == nil && p.Active
}
