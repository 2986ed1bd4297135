// Package recommend 是推荐编排层：持有训练态（交互矩阵、两个相似度
// 矩阵、ID 映射、内容特征），对外暴露"给会话推荐"与"相似商品"两个
// 读操作，并在数据不足时退化到 热门/同类目 兜底策略。
//
// 训练态由本包独占：只有 Train 会替换它，替换是原子的——读者要么
// 看到完整的旧状态，要么看到完整的新状态，绝不会看到新矩阵配旧映射。
package recommend

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/dataset"
	"github.com/rushteam/shopkit/feature"
	"github.com/rushteam/shopkit/pipeline"
	"github.com/rushteam/shopkit/similarity"
)

// 默认参数
const (
	DefaultNeighborK    = 10 // 评分预测考虑的近邻数
	DefaultRetrainEvery = 50 // 每 50 条交互触发一次重训
	DefaultN            = 5  // 默认返回的推荐数量
)

// Config 是编排层的可调参数，零值字段取默认值。
type Config struct {
	NeighborK    int
	RetrainEvery int
	DefaultN     int
}

// Deps 是编排层的外部协作方。Catalog 与 Log 必填；
// Features 与 Post 可选（内容特征来源、结果后处理链）。
type Deps struct {
	Catalog  core.Catalog
	Log      core.InteractionLog
	Features feature.Source
	Post     *pipeline.Pipeline
	Logger   zerolog.Logger
}

// model 是一次训练产出的完整状态。整体替换，各字段之间的
// 下标约定只在同一个 model 内成立。
type model struct {
	data      *dataset.Dataset
	userSim   [][]float64
	itemSim   [][]float64
	content   [][]float64
	trainedAt time.Time
	version   uint64
}

// Service 是推荐编排服务。
type Service struct {
	catalog  core.Catalog
	log      core.InteractionLog
	features feature.Source
	post     *pipeline.Pipeline
	cfg      Config
	logger   zerolog.Logger

	mu    sync.RWMutex // 只保护 state 指针的读写，不覆盖训练计算
	state *model
}

// NewService 创建推荐编排服务。
func NewService(deps Deps, cfg Config) *Service {
	if cfg.NeighborK <= 0 {
		cfg.NeighborK = DefaultNeighborK
	}
	if cfg.RetrainEvery <= 0 {
		cfg.RetrainEvery = DefaultRetrainEvery
	}
	if cfg.DefaultN <= 0 {
		cfg.DefaultN = DefaultN
	}
	return &Service{
		catalog:  deps.Catalog,
		log:      deps.Log,
		features: deps.Features,
		post:     deps.Post,
		cfg:      cfg,
		logger:   deps.Logger.With().Str("service", "recommend").Logger(),
	}
}

// Train 重建训练态：全量读取交互日志 → 聚合矩阵 → 并发计算两个
// 相似度矩阵与内容特征 → 原子替换状态。
//
// 返回 (false, nil) 表示交互日志为空，属于正常的 Untrained 状态；
// 错误只在存储读取失败时返回。
func (s *Service) Train(ctx context.Context) (bool, error) {
	events, err := s.log.ListInteractions(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("training aborted: list interactions failed")
		return false, err
	}

	ds := dataset.Build(events)
	if ds == nil {
		s.logger.Warn().Msg("no interaction data available for training")
		return false, nil
	}

	var (
		userSim [][]float64
		itemSim [][]float64
		content [][]float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		userSim = similarity.CosineMatrix(ds.Matrix)
		return nil
	})
	g.Go(func() error {
		itemSim = similarity.ItemCosineMatrix(ds.Matrix)
		return nil
	})
	if s.features != nil {
		// 内容特征是 best-effort：失败只记日志，不阻塞协同过滤训练
		g.Go(func() error {
			products, err := s.catalog.ListActiveProducts(gctx)
			if err != nil {
				s.logger.Warn().Err(err).Msg("content features skipped: list products failed")
				return nil
			}
			feats, err := s.features.Features(gctx, products)
			if err != nil {
				s.logger.Warn().Err(err).Str("source", s.features.Name()).
					Msg("content features skipped: source failed")
				return nil
			}
			content = feats
			return nil
		})
	}
	_ = g.Wait() // 各分支都自行吞错，这里不会有错误

	s.mu.Lock()
	version := uint64(1)
	if s.state != nil {
		version = s.state.version + 1
	}
	s.state = &model{
		data:      ds,
		userSim:   userSim,
		itemSim:   itemSim,
		content:   content,
		trainedAt: time.Now(),
		version:   version,
	}
	s.mu.Unlock()

	s.logger.Info().
		Int("sessions", len(ds.Sessions)).
		Int("products", len(ds.Products)).
		Uint64("version", version).
		Msg("model trained")
	return true, nil
}

// RecordInteraction 校验商品存在后落盘一条交互事件；事件总数达到
// 重训阈值的整数倍时同步触发 Train。
//
// 重训失败只记日志不返回错误：交互此时已经持久化，
// 记录与训练是两个独立的失败域。
func (s *Service) RecordInteraction(ctx context.Context, sessionID, productID string, kind core.InteractionKind) error {
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return err
	}

	if err := s.log.UpsertInteraction(ctx, sessionID, productID, kind, time.Now()); err != nil {
		return err
	}

	count, err := s.log.CountInteractions(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("count interactions failed, retrain check skipped")
		return nil
	}
	if count > 0 && count%int64(s.cfg.RetrainEvery) == 0 {
		if _, err := s.Train(ctx); err != nil {
			s.logger.Error().Err(err).Int64("count", count).Msg("threshold retraining failed")
		}
	}
	return nil
}

// Trained 返回当前是否处于已训练状态。
func (s *Service) Trained() bool {
	return s.snapshot() != nil
}

// Version 返回训练态的版本号，未训练时为 0。每次成功重训 +1。
func (s *Service) Version() uint64 {
	if snap := s.snapshot(); snap != nil {
		return snap.version
	}
	return 0
}

// TrainedAt 返回最近一次成功训练的时间，未训练时为零值。
func (s *Service) TrainedAt() time.Time {
	if snap := s.snapshot(); snap != nil {
		return snap.trainedAt
	}
	return time.Time{}
}

// snapshot 取当前训练态的读快照。调用方在整个请求中只使用
// 这一个快照，保证不会混用不同训练批次的矩阵与映射。
func (s *Service) snapshot() *model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
