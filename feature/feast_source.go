package feature

import (
	"context"
	"fmt"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/rushteam/shopkit/core"
)

// FeastSource 从 Feast Feature Store 在线读取预计算的商品特征。
//
// 使用场景：内容特征由离线任务（embedding、统计特征等）预先算好并
// 物化到 Feast 在线存储，服务端训练时直接按商品 ID 批量拉取，
// 替代本地 TF-IDF 计算。
//
// 实体轴是商品 ID（entity name 默认 "product_id"），
// 特征引用形如 "product_stats:price_norm"、"product_embedding:dim_0"。
type FeastSource struct {
	client *feastsdk.GrpcClient

	// Project Feast 项目名称
	Project string

	// FeatureRefs 要拉取的特征引用列表，决定特征向量的列序
	FeatureRefs []string

	// EntityName 实体名，默认 "product_id"
	EntityName string
}

// NewFeastSource 创建 Feast 特征来源，连接 Feast Feature Server 的 gRPC 端口。
func NewFeastSource(host string, port int, project string, featureRefs []string) (*FeastSource, error) {
	if port == 0 {
		port = 6565 // Feast 默认 gRPC 端口
	}
	if len(featureRefs) == 0 {
		return nil, fmt.Errorf("feast source: feature refs are required")
	}

	client, err := feastsdk.NewGrpcClient(host, port)
	if err != nil {
		return nil, fmt.Errorf("feast source: connect %s:%d: %w", host, port, err)
	}

	return &FeastSource{
		client:      client,
		Project:     project,
		FeatureRefs: featureRefs,
		EntityName:  "product_id",
	}, nil
}

// Name 实现 Source 接口
func (s *FeastSource) Name() string { return "feature.feast" }

// Features 实现 Source 接口：按商品 ID 批量拉取在线特征。
// 返回矩阵的行序与 products 一致，列序与 FeatureRefs 一致；
// 缺失或非数值的特征填 0。
func (s *FeastSource) Features(ctx context.Context, products []core.Product) ([][]float64, error) {
	if len(products) == 0 {
		return nil, nil
	}

	entityName := s.EntityName
	if entityName == "" {
		entityName = "product_id"
	}

	entities := make([]feastsdk.Row, len(products))
	for i, p := range products {
		entities[i] = feastsdk.Row{entityName: feastsdk.StrVal(p.ID)}
	}

	resp, err := s.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: s.FeatureRefs,
		Entities: entities,
		Project:  s.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("feast source: get online features: %w", err)
	}

	rows := resp.Rows()
	if len(rows) != len(products) {
		return nil, fmt.Errorf("feast source: response row count mismatch: want %d, got %d", len(products), len(rows))
	}

	out := make([][]float64, len(rows))
	for i, row := range rows {
		vec := make([]float64, len(s.FeatureRefs))
		for j, ref := range s.FeatureRefs {
			if val, ok := row[ref]; ok {
				if f, ok := scalarValue(val); ok {
					vec[j] = f
				}
			}
		}
		out[i] = vec
	}
	return out, nil
}

// Close 释放 gRPC 连接
func (s *FeastSource) Close() error {
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

// scalarValue 把 Feast 的 Value 转为 float64，非数值类型返回 false。
func scalarValue(v *feasttypes.Value) (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch x := v.GetVal().(type) {
	case *feasttypes.Value_DoubleVal:
		return x.DoubleVal, true
	case *feasttypes.Value_FloatVal:
		return float64(x.FloatVal), true
	case *feasttypes.Value_Int64Val:
		return float64(x.Int64Val), true
	case *feasttypes.Value_Int32Val:
		return float64(x.Int32Val), true
	case *feasttypes.Value_BoolVal:
		if x.BoolVal {
			return 1.0, true
		}
		return 0.0, true
	default:
		return 0, false
	}
}

var _ Source = (*FeastSource)(nil)
