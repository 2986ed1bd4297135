package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/shopkit/core"
	"github.com/rushteam/shopkit/store"
)

func TestActive_ShouldFilter(t *testing.T) {
	ctx := context.Background()
	catalog := store.NewCatalogAdapter(store.NewMemoryStore(), "test")
	_ = catalog.PutProduct(ctx, core.Product{ID: "on", Active: true})
	_ = catalog.PutProduct(ctx, core.Product{ID: "off", Active: false})

	f := &Active{Catalog: catalog}

	tests := []struct {
		name      string
		productID string
		want      bool
	}{
		{name: "active product kept", productID: "on", want: false},
		{name: "inactive product filtered", productID: "off", want: true},
		{name: "missing product filtered", productID: "gone", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ShouldFilter(ctx, nil, core.Recommendation{ProductID: tt.productID})
			if err != nil {
				t.Fatalf("ShouldFilter 失败: %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter(%s) = %v，期望 %v", tt.productID, got, tt.want)
			}
		})
	}
}

// dropFilter 按 ID 精确过滤。
type dropFilter struct{ id string }

func (f dropFilter) Name() string { return "drop" }
func (f dropFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, rec core.Recommendation) (bool, error) {
	return rec.ProductID == f.id, nil
}

// errFilter 总是报错。
type errFilter struct{}

func (errFilter) Name() string { return "err" }
func (errFilter) ShouldFilter(_ context.Context, _ *core.RecommendContext, _ core.Recommendation) (bool, error) {
	return true, errors.New("boom")
}

func TestNode_Process(t *testing.T) {
	recs := []core.Recommendation{
		{ProductID: "p1", Score: 3},
		{ProductID: "p2", Score: 2},
		{ProductID: "p3", Score: 1},
	}

	node := &Node{Filters: []Filter{dropFilter{id: "p2"}}}
	out, err := node.Process(context.Background(), nil, recs)
	if err != nil {
		t.Fatalf("Process 失败: %v", err)
	}
	if len(out) != 2 || out[0].ProductID != "p1" || out[1].ProductID != "p3" {
		t.Errorf("Process = %+v，期望剔除 p2", out)
	}
}

// 单个过滤器报错时跳过该过滤器，不中断整条链。
func TestNode_FilterErrorSkipped(t *testing.T) {
	recs := []core.Recommendation{{ProductID: "p1"}}

	node := &Node{Filters: []Filter{errFilter{}, dropFilter{id: "p9"}}}
	out, err := node.Process(context.Background(), nil, recs)
	if err != nil {
		t.Fatalf("Process 失败: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("报错的过滤器不应剔除结果: %+v", out)
	}
}

func TestNode_NoFilters(t *testing.T) {
	recs := []core.Recommendation{{ProductID: "p1"}}
	node := &Node{}
	out, err := node.Process(context.Background(), nil, recs)
	if err != nil || len(out) != 1 {
		t.Errorf("无过滤器时应原样返回: %+v, %v", out, err)
	}
}
