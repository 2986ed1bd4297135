package dataset

import (
	"testing"

	"github.com/rushteam/shopkit/core"
)

func ev(session, product string, kind core.InteractionKind) core.Interaction {
	return core.Interaction{SessionID: session, ProductID: product, Kind: kind}
}

func TestBuild_EmptyReturnsNil(t *testing.T) {
	if d := Build(nil); d != nil {
		t.Errorf("空事件列表应返回 nil，实际 %+v", d)
	}
	if d := Build([]core.Interaction{}); d != nil {
		t.Errorf("空事件列表应返回 nil，实际 %+v", d)
	}
}

func TestBuild_IndexByFirstAppearance(t *testing.T) {
	d := Build([]core.Interaction{
		ev("s2", "pB", core.KindView),
		ev("s1", "pA", core.KindView),
		ev("s2", "pA", core.KindView),
	})

	wantSessions := []string{"s2", "s1"}
	wantProducts := []string{"pB", "pA"}
	for i, id := range wantSessions {
		if d.Sessions[i] != id || d.SessionIndex[id] != i {
			t.Errorf("会话下标不按首次出现分配: Sessions=%v SessionIndex=%v", d.Sessions, d.SessionIndex)
		}
	}
	for i, id := range wantProducts {
		if d.Products[i] != id || d.ProductIndex[id] != i {
			t.Errorf("商品下标不按首次出现分配: Products=%v ProductIndex=%v", d.Products, d.ProductIndex)
		}
	}
}

func TestBuild_WeightAggregation(t *testing.T) {
	d := Build([]core.Interaction{
		ev("s1", "p1", core.KindView),     // 1.0
		ev("s1", "p2", core.KindLike),     // 3.0
		ev("s1", "p2", core.KindLike),     // 再来一次 like：累加
		ev("s2", "p1", core.KindDislike),  // -2.0
		ev("s2", "p2", core.KindPurchase), // 5.0
	})

	want := [][]float64{
		{1.0, 6.0},
		{-2.0, 5.0},
	}
	for i := range want {
		for j := range want[i] {
			if d.Matrix[i][j] != want[i][j] {
				t.Errorf("Matrix[%d][%d] = %v, 期望 %v", i, j, d.Matrix[i][j], want[i][j])
			}
		}
	}
}

func TestBuild_MixedKindsAccumulate(t *testing.T) {
	// 同一单元格上 view + purchase = 6.0
	d := Build([]core.Interaction{
		ev("s1", "p1", core.KindView),
		ev("s1", "p1", core.KindPurchase),
	})
	if got := d.Matrix[0][0]; got != 6.0 {
		t.Errorf("Matrix[0][0] = %v, 期望 6.0", got)
	}
}

func TestBuild_UnknownKindWeight(t *testing.T) {
	d := Build([]core.Interaction{
		ev("s1", "p1", core.InteractionKind("wishlist")),
	})
	if got := d.Matrix[0][0]; got != 1.0 {
		t.Errorf("未知事件类型权重应为 1.0，实际 %v", got)
	}
}

func TestBuild_MatrixShape(t *testing.T) {
	d := Build([]core.Interaction{
		ev("s1", "p1", core.KindView),
		ev("s2", "p2", core.KindView),
		ev("s3", "p1", core.KindView),
	})
	if len(d.Matrix) != 3 {
		t.Fatalf("期望 3 行，实际 %d", len(d.Matrix))
	}
	for i, row := range d.Matrix {
		if len(row) != 2 {
			t.Errorf("行 %d 期望 2 列，实际 %d", i, len(row))
		}
	}
	// 没有交互的单元格保持 0
	if d.Matrix[0][1] != 0 || d.Matrix[1][0] != 0 {
		t.Errorf("无交互单元格应为 0: %+v", d.Matrix)
	}
}
