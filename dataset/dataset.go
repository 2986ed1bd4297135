// Package dataset 把原始交互事件聚合成稠密的 会话×商品 交互矩阵，
// 并维护 ID↔下标 的双向映射。矩阵和映射在每次训练时整体重建，
// 旧训练态里的下标绝不能套用到新矩阵上。
package dataset

import "github.com/rushteam/shopkit/core"

// Dataset 是一次训练输入的聚合结果。
//
// Matrix 的行对应会话、列对应商品，单元格是该 (会话, 商品) 上
// 所有事件权重之和；0 表示"没有交互记录"，而不是"评分为 0"。
// 下标按事件序列中首次出现的顺序分配，在一次训练内保持稳定。
type Dataset struct {
	Matrix [][]float64

	// SessionIndex / ProductIndex：ID → 下标
	SessionIndex map[string]int
	ProductIndex map[string]int

	// Sessions / Products：下标 → ID（反向映射）
	Sessions []string
	Products []string
}

// Build 聚合交互事件。事件列表为空时返回 nil，
// 向编排层表达"未训练"，而不是错误。
//
// 同一 (会话, 商品) 的多条事件权重累加：输入里出现两次 like
// 得到 6.0，而不是被后者覆盖成 3.0。
func Build(events []core.Interaction) *Dataset {
	if len(events) == 0 {
		return nil
	}

	d := &Dataset{
		SessionIndex: make(map[string]int),
		ProductIndex: make(map[string]int),
	}

	// 第一遍：按首次出现顺序分配下标
	for _, ev := range events {
		if _, ok := d.SessionIndex[ev.SessionID]; !ok {
			d.SessionIndex[ev.SessionID] = len(d.Sessions)
			d.Sessions = append(d.Sessions, ev.SessionID)
		}
		if _, ok := d.ProductIndex[ev.ProductID]; !ok {
			d.ProductIndex[ev.ProductID] = len(d.Products)
			d.Products = append(d.Products, ev.ProductID)
		}
	}

	d.Matrix = make([][]float64, len(d.Sessions))
	for i := range d.Matrix {
		d.Matrix[i] = make([]float64, len(d.Products))
	}

	// 第二遍：权重累加
	for _, ev := range events {
		row := d.SessionIndex[ev.SessionID]
		col := d.ProductIndex[ev.ProductID]
		d.Matrix[row][col] += ev.Kind.Weight()
	}

	return d
}
