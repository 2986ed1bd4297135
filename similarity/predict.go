package similarity

import (
	"fmt"
	"math"
	"sort"
)

// DefaultNeighborK 是评分预测时默认考虑的近邻数。
const DefaultNeighborK = 10

// Scored 把矩阵的列下标与预测分数配对，是 TopN 的结果元素。
type Scored struct {
	Col   int
	Score float64
}

// PredictRating 用 k 近邻加权平均预测 m[row][col] 的评分。
//
// 在所有 r != row 且 m[r][col] != 0 的"评分者"中，
// 取 sim[row][r] 最高的 k 个（k <= 0 时取 DefaultNeighborK）；
// 相似度相等时行下标小的优先（确定性的平局规则）。
// 预测值 = Σ(sim·rating) / Σ|sim|，只累加 sim > 0 的评分者；
// 分母为 0 或没有合格评分者时返回 0.0。
func PredictRating(m, sim [][]float64, row, col, k int) float64 {
	checkRow(m, sim, row)
	if cols := len(m[row]); col < 0 || col >= cols {
		panic(fmt.Sprintf("similarity: col %d out of range [0,%d)", col, cols))
	}

	if k <= 0 {
		k = DefaultNeighborK
	}

	type rater struct {
		idx    int
		sim    float64
		rating float64
	}
	raters := make([]rater, 0)
	for r := range m {
		if r == row || m[r][col] == 0 {
			continue
		}
		raters = append(raters, rater{idx: r, sim: sim[row][r], rating: m[r][col]})
	}
	if len(raters) == 0 {
		return 0.0
	}

	// 相似度降序，平局时下标升序
	sort.Slice(raters, func(i, j int) bool {
		if raters[i].sim != raters[j].sim {
			return raters[i].sim > raters[j].sim
		}
		return raters[i].idx < raters[j].idx
	})
	if len(raters) > k {
		raters = raters[:k]
	}

	var weighted, denom float64
	for _, r := range raters {
		if r.sim > 0 {
			weighted += r.sim * r.rating
			denom += math.Abs(r.sim)
		}
	}
	if denom == 0 {
		return 0.0
	}
	return weighted / denom
}

// TopN 为第 row 行生成前 n 个推荐列。
//
// 只考虑 m[row][c] == 0 的列（没有交互记录的商品），
// 预测分数 > 0 的才进入候选；按分数降序返回，
// 分数相等时列下标小的在前。n <= 0 时默认 5。
func TopN(m, sim [][]float64, row, n, k int) []Scored {
	if len(m) == 0 {
		return nil
	}
	checkRow(m, sim, row)

	if n <= 0 {
		n = 5
	}

	candidates := make([]Scored, 0)
	for c := range m[row] {
		if m[row][c] != 0 {
			continue
		}
		if score := PredictRating(m, sim, row, c, k); score > 0 {
			candidates = append(candidates, Scored{Col: c, Score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Col < candidates[j].Col
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}

// checkRow 校验交互矩阵 m 与相似度矩阵 sim 的形状契约：
// m 必须是矩形的，sim 必须是边长为 len(m) 的方阵，row 必须在界内。
func checkRow(m, sim [][]float64, row int) {
	rows, _ := dims(m)
	if row < 0 || row >= rows {
		panic(fmt.Sprintf("similarity: row %d out of range [0,%d)", row, rows))
	}
	if len(sim) != rows {
		panic(fmt.Sprintf("similarity: sim has %d rows, want %d", len(sim), rows))
	}
	if len(sim[row]) != rows {
		panic(fmt.Sprintf("similarity: sim row %d has %d cols, want %d", row, len(sim[row]), rows))
	}
}
