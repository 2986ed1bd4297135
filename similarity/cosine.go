// Package similarity 是推荐引擎的纯数值内核：
// 稠密余弦相似度矩阵构建与 k 近邻加权评分预测。
//
// 本包对商品/会话一无所知，只处理形状良好的矩阵；
// 形状不匹配属于调用方的编程错误（契约违反），直接 panic，
// 不做任何静默修正。
package similarity

import (
	"fmt"
	"math"
)

// CosineMatrix 对 n×m 矩阵 m（每行一个实体）计算 n×n 余弦相似度矩阵。
//
// 性质：
//   - 对称，主对角线恒为 1.0
//   - 任一行是零向量时，该行与其他行的相似度定义为 0.0（不是 NaN）
//   - 每个无序对只计算一次并镜像写入
//
// 复杂度 O(n²·m)，额外空间 O(n²)。
func CosineMatrix(m [][]float64) [][]float64 {
	rows, cols := dims(m)

	// 预计算每行的模长
	norms := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var sum float64
		for j := 0; j < cols; j++ {
			sum += m[i][j] * m[i][j]
		}
		norms[i] = math.Sqrt(sum)
	}

	out := newSquare(rows)
	for i := 0; i < rows; i++ {
		out[i][i] = 1.0
		for j := i + 1; j < rows; j++ {
			if norms[i] == 0 || norms[j] == 0 {
				continue // 零向量：保持 0.0
			}
			var dot float64
			for c := 0; c < cols; c++ {
				dot += m[i][c] * m[j][c]
			}
			sim := dot / (norms[i] * norms[j])
			out[i][j] = sim
			out[j][i] = sim
		}
	}
	return out
}

// ItemCosineMatrix 对矩阵的列计算余弦相似度，返回 m×m 矩阵。
// 算法与 CosineMatrix 相同，只是实体轴换成了列（物品轴）。
func ItemCosineMatrix(m [][]float64) [][]float64 {
	rows, cols := dims(m)

	norms := make([]float64, cols)
	for j := 0; j < cols; j++ {
		var sum float64
		for i := 0; i < rows; i++ {
			sum += m[i][j] * m[i][j]
		}
		norms[j] = math.Sqrt(sum)
	}

	out := newSquare(cols)
	for i := 0; i < cols; i++ {
		out[i][i] = 1.0
		for j := i + 1; j < cols; j++ {
			if norms[i] == 0 || norms[j] == 0 {
				continue
			}
			var dot float64
			for r := 0; r < rows; r++ {
				dot += m[r][i] * m[r][j]
			}
			sim := dot / (norms[i] * norms[j])
			out[i][j] = sim
			out[j][i] = sim
		}
	}
	return out
}

// dims 返回矩阵的行列数，同时校验矩阵是矩形的。
// 参差不齐的行属于契约违反，fail fast。
func dims(m [][]float64) (rows, cols int) {
	rows = len(m)
	if rows == 0 {
		return 0, 0
	}
	cols = len(m[0])
	for i, row := range m {
		if len(row) != cols {
			panic(fmt.Sprintf("similarity: ragged matrix, row 0 has %d cols, row %d has %d", cols, i, len(row)))
		}
	}
	return rows, cols
}

func newSquare(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	return out
}
