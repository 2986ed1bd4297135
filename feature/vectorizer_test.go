package feature

import (
	"math"
	"testing"

	"github.com/rushteam/shopkit/core"
)

func TestVectorizer_EmptyCatalog(t *testing.T) {
	v := NewVectorizer()
	if got := v.Fit(nil); got != nil {
		t.Errorf("空目录应返回 nil，实际 %+v", got)
	}
}

func TestVectorizer_RowWidthAndOrder(t *testing.T) {
	products := []core.Product{
		{ID: "p1", Name: "espresso machine", Description: "steam espresso", Category: "kitchen", Price: 80},
		{ID: "p2", Name: "coffee grinder", Description: "burr grinder", Category: "kitchen", Price: 40},
	}
	v := NewVectorizer()
	rows := v.Fit(products)

	if len(rows) != len(products) {
		t.Fatalf("期望 %d 行，实际 %d 行", len(products), len(rows))
	}
	// 词表: burr coffee espresso grinder kitchen machine steam → 7 词 + 价格列
	wantWidth := 8
	for i, row := range rows {
		if len(row) != wantWidth {
			t.Errorf("行 %d 宽度 %d，期望 %d", i, len(row), wantWidth)
		}
	}
}

func TestVectorizer_StopWordsExcluded(t *testing.T) {
	products := []core.Product{
		{ID: "p1", Name: "the best mug", Description: "a mug for your coffee", Category: "kitchen", Price: 10},
		{ID: "p2", Name: "other mug", Description: "with the same price", Category: "kitchen", Price: 10},
	}
	v := NewVectorizer()
	rows := v.Fit(products)

	// 停用词 the/a/for/your/with/same/other 不占列：
	// 词表 = best coffee kitchen mug price → 5 词 + 价格列
	if got := len(rows[0]); got != 6 {
		t.Errorf("行宽 %d，期望 6（停用词应被排除）", got)
	}
}

func TestVectorizer_LexicalPartL2Normalized(t *testing.T) {
	products := []core.Product{
		{ID: "p1", Name: "espresso machine deluxe", Description: "espresso espresso", Category: "kitchen", Price: 80},
		{ID: "p2", Name: "grinder", Description: "burr grinder", Category: "kitchen", Price: 40},
	}
	v := NewVectorizer()
	rows := v.Fit(products)

	for i, row := range rows {
		var norm float64
		for _, w := range row[:len(row)-1] {
			norm += w * w
		}
		norm = math.Sqrt(norm)
		if math.Abs(norm-1.0) > 1e-9 {
			t.Errorf("行 %d 词法部分 L2 范数 = %v，期望 1.0", i, norm)
		}
	}
}

func TestVectorizer_PriceStandardization(t *testing.T) {
	products := []core.Product{
		{ID: "p1", Name: "alpha widget", Category: "tools", Price: 10},
		{ID: "p2", Name: "beta widget", Category: "tools", Price: 30},
	}
	v := NewVectorizer()
	rows := v.Fit(products)

	// mean=20, std=10 → 标准化价格为 -1 和 +1
	last := len(rows[0]) - 1
	if math.Abs(rows[0][last]-(-1.0)) > 1e-9 || math.Abs(rows[1][last]-1.0) > 1e-9 {
		t.Errorf("价格标准化错误: %v / %v，期望 -1 / +1", rows[0][last], rows[1][last])
	}
}

func TestVectorizer_UniformPriceGivesZeroColumn(t *testing.T) {
	products := []core.Product{
		{ID: "p1", Name: "alpha widget", Category: "tools", Price: 15},
		{ID: "p2", Name: "beta widget", Category: "tools", Price: 15},
	}
	v := NewVectorizer()
	rows := v.Fit(products)

	last := len(rows[0]) - 1
	for i, row := range rows {
		if row[last] != 0 {
			t.Errorf("全目录同价时价格列应为 0，行 %d 实际 %v", i, row[last])
		}
	}
}

func TestVectorizer_MaxFeaturesCap(t *testing.T) {
	products := []core.Product{
		{ID: "p1", Name: "alpha beta gamma delta", Category: "misc", Price: 1},
		{ID: "p2", Name: "epsilon zeta eta theta", Category: "misc", Price: 2},
	}
	v := NewVectorizer(WithMaxFeatures(3))
	rows := v.Fit(products)

	// 3 词 + 价格列
	if got := len(rows[0]); got != 4 {
		t.Errorf("行宽 %d，期望 4（词表被截断到 3）", got)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "lowercase and split on punctuation", in: "Espresso-Machine, Deluxe!", want: []string{"espresso", "machine", "deluxe"}},
		{name: "single characters dropped", in: "a b cd", want: []string{"cd"}},
		{name: "digits kept", in: "mk2 grinder", want: []string{"mk2", "grinder"}},
		{name: "empty input", in: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("tokenize(%q) = %v, 期望 %v", tt.in, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("tokenize(%q)[%d] = %q, 期望 %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}
