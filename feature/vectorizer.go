// Package feature 为商品构建内容特征向量，供基于内容的兜底策略使用。
//
// 特征向量 = 定宽的词法权重向量（对 名称+描述+类目 文本做 TF-IDF） +
// 一个按全量在售目录标准化（零均值/单位方差）的价格标量。
// 列顺序在一次训练内保持稳定；不同训练批次产出的特征向量不可互相比较。
package feature

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/rushteam/shopkit/core"
)

// DefaultMaxFeatures 是词表的默认上限：只保留语料中信息量最高的 100 个词。
const DefaultMaxFeatures = 100

// Vectorizer 把商品文本转换成 TF-IDF 向量并拼接标准化价格。
type Vectorizer struct {
	// MaxFeatures 词表上限，<= 0 时取 DefaultMaxFeatures
	MaxFeatures int

	// StopWords 被排除的常见停用词；nil 时使用内置英文停用词表
	StopWords map[string]struct{}
}

// VectorizerOption 配置选项
type VectorizerOption func(*Vectorizer)

// WithMaxFeatures 设置词表上限
func WithMaxFeatures(n int) VectorizerOption {
	return func(v *Vectorizer) {
		v.MaxFeatures = n
	}
}

// WithStopWords 替换停用词表
func WithStopWords(words []string) VectorizerOption {
	return func(v *Vectorizer) {
		v.StopWords = make(map[string]struct{}, len(words))
		for _, w := range words {
			v.StopWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// NewVectorizer 创建内容特征向量器
func NewVectorizer(opts ...VectorizerOption) *Vectorizer {
	v := &Vectorizer{
		MaxFeatures: DefaultMaxFeatures,
		StopWords:   englishStopWords,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Fit 为每个商品产出一行特征向量，行序与 products 一致。
// 没有商品时返回 nil（表示"无内容特征"，不是错误）。
//
// 词表选取：按词在语料中的总词频取前 MaxFeatures 个，
// 词频相同时按字典序，列按字典序排列（一次训练内稳定）。
// 每行的词法部分做 L2 归一化；价格列按目录整体做零均值/单位方差标准化，
// 方差为 0（所有商品同价）时价格列全为 0。
func (v *Vectorizer) Fit(products []core.Product) [][]float64 {
	if len(products) == 0 {
		return nil
	}

	maxFeatures := v.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	stop := v.StopWords
	if stop == nil {
		stop = englishStopWords
	}

	// 分词并统计词频/文档频
	docs := make([]map[string]int, len(products))
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for i, p := range products {
		counts := make(map[string]int)
		for _, term := range tokenize(p.Name + " " + p.Description + " " + p.Category) {
			if _, skip := stop[term]; skip {
				continue
			}
			counts[term]++
		}
		docs[i] = counts
		for term, c := range counts {
			corpusFreq[term] += c
			docFreq[term]++
		}
	}

	// 词表：总词频前 maxFeatures，平局按字典序；列按字典序
	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	// IDF（平滑）：ln((1+N)/(1+df)) + 1
	n := float64(len(products))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	// 价格标准化参数
	var mean float64
	for _, p := range products {
		mean += p.Price
	}
	mean /= n
	var variance float64
	for _, p := range products {
		d := p.Price - mean
		variance += d * d
	}
	variance /= n
	std := math.Sqrt(variance)

	out := make([][]float64, len(products))
	for i, counts := range docs {
		row := make([]float64, len(terms)+1)
		var norm float64
		for j, term := range terms {
			w := float64(counts[term]) * idf[j]
			row[j] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range terms {
				row[j] /= norm
			}
		}
		if std > 0 {
			row[len(terms)] = (products[i].Price - mean) / std
		}
		out[i] = row
	}
	return out
}

// tokenize 提取小写字母数字词元，丢弃单字符词。
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= 2 {
			terms = append(terms, f)
		}
	}
	return terms
}
