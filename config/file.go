package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/shopkit/pipeline"
)

// File 是引擎的整体配置文件结构（YAML）。
//
// 示例：
//
//	engine:
//	  neighbor_k: 10
//	  retrain_every: 50
//	  default_n: 5
//	  max_features: 100
//	store:
//	  backend: redis
//	  addr: 127.0.0.1:6379
//	  db: 0
//	  prefix: shop
//	pipeline:
//	  name: storefront
//	  nodes:
//	    - type: filter.active
//	    - type: filter.expr
//	      config:
//	        expr: 'product.category != "Clearance"'
//	    - type: rerank.topn
type File struct {
	Engine struct {
		NeighborK    int `yaml:"neighbor_k"`
		RetrainEvery int `yaml:"retrain_every"`
		DefaultN     int `yaml:"default_n"`
		MaxFeatures  int `yaml:"max_features"`
	} `yaml:"engine"`

	Store struct {
		Backend string `yaml:"backend"` // memory / redis
		Addr    string `yaml:"addr"`
		DB      int    `yaml:"db"`
		Prefix  string `yaml:"prefix"`
	} `yaml:"store"`

	Pipeline struct {
		Name  string                `yaml:"name"`
		Nodes []pipeline.NodeConfig `yaml:"nodes"`
	} `yaml:"pipeline"`
}

// Load 从 YAML 文件加载配置。
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &f, nil
}

// BuildPipeline 根据配置里的节点列表构建后处理 Pipeline。
// 没有配置任何节点时返回 (nil, nil)。
func (f *File) BuildPipeline(deps Deps) (*pipeline.Pipeline, error) {
	if len(f.Pipeline.Nodes) == 0 {
		return nil, nil
	}
	if err := ValidateNodes(f.Pipeline.Nodes); err != nil {
		return nil, err
	}

	factory := DefaultFactory(deps)
	nodes := make([]pipeline.Node, 0, len(f.Pipeline.Nodes))
	for _, nc := range f.Pipeline.Nodes {
		node, err := factory.Build(nc.Type, nc.Config)
		if err != nil {
			return nil, fmt.Errorf("build node %s: %w", nc.Type, err)
		}
		nodes = append(nodes, node)
	}
	return &pipeline.Pipeline{Nodes: nodes}, nil
}
