package core

import "context"

// Store 是存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//
// 使用场景：
//   - 商品目录持久化（CatalogAdapter）
//   - 交互日志持久化（InteractionAdapter）
//
// 实现：
//   - store.MemoryStore 实现此接口（开发/测试）
//   - store.RedisStore 实现此接口（生产）
type Store interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Get 读取单个 key 的值
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value
	Set(ctx context.Context, key string, value []byte) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 是 Store 的扩展接口，支持更丰富的 KV 操作。
//
// 扩展功能：
//   - 哈希表（Hash）：商品目录、交互事件按字段存取
//   - 有序集合（SortedSet）：商品热度计数与 TopN 查询
//
// 如果后端不支持某些操作，可返回 ErrStoreNotSupported。
type KeyValueStore interface {
	Store

	// HGet 读取 Hash 字段
	HGet(ctx context.Context, key, field string) ([]byte, error)

	// HSet 写入 Hash 字段
	HSet(ctx context.Context, key, field string, value []byte) error

	// HSetNX 仅在字段不存在时写入，返回是否写入成功。
	// 并发首写只有一个调用方拿到 true
	HSetNX(ctx context.Context, key, field string, value []byte) (bool, error)

	// HDel 删除 Hash 字段
	HDel(ctx context.Context, key, field string) error

	// HGetAll 读取整个 Hash
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)

	// HLen 返回 Hash 的字段数
	HLen(ctx context.Context, key string) (int64, error)

	// ZIncrBy 给有序集合成员的分数加上增量
	ZIncrBy(ctx context.Context, key string, incr float64, member string) error

	// ZRevRange 按分数降序获取有序集合成员（用于热门 TopN）
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}
