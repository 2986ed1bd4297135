package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rushteam/shopkit/core"
)

// InteractionAdapter 是基于 core.KeyValueStore 的交互日志适配器，
// 实现 core.InteractionLog 接口。
//
// 存储布局：
//   - 事件 Hash：{KeyPrefix}:events，field = session|product|kind，value = 事件 JSON
//   - 热度 ZSet：{KeyPrefix}:popularity，member = 商品 ID，score = 事件条数
//
// upsert 语义：同一 (session, product, kind) 的事件只刷新时间戳，
// 不产生新纪录，热度也不重复累计。
//
// 约束：session/product ID 中不能包含分隔符 '|'。
type InteractionAdapter struct {
	store core.KeyValueStore

	// KeyPrefix 是存储 key 的前缀
	KeyPrefix string
}

// NewInteractionAdapter 创建交互日志适配器。
func NewInteractionAdapter(s core.KeyValueStore, keyPrefix string) *InteractionAdapter {
	if keyPrefix == "" {
		keyPrefix = "shop"
	}
	return &InteractionAdapter{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

func (a *InteractionAdapter) eventsKey() string     { return a.KeyPrefix + ":events" }
func (a *InteractionAdapter) popularityKey() string { return a.KeyPrefix + ":popularity" }

func eventField(sessionID, productID string, kind core.InteractionKind) string {
	return sessionID + "|" + productID + "|" + string(kind)
}

// UpsertInteraction 实现 core.InteractionLog 接口。
// 用 HSetNX 做创建判定：同一 (session, product, kind) 的并发首写
// 只有一个赢家，热度不会被重复累计。
func (a *InteractionAdapter) UpsertInteraction(ctx context.Context, sessionID, productID string, kind core.InteractionKind, ts time.Time) error {
	field := eventField(sessionID, productID, kind)

	ev := core.Interaction{
		SessionID: sessionID,
		ProductID: productID,
		Kind:      kind,
		Timestamp: ts,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	created, err := a.store.HSetNX(ctx, a.eventsKey(), field, data)
	if err != nil {
		return err
	}
	if created {
		// 新事件才累计热度
		return a.store.ZIncrBy(ctx, a.popularityKey(), 1, productID)
	}

	// 已存在：field 即自然键，整体覆写等价于只刷新时间戳
	return a.store.HSet(ctx, a.eventsKey(), field, data)
}

// ListInteractions 实现 core.InteractionLog 接口。
// 结果按时间升序（平局按 field 字典序），保证训练输入稳定可复现。
func (a *InteractionAdapter) ListInteractions(ctx context.Context) ([]core.Interaction, error) {
	all, err := a.store.HGetAll(ctx, a.eventsKey())
	if err != nil {
		return nil, err
	}

	type fielded struct {
		field string
		ev    core.Interaction
	}
	events := make([]fielded, 0, len(all))
	for field, data := range all {
		var ev core.Interaction
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, err
		}
		events = append(events, fielded{field: field, ev: ev})
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].ev.Timestamp.Equal(events[j].ev.Timestamp) {
			return events[i].ev.Timestamp.Before(events[j].ev.Timestamp)
		}
		return strings.Compare(events[i].field, events[j].field) < 0
	})

	out := make([]core.Interaction, 0, len(events))
	for _, e := range events {
		out = append(out, e.ev)
	}
	return out, nil
}

// CountInteractions 实现 core.InteractionLog 接口。
func (a *InteractionAdapter) CountInteractions(ctx context.Context) (int64, error) {
	return a.store.HLen(ctx, a.eventsKey())
}

// MostInteracted 实现 core.InteractionLog 接口。
func (a *InteractionAdapter) MostInteracted(ctx context.Context, n int) ([]string, error) {
	if n == 0 {
		return nil, nil
	}
	stop := int64(-1) // n < 0：完整排行
	if n > 0 {
		stop = int64(n - 1)
	}
	return a.store.ZRevRange(ctx, a.popularityKey(), 0, stop)
}

var _ core.InteractionLog = (*InteractionAdapter)(nil)
