package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rushteam/shopkit/core"
)

func TestInteractionAdapter_UpsertDedup(t *testing.T) {
	ctx := context.Background()
	log := NewInteractionAdapter(NewMemoryStore(), "test")

	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	if err := log.UpsertInteraction(ctx, "s1", "p1", core.KindView, t0); err != nil {
		t.Fatalf("UpsertInteraction 失败: %v", err)
	}
	// 同一 (session, product, kind)：只刷新时间戳
	if err := log.UpsertInteraction(ctx, "s1", "p1", core.KindView, t1); err != nil {
		t.Fatalf("UpsertInteraction 失败: %v", err)
	}

	count, err := log.CountInteractions(ctx)
	if err != nil || count != 1 {
		t.Errorf("CountInteractions = %d, %v，期望 1（upsert 去重）", count, err)
	}

	events, err := log.ListInteractions(ctx)
	if err != nil || len(events) != 1 {
		t.Fatalf("ListInteractions = %v, %v", events, err)
	}
	if !events[0].Timestamp.Equal(t1) {
		t.Errorf("时间戳应被刷新为 %v，实际 %v", t1, events[0].Timestamp)
	}
}

func TestInteractionAdapter_DistinctKindsAreSeparateEvents(t *testing.T) {
	ctx := context.Background()
	log := NewInteractionAdapter(NewMemoryStore(), "test")

	now := time.Now()
	_ = log.UpsertInteraction(ctx, "s1", "p1", core.KindView, now)
	_ = log.UpsertInteraction(ctx, "s1", "p1", core.KindPurchase, now)

	if count, _ := log.CountInteractions(ctx); count != 2 {
		t.Errorf("不同 kind 应是独立事件，Count = %d，期望 2", count)
	}
}

func TestInteractionAdapter_ListOrderedByTimestamp(t *testing.T) {
	ctx := context.Background()
	log := NewInteractionAdapter(NewMemoryStore(), "test")

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_ = log.UpsertInteraction(ctx, "s2", "p2", core.KindView, base.Add(2*time.Second))
	_ = log.UpsertInteraction(ctx, "s1", "p1", core.KindView, base)
	_ = log.UpsertInteraction(ctx, "s3", "p3", core.KindView, base.Add(time.Second))

	events, err := log.ListInteractions(ctx)
	if err != nil {
		t.Fatalf("ListInteractions 失败: %v", err)
	}
	want := []string{"s1", "s3", "s2"}
	for i, sid := range want {
		if events[i].SessionID != sid {
			t.Errorf("events[%d].SessionID = %q，期望 %q", i, events[i].SessionID, sid)
		}
	}
}

func TestInteractionAdapter_MostInteracted(t *testing.T) {
	ctx := context.Background()
	log := NewInteractionAdapter(NewMemoryStore(), "test")

	now := time.Now()
	// p1 被 3 个会话交互，p2 被 2 个，p3 被 1 个
	_ = log.UpsertInteraction(ctx, "s1", "p1", core.KindView, now)
	_ = log.UpsertInteraction(ctx, "s2", "p1", core.KindView, now)
	_ = log.UpsertInteraction(ctx, "s3", "p1", core.KindView, now)
	_ = log.UpsertInteraction(ctx, "s1", "p2", core.KindView, now)
	_ = log.UpsertInteraction(ctx, "s2", "p2", core.KindView, now)
	_ = log.UpsertInteraction(ctx, "s1", "p3", core.KindView, now)

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "full ranking with negative n", n: -1, want: []string{"p1", "p2", "p3"}},
		{name: "top 2", n: 2, want: []string{"p1", "p2"}},
		{name: "zero n gives nothing", n: 0, want: nil},
		{name: "n beyond size returns all", n: 99, want: []string{"p1", "p2", "p3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := log.MostInteracted(ctx, tt.n)
			if err != nil {
				t.Fatalf("MostInteracted 失败: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("MostInteracted(%d) = %v，期望 %v", tt.n, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("MostInteracted(%d)[%d] = %q，期望 %q", tt.n, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// 重复 upsert 不重复累计热度。
func TestInteractionAdapter_PopularityNotDoubleCounted(t *testing.T) {
	ctx := context.Background()
	log := NewInteractionAdapter(NewMemoryStore(), "test")

	now := time.Now()
	_ = log.UpsertInteraction(ctx, "s1", "p1", core.KindView, now)
	_ = log.UpsertInteraction(ctx, "s1", "p1", core.KindView, now.Add(time.Minute))
	_ = log.UpsertInteraction(ctx, "s1", "p2", core.KindView, now)
	_ = log.UpsertInteraction(ctx, "s2", "p2", core.KindView, now)

	got, err := log.MostInteracted(ctx, -1)
	if err != nil {
		t.Fatalf("MostInteracted 失败: %v", err)
	}
	// p2 两条独立事件 > p1 一条（重复 upsert 不加分）
	if len(got) != 2 || got[0] != "p2" || got[1] != "p1" {
		t.Errorf("排行 = %v，期望 [p2 p1]", got)
	}
}

// 并发首写同一 (session, product, kind)：事件只落一条，热度只加 1。
func TestInteractionAdapter_ConcurrentUpsertSingleCount(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	defer mem.Close()
	log := NewInteractionAdapter(mem, "test")

	now := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := log.UpsertInteraction(ctx, "s1", "p1", core.KindView, now.Add(time.Duration(n)*time.Millisecond)); err != nil {
				t.Errorf("UpsertInteraction 失败: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if count, _ := log.CountInteractions(ctx); count != 1 {
		t.Errorf("Count = %d，期望 1", count)
	}
	if score := mem.zsets["test:popularity"]["p1"]; score != 1 {
		t.Errorf("热度 = %v，期望 1（并发首写不重复累计）", score)
	}
}

func TestInteractionAdapter_EmptyLog(t *testing.T) {
	ctx := context.Background()
	log := NewInteractionAdapter(NewMemoryStore(), "test")

	events, err := log.ListInteractions(ctx)
	if err != nil || len(events) != 0 {
		t.Errorf("空日志 ListInteractions = %v, %v", events, err)
	}
	if count, _ := log.CountInteractions(ctx); count != 0 {
		t.Errorf("空日志 Count = %d，期望 0", count)
	}
	if ranked, _ := log.MostInteracted(ctx, -1); ranked != nil {
		t.Errorf("空日志排行 = %v，期望 nil", ranked)
	}
}
