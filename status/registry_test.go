package status

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// TestMetricMapStablePointer verifies repeated lookups return the same metric
func TestMetricMapStablePointer(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	a := m.Get("physics.ticks")
	b := m.Get("physics.ticks")
	if a != b {
		t.Fatal("expected cached pointer for repeated key")
	}
	a.Add(3)
	if b.Load() != 3 {
		t.Errorf("expected 3, got %d", b.Load())
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 metric, got %d", m.Count())
	}
}

// TestMetricMapConcurrentGet verifies concurrent registration yields one pointer per key
func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get("sound.played").Add(1)
		}()
	}
	wg.Wait()

	if got := m.Get("sound.played").Load(); got != 32 {
		t.Errorf("expected 32 increments, got %d", got)
	}
}

// TestRegistryWriteTo verifies dump ordering and content
func TestRegistryWriteTo(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("b.second").Store(2)
	r.Ints.Get("a.first").Store(1)
	r.Bools.Get("c.flag").Store(true)

	var sb strings.Builder
	if _, err := r.WriteTo(&sb); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	want := "a.first=1\nb.second=2\nc.flag=true\n"
	if sb.String() != want {
		t.Errorf("unexpected dump:\n%s\nwant:\n%s", sb.String(), want)
	}
	if r.TotalCount() != 3 {
		t.Errorf("expected 3 metrics, got %d", r.TotalCount())
	}

	snap := r.Snapshot()
	if snap["b.second"] != 2 || len(snap) != 2 {
		t.Errorf("unexpected snapshot: %v", snap)
	}
}
