package status

import (
	"fmt"
	"io"
	"sync/atomic"
)

// Registry is the central metrics facade shared by all game components
type Registry struct {
	Ints  *MetricMap[atomic.Int64]
	Bools *MetricMap[atomic.Bool]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:  NewMetricMap[atomic.Int64](),
		Bools: NewMetricMap[atomic.Bool](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Bools.Count()
}

// Snapshot copies all integer metrics into a plain map
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.Ints.Count())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	return out
}

// WriteTo dumps every metric as "key=value" lines
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	var total int64
	var err error
	write := func(key string, value any) {
		if err != nil {
			return
		}
		var n int
		n, err = fmt.Fprintf(w, "%s=%v\n", key, value)
		total += int64(n)
	}

	r.Ints.Range(func(key string, ptr *atomic.Int64) { write(key, ptr.Load()) })
	r.Bools.Range(func(key string, ptr *atomic.Bool) { write(key, ptr.Load()) })
	return total, err
}
