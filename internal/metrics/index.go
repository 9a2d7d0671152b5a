package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driven"
)

var (
	indexOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_operations_total",
			Help:      "Search index operations by kind and outcome",
		},
		[]string{"op", "status"},
	)

	indexOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_operation_duration_seconds",
			Help:      "Search index operation latency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(indexOpsTotal)
	prometheus.MustRegister(indexOpDuration)
}

type instrumentedIndex struct {
	next driven.SearchIndex
}

// InstrumentIndex wraps next, recording each write and query.
func InstrumentIndex(next driven.SearchIndex) driven.SearchIndex {
	return &instrumentedIndex{next: next}
}

func observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	indexOpsTotal.WithLabelValues(op, status).Inc()
	indexOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (x *instrumentedIndex) Upsert(ctx context.Context, e domain.IndexEntry) error {
	start := time.Now()
	err := x.next.Upsert(ctx, e)
	observe("upsert", start, err)
	return err
}

func (x *instrumentedIndex) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	err := x.next.Delete(ctx, id)
	observe("delete", start, err)
	return err
}

func (x *instrumentedIndex) Rebuild(ctx context.Context, entries []domain.IndexEntry) error {
	start := time.Now()
	err := x.next.Rebuild(ctx, entries)
	observe("rebuild", start, err)
	return err
}

func (x *instrumentedIndex) Search(ctx context.Context, q string, limit int) ([]domain.SearchHit, error) {
	start := time.Now()
	hits, err := x.next.Search(ctx, q, limit)
	observe("search", start, err)
	return hits, err
}

func (x *instrumentedIndex) Count() (uint64, error) {
	return x.next.Count()
}

func (x *instrumentedIndex) Close() error {
	return x.next.Close()
}
