package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/docshelf/internal/core/domain"
	"github.com/custodia-labs/docshelf/internal/core/ports/driving"
)

// Result labels for searches that returned nothing.
const sourceNone = "none"

var (
	searchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Searches by the path that produced the results",
		},
		[]string{"source"},
	)

	searchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search latency including fallback and hydration",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	searchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 30, 50},
		},
	)
)

func init() {
	prometheus.MustRegister(searchRequestsTotal)
	prometheus.MustRegister(searchDuration)
	prometheus.MustRegister(searchResults)
}

type instrumentedSearch struct {
	next driving.SearchService
}

// InstrumentSearch wraps next, counting searches by result source.
func InstrumentSearch(next driving.SearchService) driving.SearchService {
	return &instrumentedSearch{next: next}
}

func (s *instrumentedSearch) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	start := time.Now()
	results, err := s.next.Search(ctx, query, opts)
	searchDuration.Observe(time.Since(start).Seconds())
	searchResults.Observe(float64(len(results)))

	source := sourceNone
	if len(results) > 0 {
		source = string(results[0].Source)
	}
	searchRequestsTotal.WithLabelValues(source).Inc()
	return results, err
}
