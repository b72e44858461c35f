package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codex_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codex_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codex_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"query_type", "table"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codex_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_type", "table"},
	)

	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codex_cache_operations_total",
			Help: "Total number of document cache lookups",
		},
		[]string{"backend", "result"},
	)

	DocumentFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codex_document_fetches_total",
			Help: "Total number of data document fetches by origin and outcome",
		},
		[]string{"document", "origin", "status"},
	)

	DocumentFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codex_document_fetch_duration_seconds",
			Help:    "Data document fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"document", "origin"},
	)

	DatasetReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codex_dataset_reloads_total",
			Help: "Total number of dataset reload attempts",
		},
		[]string{"status"},
	)

	DatasetSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "codex_dataset_entries",
			Help: "Number of entries in the active dataset",
		},
		[]string{"kind"},
	)

	MalformedEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codex_malformed_entries_total",
			Help: "Total number of skipped malformed entries",
		},
		[]string{"source"},
	)

	CraftabilityChecksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codex_craftability_checks_total",
			Help: "Total number of inventory craftability checks",
		},
	)

	InventoryStacksObserved = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "codex_inventory_stacks",
			Help:    "Number of stacks in submitted inventory snapshots",
			Buckets: []float64{0, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	ServiceUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "codex_service_uptime_seconds",
			Help: "Time since Codex Service started in seconds",
		},
	)

	ServiceInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "codex_service_info",
			Help: "Codex Service information",
		},
		[]string{"version", "build_time"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordDBQuery(queryType, table string, duration float64) {
	DBQueriesTotal.WithLabelValues(queryType, table).Inc()
	DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
}

func RecordCacheLookup(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheOperationsTotal.WithLabelValues(backend, result).Inc()
}

func RecordDocumentFetch(document, origin, status string, duration float64) {
	DocumentFetchesTotal.WithLabelValues(document, origin, status).Inc()
	DocumentFetchDuration.WithLabelValues(document, origin).Observe(duration)
}

func RecordDatasetReload(status string) {
	DatasetReloadsTotal.WithLabelValues(status).Inc()
}

// SetDatasetSize publishes the sizes of the active dataset.
func SetDatasetSize(items, recipes, sources, quests int) {
	DatasetSize.WithLabelValues("items").Set(float64(items))
	DatasetSize.WithLabelValues("recipes").Set(float64(recipes))
	DatasetSize.WithLabelValues("sources").Set(float64(sources))
	DatasetSize.WithLabelValues("quests").Set(float64(quests))
}

func RecordMalformedEntries(source string, count int) {
	if count <= 0 {
		return
	}
	MalformedEntriesTotal.WithLabelValues(source).Add(float64(count))
}

func RecordCraftabilityCheck(stacks int) {
	CraftabilityChecksTotal.Inc()
	InventoryStacksObserved.Observe(float64(stacks))
}
