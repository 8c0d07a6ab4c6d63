package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LinesRead = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intel_lines_read_total",
		Help: "The total number of new chat-log lines read",
	}, []string{"room"})

	MessagesClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intel_messages_classified_total",
		Help: "The total number of messages produced by status",
	}, []string{"status"})

	FilesTracked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "intel_files_tracked",
		Help: "Number of chat-log files currently tracked",
	})

	FilesIgnored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intel_files_ignored_total",
		Help: "Total number of chat-log files put on the ignore list",
	})

	LocationsKnown = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "intel_locations_known",
		Help: "Number of characters with a known location",
	})

	MessagesPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "intel_messages_pruned_total",
		Help: "Total number of expired messages dropped",
	})

	KOSChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intel_kos_checks_total",
		Help: "Total number of KOS checks by outcome",
	}, []string{"outcome"})

	KOSCheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "intel_kos_check_duration_seconds",
		Help:    "Duration of KOS checks",
		Buckets: prometheus.DefBuckets,
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "intel_cache_lookups_total",
		Help: "Identity cache lookups by result",
	}, []string{"result"})
)
