package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ViewsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curata_views_recorded_total",
		Help: "Content views recorded against the counter store.",
	})

	ClicksCounted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curata_clicks_counted_total",
		Help: "Link clicks that passed dedup and were counted.",
	})

	ClicksSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curata_clicks_suppressed_total",
		Help: "Link clicks suppressed as duplicates inside the dedup window.",
	})

	DedupFailOpen = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curata_dedup_fail_open_total",
		Help: "Clicks counted without dedup because the dedup cache was unreachable.",
	})

	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curata_like_toggles_total",
		Help: "Like toggles by resulting state.",
	}, []string{"state"})
)
