// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks HTTP latency per route, method and status.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dishpoll_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// BallotsSubmitted counts accepted ballot submissions.
	BallotsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dishpoll_ballots_submitted_total",
		Help: "Number of ballots accepted and stored.",
	})

	// BallotsCleared counts explicit ballot clears.
	BallotsCleared = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dishpoll_ballots_cleared_total",
		Help: "Number of explicit ballot clears.",
	})

	// CatalogFallbacks counts dish feed failures recovered via the
	// built-in catalog.
	CatalogFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dishpoll_catalog_fallbacks_total",
		Help: "Number of catalog fetches served from the built-in fallback.",
	})

	// CorruptBallotRecords counts stored ballots discarded because they
	// no longer parse.
	CorruptBallotRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dishpoll_corrupt_ballot_records_total",
		Help: "Number of unparsable ballot records discarded from storage.",
	})
)

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
