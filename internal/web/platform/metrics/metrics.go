// Package metrics exposes Prometheus counters for the web service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// CatalogFetches counts catalog loads by result.
	CatalogFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activities_web_catalog_fetches_total",
		Help: "Catalog fetches issued upstream, by result.",
	}, []string{"result"})

	// Mutations counts signup and unregister attempts by operation and result.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activities_web_mutations_total",
		Help: "Signup and unregister attempts issued upstream, by operation and result.",
	}, []string{"op", "result"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
