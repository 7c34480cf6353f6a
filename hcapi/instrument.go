package hcapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// instrumentedTransport layers request metrics over the given transport:
// an in-flight gauge, a counter by method and status code, and a duration
// histogram by method.
func instrumentedTransport(reg prometheus.Registerer, next http.RoundTripper) http.RoundTripper {
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hcapi_in_flight_requests",
		Help: "Number of Hetzner Cloud API requests currently in flight.",
	})
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hcapi_requests_total",
			Help: "Total Hetzner Cloud API requests by method and status code.",
		},
		[]string{"code", "method"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hcapi_request_duration_seconds",
			Help:    "Hetzner Cloud API request latency by method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	reg.MustRegister(inFlight, counter, duration)

	return promhttp.InstrumentRoundTripperInFlight(inFlight,
		promhttp.InstrumentRoundTripperCounter(counter,
			promhttp.InstrumentRoundTripperDuration(duration, next)))
}
