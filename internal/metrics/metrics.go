// Package metrics holds the Prometheus collectors for the contact API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "contact", Name: "submissions_total", Help: "Contact form submissions by outcome."},
		[]string{"outcome"},
	)
	EmailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "contact", Name: "emails_total", Help: "Outbound emails by kind and status."},
		[]string{"kind", "status"},
	)
	EmailSendSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "contact", Name: "email_send_seconds", Help: "Provider send latency.", Buckets: prometheus.DefBuckets},
		[]string{"provider"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "contact", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "contact", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

// RegisterCollectors registers every collector with reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Submissions)
	reg.MustRegister(EmailsSent)
	reg.MustRegister(EmailSendSeconds)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
