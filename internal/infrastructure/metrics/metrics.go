// Package metrics holds the domain counters exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LinksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shortener",
		Name:      "links_created_total",
		Help:      "Short links persisted.",
	})

	CodeCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shortener",
		Name:      "code_collisions_total",
		Help:      "Candidate codes rejected because they were already taken.",
	})

	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shortener",
			Name:      "auth_failures_total",
			Help:      "Rejected bearer credentials by internal reason.",
		},
		[]string{"reason"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shortener",
			Name:      "rate_limited_total",
			Help:      "Shorten attempts denied by the rate limiter, by binding scope.",
		},
		[]string{"scope"},
	)

	URLRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shortener",
			Name:      "url_rejected_total",
			Help:      "Destination URLs rejected by validation, by reason.",
		},
		[]string{"reason"},
	)

	Redirects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shortener",
			Name:      "redirects_total",
			Help:      "Resolution outcomes for GET /{code}.",
		},
		[]string{"result"},
	)
)
