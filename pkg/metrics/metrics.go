package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ProviderFetches counts stats requests per provider by outcome
	// (live, cache_hit, not_configured, invalid_schema, upstream_error).
	ProviderFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "trio", Name: "provider_fetch_total", Help: "Provider stats fetch attempts by provider and outcome."},
		[]string{"provider", "outcome"},
	)
	// DemoFallbacks counts responses served from the fixed demo payloads.
	DemoFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "trio", Name: "provider_demo_fallback_total", Help: "Responses substituted with demo data by provider."},
		[]string{"provider"},
	)
	DomainResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "trio", Name: "domain_resolution_total", Help: "Host-to-tenant resolutions by result (portfolio, admin, miss, error)."},
		[]string{"result"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "trio", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "trio", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ProviderFetches)
	reg.MustRegister(DemoFallbacks)
	reg.MustRegister(DomainResolutions)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
