package dictionary

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics counts fingerprint cache outcomes.
type CacheMetrics struct {
	Hits          prometheus.Counter
	Misses        prometheus.Counter
	WriteFailures prometheus.Counter
}

// NewCacheMetrics creates the counters and registers them on reg when it is not nil.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "keytip",
			Subsystem: "dictionary_cache",
			Name:      "hits_total",
			Help:      "Number of dictionary lookups served from the fingerprint cache.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "keytip",
			Subsystem: "dictionary_cache",
			Name:      "misses_total",
			Help:      "Number of dictionary lookups which rebuilt the dictionary.",
		}),
		WriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "keytip",
			Subsystem: "dictionary_cache",
			Name:      "write_failures_total",
			Help:      "Number of rebuilt dictionaries which could not be written to the cache.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Hits, m.Misses, m.WriteFailures)
	}
	return m
}
