package metrics

// Attribute keys shared by the otel instruments.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrEvent    = "event"
	AttrCycle    = "cycle"
)

// Cache event names recorded against the cache_events_total counter.
const (
	CacheHit        = "hit"
	CacheMiss       = "miss"
	CacheStaleServe = "stale_serve"
	CacheCoalesced  = "coalesced"
)
