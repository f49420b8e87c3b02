// Package dict resolves word lookups and translations. Lookups flow through
// an in-memory TTL cache, then the shared Redis cache, then (deduplicated by
// singleflight) the dictionary provider, with translations enriched by
// racing two translation providers. Resolved words are added to the shared
// word bank best-effort.
package dict
