package view

import (
	"context"
	"time"

	"github.com/rshade/puretable/internal/cache"
	"github.com/rshade/puretable/internal/document"
	"github.com/rshade/puretable/internal/logging"
)

// Deriver memoizes derivations keyed on the document version and the state.
// Results equal those of Pipeline.Derive. A Deriver is safe for concurrent use.
type Deriver struct {
	pipeline *Pipeline
	store    *cache.MemoryStore[Result]
}

// NewDeriver returns a Deriver backed by store. A nil or disabled store
// turns memoization off.
func NewDeriver(p *Pipeline, store *cache.MemoryStore[Result]) *Deriver {
	if p == nil {
		p = rootPipeline
	}
	return &Deriver{pipeline: p, store: store}
}

// Pipeline returns the underlying pipeline.
func (d *Deriver) Pipeline() *Pipeline {
	return d.pipeline
}

// Derive returns the view of doc for state, from cache when possible.
// Callers must not modify the returned rows.
func (d *Deriver) Derive(ctx context.Context, doc *document.Document, state State) Result {
	if doc == nil {
		return d.pipeline.Derive(nil, state)
	}

	key := cache.Key(doc.Version(), d.pipeline.Locale(), state.Key())
	if res, ok := d.store.Get(key); ok {
		logging.FromContext(ctx).Debug().
			Ctx(ctx).
			Str("component", "view").
			Str("operation", "derive").
			Str("document_version", doc.Version()).
			Bool("cache_hit", true).
			Msg("view served from cache")
		return res
	}

	start := time.Now()
	res := d.pipeline.Derive(doc.Records(), state)
	d.store.Set(key, res)

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "view").
		Str("operation", "derive").
		Str("document_version", doc.Version()).
		Bool("cache_hit", false).
		Int("matched", res.TotalMatched).
		Int("total_pages", res.TotalPages).
		Dur("duration", time.Since(start)).
		Msg("view derived")

	return res
}

// Stats reports cache usage.
func (d *Deriver) Stats() cache.Stats {
	return d.store.Stats()
}

// CleanupExpired drops expired cache entries and returns how many went.
func (d *Deriver) CleanupExpired() int {
	return d.store.CleanupExpired()
}
