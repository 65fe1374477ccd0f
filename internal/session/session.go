// Package session holds the document and view state of a long-lived viewer.
package session

import (
	"context"
	"io"
	"sync"

	"github.com/rshade/puretable/internal/document"
	"github.com/rshade/puretable/internal/logging"
	"github.com/rshade/puretable/internal/view"
)

// Session is the current document plus the view state applied to it.
// A failed load never replaces the current document.
// Session is safe for concurrent use.
type Session struct {
	loader  *document.Loader
	deriver *view.Deriver

	mu    sync.RWMutex
	doc   *document.Document
	state view.State
}

// New returns an empty Session whose state starts at the given page size.
func New(loader *document.Loader, deriver *view.Deriver, pageSize int) *Session {
	if deriver == nil {
		deriver = view.NewDeriver(nil, nil)
	}
	return &Session{
		loader:  loader,
		deriver: deriver,
		state:   view.NewState(pageSize),
	}
}

// LoadFile loads the document at path and makes it current.
func (s *Session) LoadFile(ctx context.Context, path string) (*document.Document, error) {
	doc, err := s.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	s.SetDocument(ctx, doc)
	return doc, nil
}

// Load reads a document from r and makes it current.
func (s *Session) Load(ctx context.Context, source string, r io.Reader) (*document.Document, error) {
	doc, err := s.loader.Load(ctx, source, r)
	if err != nil {
		return nil, err
	}
	s.SetDocument(ctx, doc)
	return doc, nil
}

// SetDocument replaces the current document and resets the state for it.
func (s *Session) SetDocument(ctx context.Context, doc *document.Document) {
	s.mu.Lock()
	previous := s.doc
	s.doc = doc
	s.state = s.state.ResetForDocument(doc)
	s.mu.Unlock()

	event := logging.FromContext(ctx).Info().
		Ctx(ctx).
		Str("component", "session").
		Str("operation", "set_document").
		Str("source", doc.Source()).
		Str("version", doc.Version()).
		Int("record_count", doc.Len())
	if previous != nil {
		event = event.Str("previous_version", previous.Version())
	}
	event.Msg("document replaced")
}

// Document returns the current document, nil before the first load.
func (s *Session) Document() *document.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// State returns the current view state.
func (s *Session) State() view.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetState replaces the view state.
func (s *Session) SetState(state view.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// Update applies fn to the view state atomically and returns the result.
func (s *Session) Update(fn func(view.State) view.State) view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}

// Deriver returns the deriver views are computed with.
func (s *Session) Deriver() *view.Deriver {
	return s.deriver
}

// View derives the current state against the current document.
func (s *Session) View(ctx context.Context) view.Result {
	s.mu.RLock()
	doc, state := s.doc, s.state
	s.mu.RUnlock()
	return s.deriver.Derive(ctx, doc, state)
}

// ViewOf derives state against the current document without storing it.
func (s *Session) ViewOf(ctx context.Context, state view.State) (*document.Document, view.Result) {
	doc := s.Document()
	return doc, s.deriver.Derive(ctx, doc, state)
}
