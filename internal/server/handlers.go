package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rshade/puretable/internal/document"
	"github.com/rshade/puretable/internal/logging"
	"github.com/rshade/puretable/internal/render"
	"github.com/rshade/puretable/internal/view"
	"github.com/rshade/puretable/pkg/version"
)

const (
	uploadFormField   = "file"
	defaultUploadName = "upload.json"
	sourceParam       = "name"
	multipartMemory   = 1 << 20
)

//nolint:gochecknoglobals // Template helpers are fixed at start-up.
var templateFuncs = template.FuncMap{
	"sortMark": func(s *view.SortSpec, field string) string {
		switch {
		case s == nil || s.Field != field:
			return ""
		case s.Direction == view.Descending:
			return "▼"
		default:
			return "▲"
		}
	},
}

// errorResponse is the body of every API error.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"status"`
}

// documentInfo describes the loaded document.
type documentInfo struct {
	Loaded      bool      `json:"loaded"`
	Source      string    `json:"source,omitempty"`
	Version     string    `json:"version,omitempty"`
	LoadedAt    time.Time `json:"loaded_at,omitzero"`
	Columns     []string  `json:"columns"`
	RecordCount int       `json:"record_count"`
}

func newDocumentInfo(doc *document.Document) documentInfo {
	if doc == nil {
		return documentInfo{Columns: []string{}}
	}
	return documentInfo{
		Loaded:      true,
		Source:      doc.Source(),
		Version:     doc.Version(),
		LoadedAt:    doc.LoadedAt(),
		Columns:     doc.Columns(),
		RecordCount: doc.Len(),
	}
}

// derive runs state against the session's document and records metrics.
func (s *Server) derive(r *http.Request, state view.State) render.Payload {
	start := time.Now()
	doc, res := s.session.ViewOf(r.Context(), state)
	s.metrics.derivations.Inc()
	s.metrics.deriveDuration.Observe(time.Since(start).Seconds())
	return render.NewPayload(doc, state, res, s.opts.WindowSize)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	state, err := view.ParseQuery(r.URL.Query(), s.opts.DefaultPageSize)
	if err != nil {
		s.sendError(w, r, http.StatusBadRequest, "invalid view parameters", err)
		return
	}
	s.sendJSON(w, r, http.StatusOK, s.derive(r, state))
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, r, http.StatusOK, newDocumentInfo(s.session.Document()))
}

// handleDocument replaces the document with the request body. A body that
// fails to parse leaves the current document in place.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get(sourceParam)
	if source == "" {
		source = defaultUploadName
	}
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	defer func() { _ = body.Close() }()

	doc, status, err := s.load(r, source, body)
	if err != nil {
		s.sendError(w, r, status, "document rejected", err)
		return
	}
	s.sendJSON(w, r, http.StatusCreated, newDocumentInfo(doc))
}

// handleUpload accepts the page's multipart form and redirects back to it.
// The form carries the view the user was on so a reload keeps its search
// and sort.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		s.renderIndex(w, r, view.NewState(s.opts.DefaultPageSize), http.StatusBadRequest,
			fmt.Sprintf("Upload failed: %v", err))
		return
	}
	state, err := view.ParseQuery(r.PostForm, s.opts.DefaultPageSize)
	if err != nil {
		state = view.NewState(s.opts.DefaultPageSize)
	}

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		s.renderIndex(w, r, state, http.StatusBadRequest, fmt.Sprintf("Upload failed: %v", err))
		return
	}
	defer func() { _ = file.Close() }()

	doc, status, loadErr := s.load(r, header.Filename, file)
	if loadErr != nil {
		s.renderIndex(w, r, state, status, fmt.Sprintf("Could not load %s: %v", header.Filename, loadErr))
		return
	}
	state = state.ResetForDocument(doc)
	s.session.SetState(state)
	http.Redirect(w, r, "/?"+state.Query().Encode(), http.StatusSeeOther)
}

// load parses body into the session and reports the HTTP status for failures.
func (s *Server) load(r *http.Request, source string, body io.Reader) (*document.Document, int, error) {
	ctx := r.Context()
	doc, err := s.session.Load(ctx, source, body)
	if err != nil {
		s.metrics.documentLoads.WithLabelValues(outcomeFailure).Inc()
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("operation", "load_document").
			Str("source", source).
			Err(err).
			Msg("keeping previous document")

		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, document.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		return nil, status, err
	}
	s.metrics.documentLoads.WithLabelValues(outcomeSuccess).Inc()
	return doc, http.StatusCreated, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, r, http.StatusOK, map[string]any{
		"status":          "ok",
		"version":         version.GetVersion(),
		"document_loaded": s.session.Document() != nil,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	state, err := view.ParseQuery(r.URL.Query(), s.opts.DefaultPageSize)
	if err != nil {
		s.renderIndex(w, r, view.NewState(s.opts.DefaultPageSize), http.StatusBadRequest, err.Error())
		return
	}
	s.renderIndex(w, r, state, http.StatusOK, "")
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, state view.State, status int, message string) {
	data := newPageData(s.derive(r, state), message)

	var buf strings.Builder
	if err := s.template.ExecuteTemplate(&buf, "index.html.tmpl", data); err != nil {
		s.sendError(w, r, http.StatusInternalServerError, "rendering page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, buf.String())
}

func (s *Server) sendJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.FromContext(r.Context()).Error().
			Ctx(r.Context()).
			Str("operation", "encode_response").
			Err(err).
			Msg("failed to encode JSON response")
	}
}

func (s *Server) sendError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	resp := errorResponse{Error: message, Status: status}
	if err != nil {
		resp.Details = err.Error()
	}
	s.sendJSON(w, r, status, resp)
}
