package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/puretable/internal/document"
	"github.com/rshade/puretable/internal/logging"
	"github.com/rshade/puretable/internal/pagination"
	"github.com/rshade/puretable/internal/session"
	listview "github.com/rshade/puretable/internal/tui/list"
	"github.com/rshade/puretable/internal/view"
)

// Layout defaults.
const (
	defaultWidth     = 120
	defaultHeight    = 30
	minHeight        = 3
	chromeHeight     = 7
	minColumnWidth   = 4
	maxColumnWidth   = 30
	statusTTL        = 4 * time.Second
	sortMarkerAsc    = " ▲"
	sortMarkerDesc   = " ▼"
	selectedColMark  = "*"
	msgNoDocument    = "No document loaded. Press 'o' to open a file."
	msgNoSelectedRow = "No record selected."
)

// Mode is what the browser is currently doing.
type Mode int

// Browser modes.
const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeFilter
	ModeOpen
	ModeDetail
	ModeQuitting
)

// DocumentLoadedMsg reports the outcome of opening a file.
type DocumentLoadedMsg struct {
	Path     string
	Document *document.Document
	Err      error
}

// fieldLine is one row of the record detail view.
type fieldLine struct {
	name  string
	value string
}

// BrowserModel is the Bubble Tea model of the table browser.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type BrowserModel struct {
	ctx        context.Context
	session    *session.Session
	windowSize int
	now        func() time.Time

	mode   Mode
	column int
	result view.Result

	table     table.Model
	textInput textinput.Model
	editField string
	editState view.State
	detail    *listview.Scroller[fieldLine]
	status    Status

	width  int
	height int
}

// NewBrowserModel creates a browser over sess. windowSize is the number of
// page links shown in the footer.
func NewBrowserModel(ctx context.Context, sess *session.Session, windowSize int) BrowserModel {
	if windowSize < 1 {
		windowSize = pagination.DefaultWindowSize
	}
	m := BrowserModel{
		ctx:        ctx,
		session:    sess,
		windowSize: windowSize,
		now:        time.Now,
		textInput:  newTextInput(),
		width:      defaultWidth,
		height:     defaultHeight,
	}
	m.refresh()
	return m
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 40 //nolint:mnd // Input box width.
	return ti
}

// Init implements tea.Model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.status.ClearExpired(m.now())

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.detail != nil {
			m.detail.SetHeight(m.bodyHeight())
		}
		m.rebuildTable()
		return m, nil
	case DocumentLoadedMsg:
		return m.handleDocumentLoaded(msg)
	}

	switch m.mode {
	case ModeSearch, ModeFilter, ModeOpen:
		return m.handleInput(msg)
	case ModeDetail:
		return m.handleDetail(msg)
	case ModeQuitting:
		return m, nil
	case ModeBrowse:
		return m.handleBrowse(msg)
	default:
		return m, nil
	}
}

func (m BrowserModel) handleBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	columns := m.columns()
	switch keyMsg.String() {
	case keyQuit, keyCtrlC:
		m.mode = ModeQuitting
		return m, tea.Quit
	case keySlash:
		return m.startInput(ModeSearch, "", m.session.State().Search)
	case keyFilter:
		if len(columns) == 0 {
			return m, nil
		}
		field := columns[m.column]
		return m.startInput(ModeFilter, field, m.session.State().Filter(field))
	case keyOpen:
		return m.startInput(ModeOpen, "", "")
	case keyLeft, keyLeftAlt:
		if m.column > 0 {
			m.column--
			m.rebuildTable()
		}
		return m, nil
	case keyRight, keyRightAlt:
		if m.column < len(columns)-1 {
			m.column++
			m.rebuildTable()
		}
		return m, nil
	case keySort:
		if len(columns) > 0 {
			m.apply(func(s view.State) view.State { return s.ToggleSort(columns[m.column]) })
		}
		return m, nil
	case keyClear:
		m.apply(view.State.ClearFilters)
		m.setStatus("Filters cleared", false)
		return m, nil
	case keyNext, keyPgDown:
		total := m.result.TotalPages
		m.apply(func(s view.State) view.State { return s.NextPage(total) })
		return m, nil
	case keyPrev, keyPgUp:
		m.apply(view.State.PrevPage)
		return m, nil
	case keyEnter:
		m.openDetail()
		return m, nil
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m BrowserModel) startInput(mode Mode, field, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.editField = field
	m.editState = m.session.State()
	m.textInput.SetValue(value)
	m.textInput.CursorEnd()
	m.textInput.Focus()
	m.table.Blur()
	return m, textinput.Blink
}

func (m BrowserModel) handleInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyCtrlC:
			m.mode = ModeQuitting
			return m, tea.Quit
		case keyEsc:
			if m.mode != ModeOpen && !m.session.State().Equal(m.editState) {
				restored := m.editState
				m.apply(func(view.State) view.State { return restored })
			}
			return m.finishInput(), nil
		case keyEnter:
			if m.mode == ModeOpen {
				path := strings.TrimSpace(m.textInput.Value())
				m = m.finishInput()
				if path == "" {
					return m, nil
				}
				return m, m.loadFileCmd(path)
			}
			m.applyInput(m.textInput.Value())
			return m.finishInput(), nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.mode != ModeOpen {
		m.applyInput(m.textInput.Value())
	}
	return m, cmd
}

func (m BrowserModel) finishInput() BrowserModel {
	m.mode = ModeBrowse
	m.editField = ""
	m.editState = view.State{}
	m.textInput.Blur()
	m.textInput.SetValue("")
	m.table.Focus()
	return m
}

// applyInput updates search or filter state while the user types.
func (m *BrowserModel) applyInput(value string) {
	switch m.mode {
	case ModeSearch:
		if value != m.session.State().Search {
			m.apply(func(s view.State) view.State { return s.WithSearch(value) })
		}
	case ModeFilter:
		field := m.editField
		if value != m.session.State().Filter(field) {
			m.apply(func(s view.State) view.State { return s.WithFilter(field, value) })
		}
	default:
	}
}

// loadFileCmd opens path in the background.
func (m BrowserModel) loadFileCmd(path string) tea.Cmd {
	ctx, sess := m.ctx, m.session
	return func() tea.Msg {
		doc, err := sess.LoadFile(ctx, path)
		return DocumentLoadedMsg{Path: path, Document: doc, Err: err}
	}
}

func (m BrowserModel) handleDocumentLoaded(msg DocumentLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logging.FromContext(m.ctx).Warn().
			Ctx(m.ctx).
			Str("component", "tui").
			Str("operation", "open_file").
			Str("path", msg.Path).
			Err(msg.Err).
			Msg("keeping previous document")
		m.setStatus(fmt.Sprintf("Could not open %s: %v", msg.Path, msg.Err), true)
		return m, nil
	}

	m.column = 0
	m.mode = ModeBrowse
	m.detail = nil
	m.refresh()
	m.setStatus(fmt.Sprintf("Opened %s (%d records)", msg.Document.Source(), msg.Document.Len()), false)
	return m, nil
}

func (m BrowserModel) handleDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.mode = ModeQuitting
			return m, tea.Quit
		case keyEsc, keyEnter:
			m.mode = ModeBrowse
			m.detail = nil
			m.table.Focus()
			return m, nil
		}
	}
	if m.detail != nil {
		m.detail.Update(msg)
	}
	return m, nil
}

// openDetail shows every field of the record under the table cursor,
// including fields outside the column set.
func (m *BrowserModel) openDetail() {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.result.Rows) {
		m.setStatus(msgNoSelectedRow, true)
		return
	}
	rec := m.result.Rows[cursor]

	columns := m.columns()
	lines := make([]fieldLine, 0, len(rec))
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		lines = append(lines, fieldLine{name: c, value: rec.Get(c)})
		seen[c] = true
	}
	for _, extra := range sortedKeys(rec) {
		if !seen[extra] {
			lines = append(lines, fieldLine{name: extra, value: rec[extra]})
		}
	}

	m.detail = listview.New(lines, m.bodyHeight(), renderFieldLine)
	m.mode = ModeDetail
	m.table.Blur()
}

// apply changes the session state and re-derives the view.
func (m *BrowserModel) apply(fn func(view.State) view.State) {
	m.session.Update(fn)
	m.refresh()
}

// refresh re-derives the current page and rebuilds the table.
func (m *BrowserModel) refresh() {
	m.result = m.session.View(m.ctx)
	if cols := m.columns(); m.column >= len(cols) {
		m.column = max(len(cols)-1, 0)
	}
	m.rebuildTable()
}

func (m *BrowserModel) setStatus(text string, isError bool) {
	m.status.Set(text, isError, m.now(), statusTTL)
}

func (m BrowserModel) columns() []string {
	doc := m.session.Document()
	if doc == nil {
		return nil
	}
	return doc.Columns()
}

func (m BrowserModel) bodyHeight() int {
	return max(m.height-chromeHeight, minHeight)
}

// rebuildTable reconstructs the table from the current result.
func (m *BrowserModel) rebuildTable() {
	names := m.columns()
	state := m.session.State()

	columns := make([]table.Column, len(names))
	for i, name := range names {
		title := name
		if state.Sort != nil && state.Sort.Field == name {
			if state.Sort.Direction == view.Descending {
				title += sortMarkerDesc
			} else {
				title += sortMarkerAsc
			}
		}
		if state.Filter(name) != "" {
			title += " ~"
		}
		if i == m.column {
			title = selectedColMark + title
		}

		width := len([]rune(title))
		for _, r := range m.result.Rows {
			width = max(width, len([]rune(r.Get(name))))
		}
		columns[i] = table.Column{Title: title, Width: min(max(width, minColumnWidth), maxColumnWidth)}
	}

	rows := make([]table.Row, len(m.result.Rows))
	for i, r := range m.result.Rows {
		row := make(table.Row, len(names))
		for j, name := range names {
			row[j] = truncateCell(r.Get(name), columns[j].Width)
		}
		rows[i] = row
	}

	cursor := m.table.Cursor()
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(m.mode == ModeBrowse),
		table.WithHeight(m.bodyHeight()),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)
	if cursor > 0 && cursor < len(rows) {
		t.SetCursor(cursor)
	}
	m.table = t
}

func truncateCell(s string, width int) string {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return ' '
		}
		return r
	}, s)
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func (m BrowserModel) pageWindow() []int {
	return view.PageWindow(m.result.Meta.CurrentPage, m.result.TotalPages, m.windowSize)
}

// State returns the session's current view state.
func (m BrowserModel) State() view.State {
	return m.session.State()
}

// Result returns the page currently displayed.
func (m BrowserModel) Result() view.Result {
	return m.result
}

// Mode returns the current mode.
func (m BrowserModel) Mode() Mode {
	return m.mode
}
