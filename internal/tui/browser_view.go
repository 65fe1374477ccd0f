package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/puretable/internal/document"
)

// View implements tea.Model.
func (m BrowserModel) View() string {
	switch m.mode {
	case ModeQuitting:
		return ""
	case ModeDetail:
		return m.renderDetailView()
	default:
		return m.renderTableView()
	}
}

func (m BrowserModel) renderTableView() string {
	sections := []string{m.renderTitle()}

	if m.session.Document() == nil {
		sections = append(sections, SubtleStyle.Render(msgNoDocument))
	} else {
		sections = append(sections, m.table.View(), m.renderFooter())
	}

	if line := m.renderInputLine(); line != "" {
		sections = append(sections, line)
	}
	if m.status.Visible() {
		sections = append(sections, m.renderStatus())
	}
	sections = append(sections, SubtleStyle.Render(helpText))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m BrowserModel) renderTitle() string {
	doc := m.session.Document()
	if doc == nil {
		return HeaderStyle.Render("puretable")
	}

	parts := []string{HeaderStyle.Render(doc.Source())}
	state := m.session.State()
	if state.Search != "" {
		parts = append(parts, LabelStyle.Render("search:")+" "+state.Search)
	}
	for _, f := range state.ActiveFilters() {
		parts = append(parts, LabelStyle.Render(f+":")+" "+state.Filter(f))
	}
	return strings.Join(parts, "  ")
}

// renderFooter shows "Page x/y", the page window and the match counts.
func (m BrowserModel) renderFooter() string {
	res := m.result
	counts := fmt.Sprintf("%d/%d records", res.TotalMatched, res.TotalRecords)
	if res.TotalPages == 0 {
		return SubtleStyle.Render("No matching records | " + counts)
	}

	current := res.Meta.CurrentPage
	window := m.pageWindow()
	links := make([]string, len(window))
	for i, n := range window {
		if n == current {
			links[i] = CurrentPageStyle.Render(strconv.Itoa(n))
		} else {
			links[i] = PageStyle.Render(strconv.Itoa(n))
		}
	}

	return fmt.Sprintf("Page %d/%d  %s  %s",
		current, res.TotalPages, strings.Join(links, " "), SubtleStyle.Render(counts))
}

func (m BrowserModel) renderInputLine() string {
	switch m.mode {
	case ModeSearch:
		return LabelStyle.Render("Search: ") + m.textInput.View()
	case ModeFilter:
		return LabelStyle.Render("Filter "+m.editField+": ") + m.textInput.View()
	case ModeOpen:
		return LabelStyle.Render("Open file: ") + m.textInput.View()
	default:
		return ""
	}
}

func (m BrowserModel) renderStatus() string {
	if m.status.IsError {
		return ErrorStyle.Render(m.status.Text)
	}
	return InfoStyle.Render(m.status.Text)
}

func (m BrowserModel) renderDetailView() string {
	if m.detail == nil {
		return msgNoSelectedRow
	}

	var content strings.Builder
	content.WriteString(HeaderStyle.Render("RECORD DETAIL"))
	content.WriteString("\n\n")
	content.WriteString(m.detail.View())
	content.WriteString("\n\n")
	content.WriteString(SubtleStyle.Render(fmt.Sprintf("%d fields | ↑/↓ scroll  esc back  q quit", m.detail.Len())))
	return content.String()
}

func renderFieldLine(line fieldLine, selected bool) string {
	text := LabelStyle.Render(line.name+":") + " " + line.value
	if line.value == document.MissingValue {
		text = LabelStyle.Render(line.name+":") + " " + SubtleStyle.Render(line.value)
	}
	if selected {
		return "> " + text
	}
	return "  " + text
}

func sortedKeys(r document.Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
