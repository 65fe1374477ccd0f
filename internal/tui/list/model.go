package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected is true for the cursor row.
type RenderFunc[T any] func(item T, selected bool) string

// Scroller is a cursor over items with a fixed-height viewport.
type Scroller[T any] struct {
	items  []T
	render RenderFunc[T]

	cursor int
	offset int
	height int
}

// New returns a Scroller showing height rows at a time.
func New[T any](items []T, height int, render RenderFunc[T]) *Scroller[T] {
	if height < 1 {
		height = 1
	}
	return &Scroller[T]{items: items, render: render, height: height}
}

// Update moves the cursor for navigation keys and resizes on window changes.
//
//nolint:exhaustive // Only navigation keys are handled.
func (s *Scroller[T]) Update(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetHeight(msg.Height)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyUp:
			s.SetCursor(s.cursor - 1)
		case tea.KeyDown:
			s.SetCursor(s.cursor + 1)
		case tea.KeyPgUp:
			s.SetCursor(s.cursor - s.height)
		case tea.KeyPgDown:
			s.SetCursor(s.cursor + s.height)
		case tea.KeyHome:
			s.SetCursor(0)
		case tea.KeyEnd:
			s.SetCursor(len(s.items) - 1)
		case tea.KeyRunes:
			switch msg.String() {
			case "j":
				s.SetCursor(s.cursor + 1)
			case "k":
				s.SetCursor(s.cursor - 1)
			}
		default:
		}
	}
}

// SetHeight changes the viewport height, keeping the cursor visible.
func (s *Scroller[T]) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	s.height = h
	s.scrollToCursor()
}

// SetCursor moves the cursor, clamped to the items.
func (s *Scroller[T]) SetCursor(i int) {
	switch {
	case len(s.items) == 0 || i < 0:
		i = 0
	case i >= len(s.items):
		i = len(s.items) - 1
	}
	s.cursor = i
	s.scrollToCursor()
}

// scrollToCursor moves the viewport the least distance that shows the cursor.
func (s *Scroller[T]) scrollToCursor() {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.height {
		s.offset = s.cursor - s.height + 1
	}
	if maxOffset := len(s.items) - s.height; s.offset > maxOffset {
		s.offset = max(maxOffset, 0)
	}
}

// View renders the rows inside the viewport.
func (s *Scroller[T]) View() string {
	end := min(s.offset+s.height, len(s.items))
	lines := make([]string, 0, end-s.offset)
	for i := s.offset; i < end; i++ {
		lines = append(lines, s.render(s.items[i], i == s.cursor))
	}
	return strings.Join(lines, "\n")
}

// Len returns the number of items.
func (s *Scroller[T]) Len() int {
	return len(s.items)
}

// Cursor returns the index of the cursor row.
func (s *Scroller[T]) Cursor() int {
	return s.cursor
}

// Offset returns the index of the first visible row.
func (s *Scroller[T]) Offset() int {
	return s.offset
}

// Selected returns the item under the cursor, or nil when empty.
func (s *Scroller[T]) Selected() *T {
	if len(s.items) == 0 {
		return nil
	}
	return &s.items[s.cursor]
}
