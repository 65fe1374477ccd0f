package tui

import "time"

// Status is a footer message that disappears after a while.
type Status struct {
	Text    string
	IsError bool
	expiry  time.Time
}

// Set shows text until now+ttl. A zero ttl keeps it until replaced.
func (s *Status) Set(text string, isError bool, now time.Time, ttl time.Duration) {
	s.Text = text
	s.IsError = isError
	s.expiry = time.Time{}
	if ttl > 0 {
		s.expiry = now.Add(ttl)
	}
}

// ClearExpired drops the message once its time is up.
func (s *Status) ClearExpired(now time.Time) {
	if !s.expiry.IsZero() && now.After(s.expiry) {
		*s = Status{}
	}
}

// Visible reports whether there is a message to show.
func (s Status) Visible() bool {
	return s.Text != ""
}
