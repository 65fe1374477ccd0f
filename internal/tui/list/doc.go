// Package listview provides a scrolling list for Bubble Tea views.
//
// Only the rows inside the viewport are rendered, so a record with
// thousands of fields scrolls as cheaply as one with ten. Navigation uses
// up/down, j/k, pgup/pgdown and home/end.
package listview
