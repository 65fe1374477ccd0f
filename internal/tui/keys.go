package tui

// Key names as reported by tea.KeyMsg.String.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyFilter   = "f"
	keySort     = "s"
	keyClear    = "c"
	keyNext     = "n"
	keyPrev     = "p"
	keyPgDown   = "pgdown"
	keyPgUp     = "pgup"
	keyOpen     = "o"
	keyLeft     = "left"
	keyRight    = "right"
	keyLeftAlt  = "h"
	keyRightAlt = "l"
)

const helpText = "/ search  f filter  ←/→ column  s sort  c clear  n/p page  enter detail  o open  q quit"
