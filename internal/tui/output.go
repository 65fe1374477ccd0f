package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how results reach the terminal.
type OutputMode int

// Output modes, from least to most capable.
const (
	// OutputModePlain writes unstyled text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes text with colors but no interaction.
	OutputModeStyled
	// OutputModeInteractive runs the full-screen browser.
	OutputModeInteractive
)

// String implements fmt.Stringer.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// DetectOutputMode picks the mode for stdout. plain and noColor force
// plain output; forceColor allows styling when stdout is not a terminal.
// Interactive mode needs both stdin and stdout to be terminals.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(forceColor, noColor, plain, os.LookupEnv,
		term.IsTerminal(int(os.Stdout.Fd())), term.IsTerminal(int(os.Stdin.Fd())))
}

func detectOutputMode(
	forceColor, noColor, plain bool,
	lookupEnv func(string) (string, bool),
	stdoutTTY, stdinTTY bool,
) OutputMode {
	if plain || noColor {
		return OutputModePlain
	}
	if _, ok := lookupEnv("NO_COLOR"); ok {
		return OutputModePlain
	}
	if v, _ := lookupEnv("TERM"); v == "dumb" {
		return OutputModePlain
	}
	if !stdoutTTY {
		if forceColor {
			return OutputModeStyled
		}
		return OutputModePlain
	}
	if _, ci := lookupEnv("CI"); ci || !stdinTTY {
		return OutputModeStyled
	}
	return OutputModeInteractive
}
