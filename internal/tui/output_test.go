package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestDetectOutputMode(t *testing.T) {
	tests := []struct {
		name       string
		forceColor bool
		noColor    bool
		plain      bool
		env        map[string]string
		stdoutTTY  bool
		stdinTTY   bool
		want       OutputMode
	}{
		{name: "interactive terminal", stdoutTTY: true, stdinTTY: true, want: OutputModeInteractive},
		{name: "piped stdout", stdoutTTY: false, stdinTTY: true, want: OutputModePlain},
		{name: "piped stdout with force color", forceColor: true, want: OutputModeStyled},
		{name: "piped stdin", stdoutTTY: true, stdinTTY: false, want: OutputModeStyled},
		{name: "plain flag", plain: true, stdoutTTY: true, stdinTTY: true, want: OutputModePlain},
		{name: "no color flag", noColor: true, stdoutTTY: true, stdinTTY: true, want: OutputModePlain},
		{name: "NO_COLOR", env: map[string]string{"NO_COLOR": ""}, stdoutTTY: true, stdinTTY: true, want: OutputModePlain},
		{name: "dumb terminal", env: map[string]string{"TERM": "dumb"}, stdoutTTY: true, stdinTTY: true, want: OutputModePlain},
		{name: "CI", env: map[string]string{"CI": "true"}, stdoutTTY: true, stdinTTY: true, want: OutputModeStyled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectOutputMode(tt.forceColor, tt.noColor, tt.plain, envOf(tt.env), tt.stdoutTTY, tt.stdinTTY)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "plain", OutputModePlain.String())
	assert.Equal(t, "styled", OutputModeStyled.String())
	assert.Equal(t, "interactive", OutputModeInteractive.String())
	assert.Equal(t, "unknown", OutputMode(42).String())
}
