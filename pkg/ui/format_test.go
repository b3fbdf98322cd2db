package ui_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/arthur-debert/vendorsync/pkg/ui"
	"github.com/stretchr/testify/assert"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		name     string
		format   ui.Format
		expected string
	}{
		{name: "auto format", format: ui.FormatAuto, expected: "auto"},
		{name: "terminal format", format: ui.FormatTerminal, expected: "term"},
		{name: "text format", format: ui.FormatText, expected: "text"},
		{name: "json format", format: ui.FormatJSON, expected: "json"},
		{name: "yaml format", format: ui.FormatYAML, expected: "yaml"},
		{name: "unknown format", format: ui.Format(999), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{name: "parse auto", input: "auto", expected: ui.FormatAuto},
		{name: "parse empty string as auto", input: "", expected: ui.FormatAuto},
		{name: "parse term", input: "term", expected: ui.FormatTerminal},
		{name: "parse terminal", input: "terminal", expected: ui.FormatTerminal},
		{name: "parse text", input: "text", expected: ui.FormatText},
		{name: "parse plain", input: "plain", expected: ui.FormatText},
		{name: "parse json uppercase", input: "JSON", expected: ui.FormatJSON},
		{name: "parse yaml", input: "yaml", expected: ui.FormatYAML},
		{name: "parse yml", input: "yml", expected: ui.FormatYAML},
		{name: "parse invalid", input: "xml", expected: ui.FormatAuto, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatStructured(t *testing.T) {
	assert.True(t, ui.FormatJSON.Structured())
	assert.True(t, ui.FormatYAML.Structured())
	assert.False(t, ui.FormatText.Structured())
	assert.False(t, ui.FormatTerminal.Structured())
}

func TestResolve(t *testing.T) {
	assert.Equal(t, ui.FormatJSON, ui.Resolve(ui.FormatJSON, &bytes.Buffer{}))
	assert.Equal(t, ui.FormatTerminal, ui.Resolve(ui.FormatTerminal, &bytes.Buffer{}))
	assert.Equal(t, ui.FormatText, ui.Resolve(ui.FormatAuto, &bytes.Buffer{}))

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, ui.FormatText, ui.Resolve(ui.FormatAuto, os.Stdout))
}
