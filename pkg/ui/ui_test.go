package ui_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/arthur-debert/vendorsync/pkg/ui"
	"github.com/arthur-debert/vendorsync/pkg/ui/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *display.Report {
	report := display.NewReport("Sync complete")
	report.Section("Upstream").
		Add("commit", "0123456789abcdef0123456789abcdef01234567", display.StateOK).
		Add("mirror", "pulled", display.StateChanged)
	report.Section("Manifest").
		Add("sources", "12", display.StateInfo).
		Add("removed", "0", display.StateSkipped)
	report.Warn("manifest markers not found")
	return report
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name        string
		format      ui.Format
		expectError bool
	}{
		{name: "create terminal renderer", format: ui.FormatTerminal},
		{name: "create text renderer", format: ui.FormatText},
		{name: "create json renderer", format: ui.FormatJSON},
		{name: "create yaml renderer", format: ui.FormatYAML},
		{name: "create auto renderer with buffer", format: ui.FormatAuto},
		{name: "invalid format", format: ui.Format(999), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			renderer, err := ui.NewRenderer(tt.format, buf)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, renderer)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, renderer)
			}
		})
	}
}

func TestTextRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderReport(sampleReport()))

	expected := "Sync complete\n" +
		"\n" +
		"Upstream:\n" +
		"  commit  0123456789abcdef0123456789abcdef01234567\n" +
		"  mirror  pulled [changed]\n" +
		"\n" +
		"Manifest:\n" +
		"  sources  12\n" +
		"  removed  0 [skipped]\n" +
		"\n" +
		"Warnings:\n" +
		"  - manifest markers not found\n"
	assert.Equal(t, expected, buf.String())
}

func TestTextRenderer_RawAndMarkdown(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatText, buf)
	require.NoError(t, err)

	report := display.NewReport("")
	report.Markdown = "# Status"
	report.Raw = "--- a\n+++ b\n"
	require.NoError(t, renderer.RenderReport(report))

	assert.Equal(t, "\n# Status\n\n--- a\n+++ b\n", buf.String())
}

func TestJSONRenderer(t *testing.T) {
	t.Run("encodes the report", func(t *testing.T) {
		buf := &bytes.Buffer{}
		renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
		require.NoError(t, err)

		require.NoError(t, renderer.RenderReport(sampleReport()))

		var decoded display.Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "Sync complete", decoded.Title)
		require.Len(t, decoded.Sections, 2)
		assert.Equal(t, display.StateChanged, decoded.Sections[0].Items[1].State)
		assert.Equal(t, []string{"manifest markers not found"}, decoded.Warnings)
	})

	t.Run("prefers data payload", func(t *testing.T) {
		buf := &bytes.Buffer{}
		renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
		require.NoError(t, err)

		report := sampleReport()
		report.Data = map[string]int{"sources": 12}
		require.NoError(t, renderer.RenderReport(report))

		var decoded map[string]int
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, 12, decoded["sources"])
	})

	t.Run("errors and messages", func(t *testing.T) {
		buf := &bytes.Buffer{}
		renderer, err := ui.NewRenderer(ui.FormatJSON, buf)
		require.NoError(t, err)

		require.NoError(t, renderer.RenderError(errors.New("boom")))
		assert.Contains(t, buf.String(), `"error": "boom"`)

		buf.Reset()
		require.NoError(t, renderer.RenderMessage("hello"))
		assert.Contains(t, buf.String(), `"message": "hello"`)
	})
}

func TestYAMLRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatYAML, buf)
	require.NoError(t, err)

	require.NoError(t, renderer.RenderReport(sampleReport()))

	var decoded display.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Sync complete", decoded.Title)
	require.Len(t, decoded.Sections, 2)
	assert.Equal(t, "pulled", decoded.Sections[0].Items[1].Value)

	buf.Reset()
	require.NoError(t, renderer.RenderError(errors.New("boom")))
	assert.Equal(t, "error: boom\n", buf.String())
}

func TestTerminalRenderer(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := ui.NewRenderer(ui.FormatTerminal, buf)
	require.NoError(t, err)

	report := sampleReport()
	report.Markdown = "## Drift\n\nnothing to report\n"
	require.NoError(t, renderer.RenderReport(report))

	out := buf.String()
	assert.Contains(t, out, "Sync complete")
	assert.Contains(t, out, "Upstream")
	assert.Contains(t, out, "pulled")
	assert.Contains(t, out, "manifest markers not found")
	assert.Contains(t, out, "Drift")

	buf.Reset()
	require.NoError(t, renderer.RenderError(errors.New("boom")))
	assert.Contains(t, buf.String(), "Error: boom")
}
