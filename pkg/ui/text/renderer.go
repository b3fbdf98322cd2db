// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/vendorsync/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderReport renders a report as plain text
func (r *Renderer) RenderReport(report *display.Report) error {
	var b strings.Builder

	if report.Title != "" {
		b.WriteString(report.Title)
		b.WriteString("\n")
	}

	for _, section := range report.Sections {
		b.WriteString("\n")
		b.WriteString(section.Title)
		b.WriteString(":\n")
		width := labelWidth(section.Items)
		for _, item := range section.Items {
			fmt.Fprintf(&b, "  %-*s  %s%s\n", width, item.Label, item.Value, marker(item.State))
		}
	}

	if len(report.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	for _, block := range []string{report.Markdown, report.Raw} {
		if block == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(block)
		if !strings.HasSuffix(block, "\n") {
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func labelWidth(items []display.Item) int {
	width := 0
	for _, item := range items {
		if len(item.Label) > width {
			width = len(item.Label)
		}
	}
	return width
}

func marker(state display.State) string {
	switch state {
	case display.StateChanged, display.StateSkipped, display.StateWarning, display.StateError:
		return " [" + string(state) + "]"
	default:
		return ""
	}
}
