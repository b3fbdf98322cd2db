// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/vendorsync/pkg/ui/display"
	"github.com/arthur-debert/vendorsync/pkg/ui/styles"
)

// Renderer provides rich terminal output using lipgloss styles and glamour
type Renderer struct {
	output io.Writer

	// MarkdownStyle is a glamour style name or path; "auto" detects it.
	MarkdownStyle string
	// WordWrap limits markdown width, 0 keeps glamour's default.
	WordWrap int
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w, MarkdownStyle: "auto"}, nil
}

// RenderReport renders a report with styled sections
func (r *Renderer) RenderReport(report *display.Report) error {
	var b strings.Builder

	if report.Title != "" {
		b.WriteString(styles.GetStyle("Title").Render(report.Title))
		b.WriteString("\n")
	}

	label := styles.GetStyle("Label")
	for _, section := range report.Sections {
		b.WriteString(styles.GetStyle("Section").Render(section.Title))
		b.WriteString("\n")
		for _, item := range section.Items {
			b.WriteString(label.Render(item.Label))
			b.WriteString(" ")
			b.WriteString(stateStyle(item.State).Render(symbol(item.State) + item.Value))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(report.Warnings) > 0 {
		warn := styles.GetStyle("Warning")
		for _, w := range report.Warnings {
			b.WriteString(warn.Render("! " + w))
			b.WriteString("\n")
		}
	}

	if report.Markdown != "" {
		b.WriteString(r.renderMarkdown(report.Markdown))
	}
	if report.Raw != "" {
		b.WriteString(report.Raw)
		if !strings.HasSuffix(report.Raw, "\n") {
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error with error styling
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintln(r.output, styles.GetStyle("Error").Render("Error: "+err.Error()))
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Info").Render(msg))
	return err
}

// renderMarkdown falls back to the source text when glamour fails
func (r *Renderer) renderMarkdown(content string) string {
	var options []glamour.TermRendererOption
	if r.MarkdownStyle != "" && r.MarkdownStyle != "auto" {
		options = append(options, glamour.WithStylePath(r.MarkdownStyle))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.WordWrap > 0 {
		options = append(options, glamour.WithWordWrap(r.WordWrap))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

func stateStyle(state display.State) lipgloss.Style {
	switch state {
	case display.StateOK:
		return styles.GetStyle("Success")
	case display.StateChanged:
		return styles.GetStyle("Changed")
	case display.StateSkipped:
		return styles.GetStyle("Muted")
	case display.StateWarning:
		return styles.GetStyle("Warning")
	case display.StateError:
		return styles.GetStyle("Error")
	default:
		return lipgloss.NewStyle()
	}
}

func symbol(state display.State) string {
	switch state {
	case display.StateOK:
		return "✓ "
	case display.StateChanged:
		return "● "
	case display.StateSkipped:
		return "- "
	case display.StateWarning:
		return "! "
	case display.StateError:
		return "✗ "
	default:
		return ""
	}
}
