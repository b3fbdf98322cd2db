// Package display holds the format-independent shape of command output.
// Commands build a Report; each renderer decides how to show it.
package display

// State classifies a report item
type State string

const (
	StateOK      State = "ok"
	StateChanged State = "changed"
	StateSkipped State = "skipped"
	StateWarning State = "warning"
	StateError   State = "error"
	StateInfo    State = "info"
)

// Item is one labelled line of a report
type Item struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
	State State  `json:"state" yaml:"state"`
}

// Section groups items under a title
type Section struct {
	Title string `json:"title" yaml:"title"`
	Items []Item `json:"items" yaml:"items"`
}

// Report is what a command hands to a renderer
type Report struct {
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections,omitempty" yaml:"sections,omitempty"`
	Warnings []string  `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Markdown is shown after the sections; terminal output renders it.
	Markdown string `json:"-" yaml:"-"`

	// Raw is printed verbatim by human renderers (a diff, a config file).
	Raw string `json:"-" yaml:"-"`

	// Data is what structured renderers encode; the report itself when nil.
	Data interface{} `json:"-" yaml:"-"`
}

// NewReport starts a report
func NewReport(title string) *Report {
	return &Report{Title: title}
}

// Section appends a section and returns it for filling
func (r *Report) Section(title string) *Section {
	r.Sections = append(r.Sections, Section{Title: title})
	return &r.Sections[len(r.Sections)-1]
}

// Add appends an item
func (s *Section) Add(label, value string, state State) *Section {
	s.Items = append(s.Items, Item{Label: label, Value: value, State: state})
	return s
}

// Warn appends a warning
func (r *Report) Warn(msg string) *Report {
	r.Warnings = append(r.Warnings, msg)
	return r
}

// Payload is the value structured renderers encode
func (r *Report) Payload() interface{} {
	if r.Data != nil {
		return r.Data
	}
	return r
}
