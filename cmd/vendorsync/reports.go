package vendorsync

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/vendorsync/internal/version"
	"github.com/arthur-debert/vendorsync/pkg/commands"
	"github.com/arthur-debert/vendorsync/pkg/deps"
	"github.com/arthur-debert/vendorsync/pkg/ui/display"
)

func changedState(changed bool) display.State {
	if changed {
		return display.StateChanged
	}
	return display.StateOK
}

func syncReport(r *commands.SyncResult) *display.Report {
	report := display.NewReport("Sync complete")
	report.Data = r

	upstream := report.Section("Upstream")
	if r.Cloned {
		upstream.Add("mirror", "cloned into "+r.Layout.MirrorDir, display.StateChanged)
	} else {
		upstream.Add("mirror", r.Layout.MirrorDir, display.StateOK)
	}
	upstream.Add("commit", r.Commit, display.StateInfo)
	upstream.Add("url", r.CommitURL, display.StateInfo)

	if r.Deps != nil {
		addOutcomes(report.Section("Dependencies"), r.Deps.Outcomes)
	}

	tree := report.Section("Tree")
	for _, e := range r.Tree.Entries {
		value := "added"
		if e.Replaced {
			value = "replaced"
		}
		name := e.Name
		if e.IsDir {
			name += "/"
		}
		tree.Add(name, value, display.StateChanged)
	}
	tree.Add("files", fmt.Sprint(r.Tree.Files), display.StateInfo)

	m := report.Section("Manifest")
	m.Add("path", r.Layout.ManifestPath, display.StateInfo)
	m.Add("subdirs", strings.Join(r.Subdirs, ", "), display.StateInfo)
	m.Add("sources", fmt.Sprint(len(r.Sources)), changedState(r.Manifest.Changed))
	if r.Manifest.Changed {
		m.Add("diff", fmt.Sprintf("-%d +%d", r.Manifest.Removed, r.Manifest.Added), display.StateChanged)
	}

	p := report.Section("Provenance")
	p.Add("path", r.Layout.ReadmePath, display.StateInfo)
	p.Add("lines", fmt.Sprint(r.Provenance.Lines), changedState(r.Provenance.Changed))

	for _, w := range r.Warnings {
		report.Warn(w)
	}
	return report
}

func addOutcomes(s *display.Section, outcomes []deps.Outcome) {
	for _, o := range outcomes {
		switch {
		case o.Present:
			s.Add(o.Module, "present", display.StateOK)
		case o.Installed:
			s.Add(o.Module, "installed "+o.Package, display.StateChanged)
		case o.Error != "":
			s.Add(o.Module, o.Error, display.StateError)
		default:
			s.Add(o.Module, "missing", display.StateWarning)
		}
	}
}

func manifestReport(r *commands.ManifestResult) *display.Report {
	title := "Manifest updated"
	if r.Checked {
		title = "Manifest check"
	}
	report := display.NewReport(title)
	report.Data = r

	s := report.Section("Manifest")
	s.Add("path", r.Path, display.StateInfo)
	s.Add("subdirs", strings.Join(r.Subdirs, ", "), display.StateInfo)
	s.Add("sources", fmt.Sprint(len(r.Sources)), changedState(r.Result.Changed))
	if r.Result.Changed {
		s.Add("diff", fmt.Sprintf("-%d +%d", r.Result.Removed, r.Result.Added), display.StateChanged)
	}

	switch {
	case !r.Result.Found:
		report.Warn("no library block found in " + r.Path)
	case !r.Result.Closed:
		report.Warn("library block in " + r.Path + " is not closed")
	}
	if r.Drifted() {
		report.Raw = r.Diff
	}
	return report
}

func provenanceReport(r *commands.ProvenanceResult) *display.Report {
	report := display.NewReport("Provenance recorded")
	report.Data = r

	s := report.Section("Provenance")
	s.Add("path", r.Path, display.StateInfo)
	s.Add("commit", r.Commit, display.StateInfo)
	s.Add("url", r.URL, display.StateInfo)
	s.Add("lines", fmt.Sprint(r.Result.Lines), changedState(r.Result.Changed))
	if !r.Result.Found {
		report.Warn("no provenance line found in " + r.Path)
	}
	return report
}

func depsReport(r *commands.DepsResult) *display.Report {
	report := display.NewReport("Dependencies")
	report.Data = r

	addOutcomes(report.Section("Policy: "+r.Policy), r.Outcomes)
	if n := r.Missing(); n > 0 {
		report.Warn(fmt.Sprintf("%d dependencies are still missing", n))
	}
	return report
}

func statusReport(r *commands.StatusResult) *display.Report {
	report := display.NewReport("")
	report.Data = r
	report.Markdown = r.Markdown()
	return report
}

func genConfigReport(r *commands.GenConfigResult) *display.Report {
	report := display.NewReport("")
	report.Data = r
	if r.FileWritten != "" {
		report.Title = fmt.Sprintf(MsgConfigWritten, r.FileWritten)
		return report
	}
	report.Raw = r.ConfigContent
	return report
}

func versionReport(info version.Info) *display.Report {
	report := display.NewReport("vendorsync " + info.Version)
	report.Data = info
	report.Section("Build").
		Add("commit", info.Commit, display.StateInfo).
		Add("built", info.Date, display.StateInfo)
	return report
}
