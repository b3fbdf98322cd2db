package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/vendorsync/pkg/runner"
)

// MockRunner is a mock implementation of the runner.Runner interface for testing.
// It records every command and delegates to RunFunc when set.
type MockRunner struct {
	RunFunc func(ctx context.Context, cmd runner.Command) (runner.Result, error)

	mu    sync.Mutex
	calls []runner.Command
}

// Run records the command and runs the mock's function.
func (m *MockRunner) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, cmd)
	}
	return runner.Result{}, nil
}

// Calls returns the commands run so far, in order.
func (m *MockRunner) Calls() []runner.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]runner.Command, len(m.calls))
	copy(out, m.calls)
	return out
}

// CommandLines returns the recorded commands rendered as strings.
func (m *MockRunner) CommandLines() []string {
	calls := m.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}
