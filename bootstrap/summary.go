package bootstrap

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Step statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// StepInfo is the recorded outcome of one App.Step.
type StepInfo struct {
	Name     string
	Status   string
	Items    int
	Duration time.Duration
}

// Summary tracks and displays what a run did.
type Summary struct {
	mu              sync.Mutex
	serviceName     string
	version         string
	startupDuration time.Duration
	steps           []StepInfo
}

// NewSummary creates a new run summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
		steps:       make([]StepInfo, 0),
	}
}

// SetStartupDuration records how long the start hooks took.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startupDuration = d
}

// TrackStep records a step outcome.
func (s *Summary) TrackStep(name, status string, items int, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, StepInfo{Name: name, Status: status, Items: items, Duration: d})
}

// Steps returns a copy of the recorded steps in execution order.
func (s *Summary) Steps() []StepInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StepInfo, len(s.steps))
	copy(out, s.steps)
	return out
}

// Failed returns the number of failed steps.
func (s *Summary) Failed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, st := range s.steps {
		if st.Status != StatusOK {
			n++
		}
	}
	return n
}

// Display prints the summary as a tree.
func (s *Summary) Display(w io.Writer) {
	steps := s.Steps()
	failed := s.Failed()

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "🚀 %s v%s (startup %.2fs)\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	if len(steps) == 0 {
		fmt.Fprintf(w, "   └── No steps recorded\n\n")
		return
	}

	fmt.Fprintf(w, "📦 Steps\n")
	for i, st := range steps {
		fmt.Fprintf(w, "   %s %s %s: %d items in %s\n",
			treePrefix(i, len(steps)), statusIcon(st.Status), st.Name, st.Items, st.Duration.Round(time.Microsecond))
	}
	fmt.Fprintf(w, "\n")

	if failed == 0 {
		fmt.Fprintf(w, "✅ All steps succeeded (%d/%d)\n\n", len(steps), len(steps))
	} else {
		fmt.Fprintf(w, "⚠️  Some steps failed (%d/%d ok)\n\n", len(steps)-failed, len(steps))
	}
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func statusIcon(status string) string {
	switch status {
	case StatusOK:
		return "✅"
	case StatusFailed:
		return "❌"
	default:
		return "⚠️"
	}
}
