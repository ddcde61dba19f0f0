package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/samber/lo"

	"go.viam.com/motorcheck/selftest"
)

// summary collects cycle results for the end of run table.
type summary struct {
	runID string

	mu     sync.Mutex
	cycles []selftest.Cycle
}

func newSummary(runID string) *summary {
	return &summary{runID: runID}
}

func (s *summary) add(cycle selftest.Cycle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles = append(s.cycles, cycle)
}

// reports returns every completed report, skipping the zero reports of aborted cycles.
func (s *summary) reports() []selftest.TestReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.FlatMap(s.cycles, func(cycle selftest.Cycle, _ int) []selftest.TestReport {
		if cycle.Err != nil {
			return nil
		}
		return cycle.Reports[:]
	})
}

func (s *summary) String() string {
	s.mu.Lock()
	cycles := append([]selftest.Cycle(nil), s.cycles...)
	s.mu.Unlock()

	t := table.NewWriter()
	t.SetTitle("run " + s.runID)
	t.AppendHeader(table.Row{"Cycle", "Test", "Final RPM", "Peak RPM", "Speed", "Position", "Mismatches", "Max error"})
	for _, cycle := range cycles {
		if cycle.Err != nil {
			t.AppendRow(table.Row{cycle.Number, "aborted", "", "", "", "", cycle.Err.Error()})
			continue
		}
		for _, report := range cycle.Reports {
			t.AppendRow(table.Row{
				cycle.Number,
				fmt.Sprintf("%d %s", report.Direction.Number(), report.Direction),
				fmt.Sprintf("%.1f", report.FinalVelocity),
				fmt.Sprintf("%.1f", report.PeakVelocity),
				report.SpeedReached,
				report.PositionMatched,
				report.Mismatches,
				fmt.Sprintf("%.3f", report.MaxPositionError),
			})
		}
	}

	reports := s.reports()
	passed := lo.CountBy(reports, func(r selftest.TestReport) bool { return r.Passed() })
	t.AppendFooter(table.Row{"", "passed", fmt.Sprintf("%d/%d", passed, len(reports))})
	for _, dir := range selftest.Directions {
		speeds := lo.FilterMap(reports, func(r selftest.TestReport, _ int) (float64, bool) {
			return r.FinalVelocity, r.Direction == dir
		})
		mean, err := stats.Mean(speeds)
		if err != nil {
			continue
		}
		spread, err := stats.StandardDeviation(speeds)
		if err != nil {
			continue
		}
		t.AppendFooter(table.Row{"", dir.String(), fmt.Sprintf("mean %.1f", mean), fmt.Sprintf("sd %.2f", spread)})
	}
	return t.Render()
}

func (s *summary) render(w io.Writer) {
	//nolint:errcheck
	fmt.Fprintln(w, s.String())
}
