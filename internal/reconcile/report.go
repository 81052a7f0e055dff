// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/pkg/types"
)

// RowOutcome is the per-row entry of a batch report, keyed by row index.
type RowOutcome struct {
	Index   int      `yaml:"index"`
	Title   string   `yaml:"title"`
	State   string   `yaml:"state"`
	Source  string   `yaml:"source,omitempty"`
	Cached  bool     `yaml:"cached,omitempty"`
	Missing []string `yaml:"missing,omitempty"`
	Error   string   `yaml:"error,omitempty"`
}

// Report summarizes a batch reconciliation run.
type Report struct {
	Summary struct {
		Total      int `yaml:"total"`
		Matched    int `yaml:"matched"`
		Rejected   int `yaml:"rejected"`
		Exhausted  int `yaml:"exhausted"`
		Complete   int `yaml:"complete"`
		Skipped    int `yaml:"skipped"`
		Errors     int `yaml:"errors"`
		Included   int `yaml:"included"`
		Excluded   int `yaml:"excluded"`
		Unresolved int `yaml:"unresolved"`
	} `yaml:"summary"`
	Rows      []RowOutcome `yaml:"rows"`
	Timestamp time.Time    `yaml:"timestamp"`
}

// Batch reconciles rows strictly sequentially: one row is fully resolved
// before the next begins. Individual failures never stop the run; each row
// lands in the report with its terminal state. Progress goes to w.
func (o *Orchestrator) Batch(ctx context.Context, recs []*types.ArticleRecord, w io.Writer) Report {
	var report Report
	report.Summary.Total = len(recs)

	for i, rec := range recs {
		if ctx.Err() != nil {
			// Interrupted runs keep partial progress through the page cache.
			break
		}

		out := o.Reconcile(ctx, rec)

		row := RowOutcome{
			Index:   i,
			Title:   rec.Title,
			State:   out.State.String(),
			Cached:  out.FromCache,
			Missing: out.Missing,
		}
		if out.State == StateMatchedAndMerged {
			row.Source = out.Source.String()
		}
		if out.Err != nil {
			row.Error = out.Err.Error()
		}
		report.Rows = append(report.Rows, row)

		switch out.State {
		case StateMatchedAndMerged:
			report.Summary.Matched++
			fmt.Fprintf(w, "matched: %s (%s)\n", rec.Title, out.Source)
		case StateRejected:
			report.Summary.Rejected++
			fmt.Fprintf(w, "rejected: %s (missing: %v)\n", rec.Title, out.Missing)
		case StateExhausted:
			report.Summary.Exhausted++
			fmt.Fprintf(w, "exhausted: %s\n", rec.Title)
		case StateComplete:
			report.Summary.Complete++
		case StateSkipped:
			report.Summary.Skipped++
			fmt.Fprintf(w, "skipped row %d: %v\n", i, out.Err)
		case StateFailed:
			report.Summary.Errors++
			fmt.Fprintf(w, "failed: %s: %v\n", rec.Title, out.Err)
		default:
			report.Summary.Errors++
			fmt.Fprintf(w, "error: %s: %v\n", rec.Title, out.Err)
		}

		switch decisionOf(rec) {
		case types.DecisionIncluded, types.DecisionConflictIncluded:
			report.Summary.Included++
		case types.DecisionExcluded, types.DecisionConflictExcluded:
			report.Summary.Excluded++
		default:
			report.Summary.Unresolved++
		}
	}

	report.Timestamp = time.Now()
	return report
}

// decisionOf prefers the final screening decision, falling back to the
// screened one for datasets that never reached a final phase.
func decisionOf(rec *types.ArticleRecord) types.Decision {
	if rec.FinalDecision != types.DecisionUnset {
		return rec.FinalDecision
	}
	return rec.ScreenedDecision
}

// WriteReport saves a batch report as YAML.
func WriteReport(path string, report Report) error {
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
