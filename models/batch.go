package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Outcome is the per-product result of a batch run
type Outcome string

const (
	OutcomeCreated Outcome = "Created"
	OutcomeUpdated Outcome = "Updated"
	OutcomeSkipped Outcome = "Skipped"
	OutcomeFailed  Outcome = "Failed"
	OutcomeDeleted Outcome = "Deleted"
)

// BatchItem records what happened to one product
type BatchItem struct {
	ProductID int      `json:"productId"`
	Name      string   `json:"name,omitempty"`
	Outcome   Outcome  `json:"outcome"`
	Filename  string   `json:"filename,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	ErrorKind string   `json:"errorKind,omitempty"`
	Error     string   `json:"error,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// BatchReport aggregates a whole run. It is always returned, never raised.
type BatchReport struct {
	RunID      string      `json:"runId"`
	Operation  string      `json:"operation"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
	Items      []BatchItem `json:"items"`
}

// Add appends an item
func (r *BatchReport) Add(item BatchItem) {
	r.Items = append(r.Items, item)
}

// Counts returns the number of items per outcome
func (r *BatchReport) Counts() map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, item := range r.Items {
		counts[item.Outcome]++
	}
	return counts
}

// Count returns the number of items with outcome o
func (r *BatchReport) Count(o Outcome) int {
	return r.Counts()[o]
}

// Failures returns the failed items
func (r *BatchReport) Failures() []BatchItem {
	var out []BatchItem
	for _, item := range r.Items {
		if item.Outcome == OutcomeFailed {
			out = append(out, item)
		}
	}
	return out
}

// Flagged returns items carrying data-integrity warnings
func (r *BatchReport) Flagged() []BatchItem {
	var out []BatchItem
	for _, item := range r.Items {
		if len(item.Warnings) > 0 {
			out = append(out, item)
		}
	}
	return out
}

// ErrorKindCounts returns failure counts per error kind
func (r *BatchReport) ErrorKindCounts() map[string]int {
	counts := make(map[string]int)
	for _, item := range r.Failures() {
		counts[item.ErrorKind]++
	}
	return counts
}

// Summary renders the report the way it is printed at the end of a run
func (r *BatchReport) Summary() string {
	var b strings.Builder
	counts := r.Counts()
	fmt.Fprintf(&b, "run %s (%s): %d products\n", r.RunID, r.Operation, len(r.Items))
	for _, o := range []Outcome{OutcomeCreated, OutcomeUpdated, OutcomeSkipped, OutcomeFailed, OutcomeDeleted} {
		if counts[o] > 0 {
			fmt.Fprintf(&b, "  %-8s %d\n", o, counts[o])
		}
	}
	failures := r.Failures()
	sort.Slice(failures, func(i, j int) bool { return failures[i].ProductID < failures[j].ProductID })
	for _, f := range failures {
		fmt.Fprintf(&b, "  ❌ product %d: %s: %s\n", f.ProductID, f.ErrorKind, f.Error)
	}
	for _, f := range r.Flagged() {
		fmt.Fprintf(&b, "  ⚠️  product %d: %s\n", f.ProductID, strings.Join(f.Warnings, "; "))
	}
	return b.String()
}
