package tester

import "time"

// TransferOutcome is the per-file result of a replay: how long the
// exchange took and whether the server accepted the payload. Produced
// exactly once per attempt, immutable afterwards.
type TransferOutcome struct {
	File    string
	Elapsed time.Duration
	Success bool
}

// RunSummary aggregates outcomes for a whole run. TotalElapsed counts
// successful transfers only.
type RunSummary struct {
	Outcomes     []TransferOutcome
	Successes    int
	Errors       int
	TotalElapsed time.Duration
}

// Record folds one outcome into the summary.
func (r *RunSummary) Record(out TransferOutcome) {
	r.Outcomes = append(r.Outcomes, out)
	if out.Success {
		r.Successes++
		r.TotalElapsed += out.Elapsed
	} else {
		r.Errors++
	}
}

// Average reports the mean time per successful transfer. The second
// return value is false when no transfer succeeded.
func (r *RunSummary) Average() (time.Duration, bool) {
	if r.Successes == 0 {
		return 0, false
	}
	return r.TotalElapsed / time.Duration(r.Successes), true
}
