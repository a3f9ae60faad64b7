package progress

// Outcome classifies the terminal state of a run for the progress line.
type Outcome int

const (
	Success Outcome = iota
	Warn
	Fail
)

// Reporter is the single progress indicator shared by all pipeline stages.
// Update is always safe and never terminates the indicator. Finalize stops
// it exactly once: the first caller wins and later calls are no-ops, so any
// stage that can plausibly be the last one may call it without coordination.
type Reporter interface {
	Update(msg string)
	Finalize(outcome Outcome, msg string) bool
	Finalized() bool
}
