package progress

import "fmt"

func (r *implReporter) Update(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized {
		return
	}
	if r.spin != nil {
		r.spin.Suffix = " " + msg
	}
}

// Finalize stops the indicator with a terminal message. It reports whether
// this call performed the finalization; once one caller has finalized, every
// later call leaves the recorded terminal state untouched.
func (r *implReporter) Finalize(outcome Outcome, msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finalized {
		return false
	}
	r.finalized = true

	if r.spin != nil {
		r.spin.FinalMSG = fmt.Sprintf("%s %s\n", glyph(outcome), msg)
		r.spin.Stop()
	} else {
		fmt.Fprintf(r.out, "%s %s\n", glyph(outcome), msg)
	}
	return true
}

func (r *implReporter) Finalized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finalized
}

func glyph(outcome Outcome) string {
	switch outcome {
	case Warn:
		return "⚠"
	case Fail:
		return "✖"
	default:
		return "✔"
	}
}
