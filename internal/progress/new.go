package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

type implReporter struct {
	mu        sync.Mutex
	spin      *spinner.Spinner
	out       io.Writer
	finalized bool
}

// New creates a spinner-backed Reporter writing to stderr.
func New() Reporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr))
	s.Start()
	return &implReporter{spin: s, out: os.Stderr}
}

// Discard creates a silent Reporter for tests and non-interactive runs.
// The finalize-once contract still holds.
func Discard() Reporter {
	return &implReporter{out: io.Discard}
}
