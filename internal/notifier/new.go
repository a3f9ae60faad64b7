package notifier

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/distill-flow/internal/logger"
	"github.com/nguyentantai21042004/distill-flow/internal/progress"
)

type implNotifier struct {
	http     *http.Client
	reporter progress.Reporter
	logger   logger.Logger
	now      func() time.Time
}

// New creates a Notifier posting to webhook endpoints with a fixed request
// timeout.
func New(reporter progress.Reporter, log logger.Logger) Notifier {
	return &implNotifier{
		http:     &http.Client{Timeout: 15 * time.Second},
		reporter: reporter,
		logger:   log,
		now:      time.Now,
	}
}
