package notifier

import (
	"context"

	"github.com/nguyentantai21042004/distill-flow/internal/config"
)

// Kind selects the payload format for a notification platform.
type Kind string

const (
	KindSlack Kind = "slack"
	KindTeams Kind = "teams"
)

// ChannelResult records the outcome for one channel. A nil Err means the
// channel accepted the payload.
type ChannelResult struct {
	Name string
	Err  error
}

// Sent reports whether the channel accepted the payload.
func (r ChannelResult) Sent() bool {
	return r.Err == nil
}

// Result aggregates the per-channel outcomes of one dispatch. Channels is
// ordered by configuration order regardless of how the sends interleave.
type Result struct {
	Channels []ChannelResult
	Sent     int
	Failed   int
	Skipped  bool
}

// Notifier delivers a finished summary to the selected channels. Delivery
// failures are recorded in the Result, never raised: a failed channel must
// not abort its siblings or the run.
type Notifier interface {
	Dispatch(ctx context.Context, kind Kind, channels []config.ChannelConfig, selection []int, text, title string) Result
}
