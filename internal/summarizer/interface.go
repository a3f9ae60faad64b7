package summarizer

import "context"

// Summarizer condenses a transcript into a summary with a text-generation
// model. One synchronous call, no retry, no state.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
