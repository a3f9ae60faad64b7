package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/distill-flow/internal/notifier"
)

// OutputType selects how the finished summary is delivered.
type OutputType string

const (
	OutputTerminal   OutputType = "terminal"
	OutputText       OutputType = "text"
	OutputWord       OutputType = "word"
	OutputMarkdown   OutputType = "markdown"
	OutputSlack      OutputType = "slack"
	OutputSlackSplit OutputType = "slacksplit"
	OutputTeams      OutputType = "teams"
	OutputTeamsSplit OutputType = "teamssplit"
)

// ParseOutputType maps a CLI flag value to an OutputType, case-insensitively.
func ParseOutputType(s string) (OutputType, error) {
	switch OutputType(strings.ToLower(s)) {
	case OutputTerminal, OutputText, OutputWord, OutputMarkdown,
		OutputSlack, OutputSlackSplit, OutputTeams, OutputTeamsSplit:
		return OutputType(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown output type %q", s)
}

// Options is the run-scoped input to a pipeline run.
type Options struct {
	InputPath       string
	LanguageCode    string
	Bucket          string
	OutputType      OutputType
	SummaryFileName string
	TeamsTitle      string
	SlackSelection  []int
	TeamsSelection  []int
	DeleteObject    bool
	SaveTranscript  bool
}

// Result carries the artifacts of a finished run. Dispatch is set only when
// the output type targets a notification platform.
type Result struct {
	Transcript string
	Summary    string
	Dispatch   *notifier.Result
}

// Runner sequences one audio file through upload, transcription,
// summarization, delivery and cleanup.
type Runner interface {
	Run(ctx context.Context, opts Options) (Result, error)
}
