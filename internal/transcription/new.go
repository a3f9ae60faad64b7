package transcription

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/transcribe"

	"github.com/nguyentantai21042004/distill-flow/internal/config"
	"github.com/nguyentantai21042004/distill-flow/internal/logger"
	"github.com/nguyentantai21042004/distill-flow/internal/progress"
)

// transcribeAPI is the slice of the Transcribe client this package uses.
type transcribeAPI interface {
	StartTranscriptionJob(ctx context.Context, params *transcribe.StartTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error)
	GetTranscriptionJob(ctx context.Context, params *transcribe.GetTranscriptionJobInput, optFns ...func(*transcribe.Options)) (*transcribe.GetTranscriptionJobOutput, error)
}

type implTranscriber struct {
	client   transcribeAPI
	http     *http.Client
	reporter progress.Reporter
	logger   logger.Logger
	interval time.Duration
	timeout  time.Duration
}

// New creates a Transcriber polling at the configured interval with the
// configured ceiling.
func New(client transcribeAPI, reporter progress.Reporter, log logger.Logger, polling config.PollingConfig) Transcriber {
	return &implTranscriber{
		client:   client,
		http:     &http.Client{Timeout: 30 * time.Second},
		reporter: reporter,
		logger:   log,
		interval: time.Duration(polling.IntervalSeconds) * time.Second,
		timeout:  time.Duration(polling.TimeoutMinutes) * time.Minute,
	}
}
