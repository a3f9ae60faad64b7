package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/distill-flow/internal/config"
	"github.com/nguyentantai21042004/distill-flow/internal/logger"
	"github.com/nguyentantai21042004/distill-flow/internal/notifier"
	"github.com/nguyentantai21042004/distill-flow/internal/progress"
	"github.com/nguyentantai21042004/distill-flow/internal/storage"
	"github.com/nguyentantai21042004/distill-flow/internal/summarizer"
	"github.com/nguyentantai21042004/distill-flow/internal/transcription"
)

// RegionalFactory builds the storage and transcription clients pinned to a
// bucket's home region. The pipeline resolves the region first, then asks
// for regional clients, so every data-plane call targets the right endpoint.
type RegionalFactory func(ctx context.Context, region string) (storage.Storage, transcription.Transcriber, error)

type implPipeline struct {
	cfg        *config.Config
	store      storage.Storage
	regional   RegionalFactory
	summarizer summarizer.Summarizer
	notifier   notifier.Notifier
	reporter   progress.Reporter
	logger     logger.Logger
}

// New creates a Runner. store is the default-region client used for bucket
// discovery, region resolution and cleanup; regional supplies the clients
// for the upload and the transcription job.
func New(cfg *config.Config, store storage.Storage, regional RegionalFactory,
	sum summarizer.Summarizer, not notifier.Notifier,
	reporter progress.Reporter, log logger.Logger) Runner {
	return &implPipeline{
		cfg:        cfg,
		store:      store,
		regional:   regional,
		summarizer: sum,
		notifier:   not,
		reporter:   reporter,
		logger:     log,
	}
}
