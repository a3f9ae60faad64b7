package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/distill-flow/internal/config"
	"github.com/nguyentantai21042004/distill-flow/internal/logger"
	"github.com/nguyentantai21042004/distill-flow/internal/notifier"
	"github.com/nguyentantai21042004/distill-flow/internal/pipeline"
	"github.com/nguyentantai21042004/distill-flow/internal/progress"
	"github.com/nguyentantai21042004/distill-flow/internal/storage"
	"github.com/nguyentantai21042004/distill-flow/internal/summarizer"
	"github.com/nguyentantai21042004/distill-flow/internal/transcription"
	"github.com/nguyentantai21042004/distill-flow/internal/watcher"
)

func main() {
	var (
		inputPath      = flag.String("i", "", "input audio file")
		outputType     = flag.String("o", "terminal", "output type: terminal, text, word, markdown, slack, slacksplit, teams, teamssplit")
		summaryName    = flag.String("s", "summarized_output", "summary file name (without extension)")
		languageCode   = flag.String("l", "en-US", "transcription language code")
		bucketOverride = flag.String("bucket", "", "S3 bucket to use instead of aws.s3_bucket_name")
		deleteObject   = flag.Bool("d", true, "delete the uploaded S3 object after the run")
		saveTranscript = flag.Bool("t", false, "save the full transcript to a .trans file")
		teamsTitle     = flag.String("title", "A meeting from today...", "title for the Teams card")
		channels       = flag.String("channels", "", "comma-separated webhook indices to notify (default: all configured)")
		watchMode      = flag.Bool("w", false, "watch the configured input directory instead of processing one file")
		configPath     = flag.String("config", "config.yaml", "path to the configuration file")
	)
	flag.Parse()

	// Credentials (AWS chain, GEMINI_API_KEYS) may live in a local .env
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	ctx := context.Background()

	outType, err := pipeline.ParseOutputType(*outputType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	opts := pipeline.Options{
		InputPath:       *inputPath,
		LanguageCode:    *languageCode,
		Bucket:          *bucketOverride,
		OutputType:      outType,
		SummaryFileName: *summaryName,
		TeamsTitle:      *teamsTitle,
		DeleteObject:    *deleteObject,
		SaveTranscript:  *saveTranscript,
	}

	selection, err := parseSelection(*channels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	opts.SlackSelection = resolveSelection(selection, len(cfg.Slack.Webhooks))
	opts.TeamsSelection = resolveSelection(selection, len(cfg.Teams.Webhooks))

	if *watchMode {
		runWatch(ctx, cfg, log, opts)
		return
	}

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "an input audio file is required (-i)")
		os.Exit(1)
	}

	fmt.Println("🧙 Welcome to Distill")
	fmt.Printf("📄 Processing file: %s\n", *inputPath)
	fmt.Printf("🔄 Output type: %s\n", outType)

	runner, err := buildRunner(ctx, cfg, log, progress.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if _, err := runner.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// buildRunner wires one pipeline run: a default-region S3 client for bucket
// discovery and cleanup, regional clients built on demand once the bucket's
// region is known, and the configured summarizer backend.
func buildRunner(ctx context.Context, cfg *config.Config, log logger.Logger, reporter progress.Reporter) (pipeline.Runner, error) {
	awsCfg, err := storage.LoadAWSConfig(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	store := storage.New(storage.NewClient(awsCfg), log)

	regional := func(ctx context.Context, region string) (storage.Storage, transcription.Transcriber, error) {
		regionalCfg, err := storage.LoadAWSConfig(ctx, region)
		if err != nil {
			return nil, nil, fmt.Errorf("load AWS config for %s: %w", region, err)
		}
		regionalStore := storage.New(storage.NewClient(regionalCfg), log)
		transcriber := transcription.New(transcribe.NewFromConfig(regionalCfg), reporter, log, cfg.Polling)
		return regionalStore, transcriber, nil
	}

	sum, err := buildSummarizer(cfg, awsCfg, log)
	if err != nil {
		return nil, err
	}

	return pipeline.New(cfg, store, regional, sum, notifier.New(reporter, log), reporter, log), nil
}

func buildSummarizer(cfg *config.Config, awsCfg aws.Config, log logger.Logger) (summarizer.Summarizer, error) {
	switch cfg.Summarizer.Backend {
	case config.BackendGemini:
		keys := splitKeys(os.Getenv("GEMINI_API_KEYS"))
		return summarizer.NewGemini(keys, cfg.Summarizer.GeminiModel, cfg.Prompt.Template, log)
	default:
		return summarizer.NewBedrock(bedrockruntime.NewFromConfig(awsCfg), cfg, log), nil
	}
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// parseSelection turns "0,2" into []int{0, 2}. An empty flag returns nil,
// which resolveSelection expands to every configured channel.
func parseSelection(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid channel index %q", part)
		}
		out = append(out, idx)
	}
	return out, nil
}

func resolveSelection(selection []int, configured int) []int {
	if selection != nil {
		return selection
	}
	out := make([]int, configured)
	for i := range out {
		out[i] = i
	}
	return out
}

// runWatch processes every audio file dropped into the configured input
// directory until interrupted. Each file gets its own run with a fresh
// progress reporter; the spinner stays off since runs may overlap.
func runWatch(ctx context.Context, cfg *config.Config, log logger.Logger, baseOpts pipeline.Options) {
	if err := os.MkdirAll(cfg.Watch.InputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "create input directory: %v\n", err)
		os.Exit(1)
	}

	handler := func(ctx context.Context, filePath string) error {
		runner, err := buildRunner(ctx, cfg, log, progress.Discard())
		if err != nil {
			return err
		}
		opts := baseOpts
		opts.InputPath = filePath
		_, err = runner.Run(ctx, opts)
		return err
	}

	w, err := watcher.New(cfg.Watch.InputDir, handler, log, cfg.Watch.MaxConcurrent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create watcher: %v\n", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Distill is ready, monitoring %s", cfg.Watch.InputDir)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	cancel()
	log.Info(ctx, "Distill stopped")
}
