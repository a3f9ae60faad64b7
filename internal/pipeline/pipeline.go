package pipeline

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/distill-flow/internal/notifier"
	"github.com/nguyentantai21042004/distill-flow/internal/output"
	"github.com/nguyentantai21042004/distill-flow/internal/progress"
)

// Run drives one audio file through the whole pipeline. Each stage's output
// is a hard input to the next, so the sequence is strictly forward: region →
// upload → transcription → summary → delivery → cleanup.
func (p *implPipeline) Run(ctx context.Context, opts Options) (Result, error) {
	bucket, err := p.selectBucket(ctx, opts.Bucket)
	if err != nil {
		return Result{}, p.fail(err)
	}

	p.reporter.Update("Uploading file to S3...")

	region, err := p.store.ResolveBucketRegion(ctx, bucket)
	if err != nil {
		return Result{}, p.fail(err)
	}
	p.logger.Info(ctx, "Using bucket region %s", region)
	p.reporter.Update(fmt.Sprintf("Using bucket region %s", region))

	regionalStore, transcriber, err := p.regional(ctx, region)
	if err != nil {
		return Result{}, p.fail(fmt.Errorf("build regional clients: %w", err))
	}

	artifact, err := regionalStore.Upload(ctx, opts.InputPath, bucket)
	if err != nil {
		return Result{}, p.fail(err)
	}

	p.reporter.Update("Transcribing audio...")
	transcript, err := transcriber.Transcribe(ctx, artifact.URI(), opts.LanguageCode)
	if err != nil {
		return Result{}, p.fail(err)
	}

	p.reporter.Update("Summarizing text...")
	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return Result{}, p.fail(err)
	}

	result := Result{Transcript: transcript, Summary: summary}
	if err := p.deliver(ctx, opts, &result); err != nil {
		return Result{}, p.fail(err)
	}

	// Cleanup is best-effort on the success path only; a failed delete never
	// fails a run whose outputs already landed.
	if opts.DeleteObject {
		if err := p.store.Delete(ctx, artifact); err != nil {
			p.logger.Warn(ctx, "Failed to delete %s: %v", artifact.URI(), err)
		} else {
			p.logger.Debug(ctx, "Deleted %s", artifact.URI())
		}
	}

	if opts.SaveTranscript {
		if path, err := output.WriteTranscript(opts.SummaryFileName, transcript); err != nil {
			p.logger.Warn(ctx, "Failed to save transcript: %v", err)
		} else {
			fmt.Printf("📝 Full transcript saved to %s\n", path)
		}
	}

	p.reporter.Finalize(progress.Success, "Done!")
	return result, nil
}

// selectBucket picks the configured or overridden bucket and verifies it is
// visible to the caller before anything is uploaded into it.
func (p *implPipeline) selectBucket(ctx context.Context, override string) (string, error) {
	bucket := override
	if bucket == "" {
		bucket = p.cfg.AWS.S3BucketName
	}
	if bucket == "" {
		return "", fmt.Errorf("no S3 bucket configured; set aws.s3_bucket_name or pass -bucket")
	}

	names, err := p.store.ListBuckets(ctx)
	if err != nil {
		return "", fmt.Errorf("list buckets: %w", err)
	}
	for _, name := range names {
		if name == bucket {
			return bucket, nil
		}
	}
	return "", fmt.Errorf("the S3 bucket %q was not found in this account", bucket)
}

// deliver routes the finished summary to its destination. Notification
// failures are reflected in the result, never in the returned error.
func (p *implPipeline) deliver(ctx context.Context, opts Options, result *Result) error {
	switch opts.OutputType {
	case OutputTerminal:
		p.reporter.Finalize(progress.Success, "Done!")
		fmt.Printf("\nSummary:\n%s\n\n", result.Summary)

	case OutputText:
		path, err := output.WriteText(opts.SummaryFileName, result.Summary)
		if err != nil {
			return err
		}
		p.reporter.Finalize(progress.Success, "Done!")
		fmt.Printf("💾 Summary written to %s\n", path)

	case OutputMarkdown:
		path, err := output.WriteMarkdown(opts.SummaryFileName, result.Summary)
		if err != nil {
			return err
		}
		p.reporter.Finalize(progress.Success, "Done!")
		fmt.Printf("💾 Summary written to %s\n", path)

	case OutputWord:
		path, err := output.WriteWord(opts.SummaryFileName, result.Summary)
		if err != nil {
			return err
		}
		p.reporter.Finalize(progress.Success, "Done!")
		fmt.Printf("💾 Summary written to %s\n", path)

	case OutputSlack, OutputSlackSplit:
		if opts.OutputType == OutputSlackSplit {
			path, err := output.WriteText(opts.SummaryFileName, result.Summary)
			if err != nil {
				return err
			}
			fmt.Printf("💾 Summary written to %s\n", path)
		}
		p.dispatch(ctx, opts, result, true)

	case OutputTeams, OutputTeamsSplit:
		if opts.OutputType == OutputTeamsSplit {
			path, err := output.WriteText(opts.SummaryFileName, result.Summary)
			if err != nil {
				return err
			}
			fmt.Printf("💾 Summary written to %s\n", path)
		}
		p.dispatch(ctx, opts, result, false)

	default:
		return fmt.Errorf("unknown output type %q", opts.OutputType)
	}

	return nil
}

func (p *implPipeline) dispatch(ctx context.Context, opts Options, result *Result, slack bool) {
	var dr notifier.Result
	if slack {
		dr = p.notifier.Dispatch(ctx, notifier.KindSlack, p.cfg.Slack.Webhooks, opts.SlackSelection, result.Summary, "")
	} else {
		dr = p.notifier.Dispatch(ctx, notifier.KindTeams, p.cfg.Teams.Webhooks, opts.TeamsSelection, result.Summary, opts.TeamsTitle)
	}
	result.Dispatch = &dr

	// A skipped dispatch never swallows the summary
	if dr.Skipped {
		fmt.Printf("\nSummary:\n%s\n\n", result.Summary)
	}
}

// fail records the stage error as the terminal progress state and passes it
// through unchanged.
func (p *implPipeline) fail(err error) error {
	p.reporter.Finalize(progress.Fail, err.Error())
	return err
}
