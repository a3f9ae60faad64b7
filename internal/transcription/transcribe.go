package transcription

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// Transcribe submits a job for the uploaded object and polls it to a
// terminal state. A rejected submission and a failed job both surface the
// service's reason; a completed job must carry a transcript locator.
func (t *implTranscriber) Transcribe(ctx context.Context, mediaURI, languageCode string) (string, error) {
	// Job names must be unique per account; reruns of the same file would
	// otherwise collide.
	jobName := fmt.Sprintf("distill-%s", uuid.NewString())

	t.logger.Info(ctx, "Submitting transcription job %s for %s (%s)", jobName, mediaURI, languageCode)

	_, err := t.client.StartTranscriptionJob(ctx, &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
		LanguageCode:         types.LanguageCode(languageCode),
		Media: &types.Media{
			MediaFileUri: aws.String(mediaURI),
		},
	})
	if err != nil {
		return "", fmt.Errorf("submit transcription job: %w", err)
	}

	job, err := t.poll(ctx, jobName)
	if err != nil {
		return "", err
	}

	if job.Status == JobStatusFailed {
		return "", fmt.Errorf("transcription job %s failed: %s", job.ID, job.FailureReason)
	}

	if job.TranscriptURI == "" {
		return "", fmt.Errorf("transcription job %s completed without a transcript location", job.ID)
	}

	return t.fetchTranscript(ctx, job.TranscriptURI)
}

// poll queries the job on a fixed interval until it reaches a terminal state
// or the configured ceiling elapses. Transient read errors are retried with
// bounded backoff without resetting the job state.
func (t *implTranscriber) poll(ctx context.Context, jobName string) (Job, error) {
	started := time.Now()
	deadline := started.Add(t.timeout)

	for {
		job, err := t.getJob(ctx, jobName)
		if err != nil {
			return Job{}, err
		}

		if job.Terminal() {
			return job, nil
		}

		elapsed := time.Since(started).Round(time.Second)
		t.reporter.Update(fmt.Sprintf("Transcribing audio... %s (%s elapsed)", job.Status, elapsed))
		t.logger.Debug(ctx, "Job %s status %s after %s", jobName, job.Status, elapsed)

		if time.Now().After(deadline) {
			return Job{}, fmt.Errorf("transcription job %s still %s after %s; giving up",
				jobName, job.Status, t.timeout)
		}

		select {
		case <-ctx.Done():
			return Job{}, ctx.Err()
		case <-time.After(t.interval):
		}
	}
}

// getJob reads the job status, retrying transient failures for up to 30s.
func (t *implTranscriber) getJob(ctx context.Context, jobName string) (Job, error) {
	var out *transcribe.GetTranscriptionJobOutput

	op := func() error {
		var err error
		out, err = t.client.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
			TranscriptionJobName: aws.String(jobName),
		})
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return Job{}, fmt.Errorf("get transcription job %s: %w", jobName, err)
	}

	if out.TranscriptionJob == nil {
		return Job{}, fmt.Errorf("get transcription job %s: empty response", jobName)
	}

	return snapshot(out.TranscriptionJob), nil
}
