package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/distill-flow/internal/config"
	"github.com/nguyentantai21042004/distill-flow/internal/logger"
	"github.com/nguyentantai21042004/distill-flow/internal/notifier"
	"github.com/nguyentantai21042004/distill-flow/internal/progress"
	"github.com/nguyentantai21042004/distill-flow/internal/storage"
	"github.com/nguyentantai21042004/distill-flow/internal/transcription"
)

type fakeStorage struct {
	buckets   []string
	region    string
	uploaded  []storage.Artifact
	deleted   []storage.Artifact
	uploadErr error
}

func (f *fakeStorage) ListBuckets(ctx context.Context) ([]string, error) {
	return f.buckets, nil
}

func (f *fakeStorage) ResolveBucketRegion(ctx context.Context, bucket string) (string, error) {
	return f.region, nil
}

func (f *fakeStorage) Upload(ctx context.Context, localPath, bucket string) (storage.Artifact, error) {
	if f.uploadErr != nil {
		return storage.Artifact{}, f.uploadErr
	}
	if _, err := os.Stat(localPath); err != nil {
		return storage.Artifact{}, fmt.Errorf("the path %s does not exist", localPath)
	}
	a := storage.Artifact{Bucket: bucket, Key: filepath.Base(localPath)}
	f.uploaded = append(f.uploaded, a)
	return a, nil
}

func (f *fakeStorage) Delete(ctx context.Context, artifact storage.Artifact) error {
	f.deleted = append(f.deleted, artifact)
	return nil
}

type fakeTranscriber struct {
	transcript string
	err        error
	gotURI     string
	gotLang    string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, mediaURI, languageCode string) (string, error) {
	f.gotURI = mediaURI
	f.gotLang = languageCode
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}

type fakeSummarizer struct {
	summary string
	err     error
	called  bool
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	f.called = true
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

func writeTestAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meeting.wav")
	if err := os.WriteFile(path, []byte("RIFF-audio"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestPipeline(t *testing.T, store *fakeStorage, tr transcription.Transcriber, sum *fakeSummarizer, cfg *config.Config) (Runner, progress.Reporter) {
	t.Helper()
	log := logger.New("error")
	reporter := progress.Discard()

	regional := func(ctx context.Context, region string) (storage.Storage, transcription.Transcriber, error) {
		return store, tr, nil
	}

	return New(cfg, store, regional, sum, notifier.New(reporter, log), reporter, log), reporter
}

func baseConfig() *config.Config {
	cfg := &config.Config{
		AWS:   config.AWSConfig{S3BucketName: "distill-audio"},
		Model: config.ModelConfig{ModelID: "anthropic.claude-3-5-sonnet-20240620-v1:0"},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func TestRunEndToEndWithSlackChannel(t *testing.T) {
	var received []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		received = append(received, string(buf))
	}))
	defer srv.Close()

	cfg := baseConfig()
	cfg.Slack.Webhooks = []config.ChannelConfig{{Name: "general", Endpoint: srv.URL}}

	store := &fakeStorage{buckets: []string{"distill-audio"}, region: "us-east-1"}
	tr := &fakeTranscriber{transcript: "Hello world."}
	sum := &fakeSummarizer{summary: "Greeting exchanged."}

	p, _ := newTestPipeline(t, store, tr, sum, cfg)

	result, err := p.Run(context.Background(), Options{
		InputPath:       writeTestAudio(t),
		LanguageCode:    "en-US",
		OutputType:      OutputSlack,
		SummaryFileName: filepath.Join(t.TempDir(), "summarized_output"),
		SlackSelection:  []int{0},
		DeleteObject:    true,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Transcript != "Hello world." {
		t.Errorf("Transcript = %q", result.Transcript)
	}
	if result.Summary != "Greeting exchanged." {
		t.Errorf("Summary = %q", result.Summary)
	}
	if tr.gotURI != "s3://distill-audio/meeting.wav" {
		t.Errorf("media URI = %q", tr.gotURI)
	}
	if tr.gotLang != "en-US" {
		t.Errorf("language = %q", tr.gotLang)
	}

	if len(received) != 1 || !strings.Contains(received[0], "Greeting exchanged.") {
		t.Errorf("webhook received %v", received)
	}
	if result.Dispatch == nil || result.Dispatch.Sent != 1 || result.Dispatch.Failed != 0 {
		t.Errorf("Dispatch = %+v", result.Dispatch)
	}

	if len(store.deleted) != 1 || store.deleted[0].Key != "meeting.wav" {
		t.Errorf("deleted = %+v, want the uploaded object", store.deleted)
	}
}

func TestRunFailedJobAbortsBeforeSummarization(t *testing.T) {
	cfg := baseConfig()

	store := &fakeStorage{buckets: []string{"distill-audio"}, region: "us-east-1"}
	tr := &fakeTranscriber{err: errors.New("transcription job failed: UNSUPPORTED_MEDIA_FORMAT")}
	sum := &fakeSummarizer{summary: "never"}

	p, reporter := newTestPipeline(t, store, tr, sum, cfg)

	_, err := p.Run(context.Background(), Options{
		InputPath:    writeTestAudio(t),
		LanguageCode: "en-US",
		OutputType:   OutputTerminal,
		DeleteObject: true,
	})
	if err == nil {
		t.Fatal("Run() should fail when the job fails")
	}
	if !strings.Contains(err.Error(), "UNSUPPORTED_MEDIA_FORMAT") {
		t.Errorf("error = %q", err)
	}

	if sum.called {
		t.Error("summarizer must not run after a failed transcription")
	}
	if len(store.deleted) != 0 {
		t.Error("no deletion should be attempted on the failure path")
	}
	if !reporter.Finalized() {
		t.Error("a fatal stage error should finalize the reporter")
	}
}

func TestRunUnknownBucket(t *testing.T) {
	cfg := baseConfig()

	store := &fakeStorage{buckets: []string{"other-bucket"}}
	p, _ := newTestPipeline(t, store, &fakeTranscriber{}, &fakeSummarizer{}, cfg)

	_, err := p.Run(context.Background(), Options{
		InputPath:  writeTestAudio(t),
		OutputType: OutputTerminal,
	})
	if err == nil {
		t.Fatal("Run() should fail for a bucket missing from the account")
	}
	if len(store.uploaded) != 0 {
		t.Error("nothing should be uploaded before bucket validation passes")
	}
}

func TestRunNoBucketConfigured(t *testing.T) {
	cfg := baseConfig()
	cfg.AWS.S3BucketName = ""

	p, _ := newTestPipeline(t, &fakeStorage{}, &fakeTranscriber{}, &fakeSummarizer{}, cfg)

	_, err := p.Run(context.Background(), Options{
		InputPath:  writeTestAudio(t),
		OutputType: OutputTerminal,
	})
	if err == nil {
		t.Fatal("Run() should fail with no bucket configured")
	}
}

func TestRunSkippedDispatchKeepsSummary(t *testing.T) {
	cfg := baseConfig()
	// No webhooks configured at all

	store := &fakeStorage{buckets: []string{"distill-audio"}, region: "eu-west-1"}
	tr := &fakeTranscriber{transcript: "Hello world."}
	sum := &fakeSummarizer{summary: "Greeting exchanged."}

	p, _ := newTestPipeline(t, store, tr, sum, cfg)

	result, err := p.Run(context.Background(), Options{
		InputPath:      writeTestAudio(t),
		LanguageCode:   "en-US",
		OutputType:     OutputSlack,
		SlackSelection: nil,
	})
	if err != nil {
		t.Fatalf("Run() error = %v, a skipped dispatch is not an error", err)
	}
	if result.Dispatch == nil || !result.Dispatch.Skipped {
		t.Errorf("Dispatch = %+v, want Skipped", result.Dispatch)
	}
	if result.Summary != "Greeting exchanged." {
		t.Error("the summary must remain available to the caller after a skip")
	}
}

func TestRunPartialDispatchFailureIsNotFatal(t *testing.T) {
	okSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer okSrv.Close()
	failSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failSrv.Close()

	cfg := baseConfig()
	cfg.Teams.Webhooks = []config.ChannelConfig{
		{Name: "a", Endpoint: okSrv.URL},
		{Name: "b", Endpoint: failSrv.URL},
	}

	store := &fakeStorage{buckets: []string{"distill-audio"}, region: "us-east-1"}
	p, _ := newTestPipeline(t, store, &fakeTranscriber{transcript: "t"}, &fakeSummarizer{summary: "s"}, cfg)

	result, err := p.Run(context.Background(), Options{
		InputPath:      writeTestAudio(t),
		LanguageCode:   "en-US",
		OutputType:     OutputTeams,
		TeamsTitle:     "Standup",
		TeamsSelection: []int{0, 1},
	})
	if err != nil {
		t.Fatalf("Run() error = %v, partial dispatch failure must not fail the run", err)
	}
	if result.Dispatch.Sent != 1 || result.Dispatch.Failed != 1 {
		t.Errorf("Dispatch = %+v, want 1 sent / 1 failed", result.Dispatch)
	}
}

func TestRunSaveTranscript(t *testing.T) {
	cfg := baseConfig()

	store := &fakeStorage{buckets: []string{"distill-audio"}, region: "us-east-1"}
	tr := &fakeTranscriber{transcript: "Hello world."}
	sum := &fakeSummarizer{summary: "Greeting exchanged."}

	p, _ := newTestPipeline(t, store, tr, sum, cfg)

	name := filepath.Join(t.TempDir(), "summarized_output")
	_, err := p.Run(context.Background(), Options{
		InputPath:       writeTestAudio(t),
		LanguageCode:    "en-US",
		OutputType:      OutputText,
		SummaryFileName: name,
		SaveTranscript:  true,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(name + ".trans")
	if err != nil {
		t.Fatalf("transcript file not written: %v", err)
	}
	if string(data) != "Hello world." {
		t.Errorf("transcript file content = %q", data)
	}

	summary, err := os.ReadFile(name + ".txt")
	if err != nil {
		t.Fatalf("summary file not written: %v", err)
	}
	if string(summary) != "Greeting exchanged." {
		t.Errorf("summary file content = %q", summary)
	}
}

func TestParseOutputType(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputType
		wantErr bool
	}{
		{"terminal", OutputTerminal, false},
		{"Slack", OutputSlack, false},
		{"TEAMS", OutputTeams, false},
		{"word", OutputWord, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		got, err := ParseOutputType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
