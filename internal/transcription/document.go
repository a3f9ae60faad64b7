package transcription

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// transcriptDocument is the machine-readable result the service writes.
// Only the plain-text transcript field is consumed.
type transcriptDocument struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

// fetchTranscript downloads the result document and extracts the transcript
// text. A malformed document is an error; it is never coerced into an empty
// transcript.
func (t *implTranscriber) fetchTranscript(ctx context.Context, uri string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", fmt.Errorf("build transcript request: %w", err)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch transcript document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch transcript document: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcript document: %w", err)
	}

	var doc transcriptDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("parse transcript document: %w", err)
	}

	if len(doc.Results.Transcripts) == 0 {
		return "", fmt.Errorf("transcript document carries no transcript text")
	}

	return doc.Results.Transcripts[0].Transcript, nil
}
