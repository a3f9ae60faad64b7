package transcription

import "context"

// Transcriber runs one asynchronous speech-to-text job against an uploaded
// object and returns the plain-text transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaURI, languageCode string) (string, error)
}
