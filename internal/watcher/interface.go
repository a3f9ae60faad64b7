package watcher

import "context"

// Watcher monitors a drop directory and hands new audio files to a handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one detected audio file.
type EventHandler func(ctx context.Context, filePath string) error
