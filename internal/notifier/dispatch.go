package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/nguyentantai21042004/distill-flow/internal/config"
	"github.com/nguyentantai21042004/distill-flow/internal/progress"
)

// Dispatch sends the text to every selected channel and aggregates the
// outcomes. With nothing configured or selected it reports a skip and leaves
// the text to the caller; it never discards the summary and never returns a
// run-aborting condition.
func (n *implNotifier) Dispatch(ctx context.Context, kind Kind, channels []config.ChannelConfig, selection []int, text, title string) Result {
	selected := make([]config.ChannelConfig, 0, len(selection))
	for _, idx := range selection {
		if idx < 0 || idx >= len(channels) {
			continue
		}
		selected = append(selected, channels[idx])
	}

	if len(selected) == 0 {
		n.reporter.Finalize(progress.Warn,
			fmt.Sprintf("No %s webhooks selected. Skipping notification.", kind))
		return Result{Skipped: true}
	}

	payload, err := n.encodePayload(kind, text, title)
	if err != nil {
		// An unencodable payload fails every channel identically.
		result := Result{Failed: len(selected)}
		for _, ch := range selected {
			result.Channels = append(result.Channels, ChannelResult{Name: ch.Name, Err: err})
		}
		n.reporter.Finalize(progress.Fail, fmt.Sprintf("Failed to send summary to any %s webhooks!", kind))
		return result
	}

	n.reporter.Update(fmt.Sprintf("Processing %d %s webhooks...", len(selected), kind))

	// Channels are independent, so sends run concurrently. Each result lands
	// at its channel's index, keeping the report in configured order.
	results := make([]ChannelResult, len(selected))
	var wg sync.WaitGroup
	for i, ch := range selected {
		wg.Add(1)
		go func(i int, ch config.ChannelConfig) {
			defer wg.Done()

			err := n.send(ctx, ch.Endpoint, payload)
			results[i] = ChannelResult{Name: ch.Name, Err: err}

			if err != nil {
				n.logger.Error(ctx, "Error sending to %s (%s): %v", kind, ch.Name, err)
				n.reporter.Update(fmt.Sprintf("Error sending to %s (%s)", kind, ch.Name))
			} else {
				n.reporter.Update(fmt.Sprintf("Successfully sent to %s (%s)", kind, ch.Name))
			}
		}(i, ch)
	}
	wg.Wait()

	result := Result{Channels: results}
	for _, r := range results {
		if r.Sent() {
			result.Sent++
		} else {
			result.Failed++
		}
	}

	switch {
	case result.Failed == 0:
		n.reporter.Finalize(progress.Success,
			fmt.Sprintf("Summary sent to %d %s webhooks", result.Sent, kind))
	case result.Sent > 0:
		n.reporter.Finalize(progress.Warn,
			fmt.Sprintf("Sent to %d %s webhooks, failed to send to %d webhooks", result.Sent, kind, result.Failed))
	default:
		n.reporter.Finalize(progress.Fail,
			fmt.Sprintf("Failed to send summary to any %s webhooks!", kind))
	}

	return result
}

func (n *implNotifier) encodePayload(kind Kind, text, title string) ([]byte, error) {
	switch kind {
	case KindTeams:
		return json.Marshal(teamsPayload(title, text, n.now()))
	default:
		return json.Marshal(slackPayload(text))
	}
}

func (n *implNotifier) send(ctx context.Context, endpoint string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
