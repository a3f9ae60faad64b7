package output

import (
	"fmt"
	"os"
)

// WriteText writes the summary to <name>.txt and returns the path.
func WriteText(name, text string) (string, error) {
	path := name + ".txt"
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write text file: %w", err)
	}
	return path, nil
}

// WriteMarkdown writes the summary to <name>.md under a Summary heading.
func WriteMarkdown(name, text string) (string, error) {
	path := name + ".md"
	content := fmt.Sprintf("# Summary\n\n%s", text)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write markdown file: %w", err)
	}
	return path, nil
}

// WriteTranscript writes the raw transcript to <name>.trans.
func WriteTranscript(name, transcript string) (string, error) {
	path := name + ".trans"
	if err := os.WriteFile(path, []byte(transcript), 0644); err != nil {
		return "", fmt.Errorf("write transcript file: %w", err)
	}
	return path, nil
}
