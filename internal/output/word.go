package output

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
)

const (
	fontName = "Calibri"
	fontSize = 11
)

// WriteWord writes the summary to <name>.docx, one paragraph per line.
func WriteWord(name, text string) (string, error) {
	path := name + ".docx"

	doc, err := godocx.NewDocument()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	for _, line := range strings.Split(text, "\n") {
		p := doc.AddParagraph("")
		p.AddText(line).Font(fontName).Size(fontSize)
	}

	if err := doc.SaveTo(path); err != nil {
		return "", fmt.Errorf("write word document: %w", err)
	}
	return path, nil
}
