// Package export renders a notebook as markdown or HTML, annotating the
// trigger/answer pairs the linking metadata describes.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/chapyter/cellsync"
	"github.com/chapyter/cellsync/internal/ipynb"
)

// Markdown renders the document as a markdown transcript. Code cells become
// fenced python blocks; linked cells carry an annotation comment naming
// their counterpart.
func Markdown(doc *ipynb.Document) string {
	nb := doc.Notebook()

	var sb strings.Builder
	for i, c := range nb.Cells() {
		if i > 0 {
			sb.WriteString("\n")
		}
		switch c.Kind {
		case cellsync.KindMarkdown:
			sb.WriteString(strings.TrimRight(c.Source, "\n"))
			sb.WriteString("\n")
		case cellsync.KindCode:
			if note := annotation(c); note != "" {
				fmt.Fprintf(&sb, "<!-- %s -->\n", note)
			}
			sb.WriteString("```python\n")
			sb.WriteString(strings.TrimRight(c.Source, "\n"))
			sb.WriteString("\n```\n")
		default:
			sb.WriteString("```\n")
			sb.WriteString(strings.TrimRight(c.Source, "\n"))
			sb.WriteString("\n```\n")
		}
	}
	return sb.String()
}

// HTML renders the markdown transcript to HTML.
func HTML(doc *ipynb.Document) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(doc)), &buf); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.String(), nil
}

func annotation(c *cellsync.Cell) string {
	rec, ok := cellsync.ReadRecord(c)
	if !ok {
		return ""
	}
	switch rec.CellType {
	case cellsync.CellTypeGenerated:
		if rec.LinkedCellID != "" {
			return fmt.Sprintf("assistant answer for cell %s", rec.LinkedCellID)
		}
		return "assistant answer"
	case cellsync.CellTypeOriginal:
		if rec.LinkedCellID != "" {
			return fmt.Sprintf("chat trigger, answered by cell %s", rec.LinkedCellID)
		}
		return "chat trigger"
	}
	return ""
}
