// Package ipynb reads and writes Jupyter notebooks (nbformat 4) and converts
// them to and from the in-memory model the orchestration core operates on.
package ipynb

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/chapyter/cellsync"
)

// Document is a decoded notebook file.
type Document struct {
	Cells         []DocCell      `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`

	// Path is where the document was loaded from, empty for parsed bytes.
	Path string `json:"-"`
}

// DocCell is one notebook cell in file form.
type DocCell struct {
	ID             string           `json:"id,omitempty"`
	CellType       string           `json:"cell_type"`
	Source         SourceLines      `json:"source"`
	Metadata       map[string]any   `json:"metadata"`
	ExecutionCount *int             `json:"execution_count,omitempty"`
	Outputs        []map[string]any `json:"outputs,omitempty"`
}

// MarshalJSON writes the cell with the field set nbformat expects per cell
// type: execution_count and outputs appear on code cells only, and
// execution_count is null rather than omitted when the cell never ran.
func (c DocCell) MarshalJSON() ([]byte, error) {
	meta := c.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	m := map[string]any{
		"cell_type": c.CellType,
		"source":    []string(c.Source),
		"metadata":  meta,
	}
	if c.ID != "" {
		m["id"] = c.ID
	}
	if c.CellType == "code" {
		if c.ExecutionCount != nil {
			m["execution_count"] = *c.ExecutionCount
		} else {
			m["execution_count"] = nil
		}
		outputs := c.Outputs
		if outputs == nil {
			outputs = []map[string]any{}
		}
		m["outputs"] = outputs
	}
	return json.Marshal(m)
}

// SourceLines holds cell source as nbformat's line list. Decoding accepts the
// single-string form some writers emit.
type SourceLines []string

func (s *SourceLines) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*s = lines
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("source must be a string or string array: %w", err)
	}
	*s = SplitLines(joined)
	return nil
}

// String joins the lines back into the cell's full source text.
func (s SourceLines) String() string {
	return strings.Join(s, "")
}

// SplitLines splits text into nbformat source lines, each keeping its
// trailing newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			out = append(out, text)
			return out
		}
		out = append(out, text[:i+1])
		text = text[i+1:]
		if text == "" {
			return out
		}
	}
}

// Parse decodes notebook JSON. Cells missing an id (written before nbformat
// 4.5) are assigned one so linking records have something stable to point at.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode notebook: %w", err)
	}
	if doc.NBFormat != 0 && doc.NBFormat != 4 {
		return nil, &NotebookError{
			Message: fmt.Sprintf("unsupported nbformat %d", doc.NBFormat),
			Hint:    "only nbformat 4 notebooks are supported; resave the notebook with a current Jupyter",
		}
	}
	for i := range doc.Cells {
		if doc.Cells[i].ID == "" {
			doc.Cells[i].ID = uuid.NewString()
		}
	}
	return &doc, nil
}

// Load reads and decodes a notebook file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notebook: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		if nerr, ok := err.(*NotebookError); ok {
			nerr.Path = path
			return nil, nerr
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Save writes the document back as indented JSON.
func (d *Document) Save(path string) error {
	if d.NBFormat == 0 {
		d.NBFormat = 4
		d.NBFormatMinor = 5
	}
	if d.Metadata == nil {
		d.Metadata = map[string]any{}
	}
	if d.Cells == nil {
		d.Cells = []DocCell{}
	}
	data, err := json.MarshalIndent(d, "", " ")
	if err != nil {
		return fmt.Errorf("failed to encode notebook: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write notebook: %w", err)
	}
	return nil
}

// Notebook converts the document into the orchestration core's model.
func (d *Document) Notebook() *cellsync.Notebook {
	nb := cellsync.NewNotebook(d.Path)
	for _, dc := range d.Cells {
		cell := cellsync.NewCell(dc.ID, cellKind(dc.CellType), dc.Source.String())
		if dc.ExecutionCount != nil {
			cell.ExecutionCount = *dc.ExecutionCount
		}
		if dc.Metadata != nil {
			cell.Metadata = dc.Metadata
		}
		cell.InputHidden = sourceHidden(dc.Metadata)
		nb.Append(cell)
	}
	return nb
}

// Apply writes the notebook's cell state back into the document: cells the
// core deleted are dropped, linking records and hidden-input flags carried
// over. Outputs and unknown metadata stay untouched.
func (d *Document) Apply(nb *cellsync.Notebook) {
	existing := make(map[string]DocCell, len(d.Cells))
	for _, dc := range d.Cells {
		existing[dc.ID] = dc
	}

	cells := make([]DocCell, 0, nb.Len())
	for _, c := range nb.Cells() {
		dc, ok := existing[c.ID]
		if !ok {
			dc = DocCell{ID: c.ID, CellType: string(c.Kind)}
		}
		dc.Source = SplitLines(c.Source)
		if c.Kind == cellsync.KindCode && c.ExecutionCount > 0 {
			count := c.ExecutionCount
			dc.ExecutionCount = &count
		}
		dc.Metadata = c.Metadata
		setSourceHidden(&dc, c.InputHidden)
		cells = append(cells, dc)
	}
	d.Cells = cells
}

func cellKind(cellType string) cellsync.CellKind {
	switch cellType {
	case "code":
		return cellsync.KindCode
	case "markdown":
		return cellsync.KindMarkdown
	default:
		return cellsync.KindRaw
	}
}

func sourceHidden(meta map[string]any) bool {
	if meta == nil {
		return false
	}
	jup, ok := meta["jupyter"].(map[string]any)
	if !ok {
		return false
	}
	hidden, _ := jup["source_hidden"].(bool)
	return hidden
}

func setSourceHidden(dc *DocCell, hidden bool) {
	if dc.Metadata == nil {
		if !hidden {
			return
		}
		dc.Metadata = map[string]any{}
	}
	jup, ok := dc.Metadata["jupyter"].(map[string]any)
	if !ok {
		if !hidden {
			return
		}
		jup = map[string]any{}
		dc.Metadata["jupyter"] = jup
	}
	jup["source_hidden"] = hidden
}
