package cellsync

// MetadataKey is the per-cell metadata key this system owns. The record
// stored under it is the only persistent state the system writes; it rides
// along in the host's saved document format.
const MetadataKey = "ChapyterCell"

// CellType marks a cell's role in a linked pair.
type CellType string

const (
	CellTypeOriginal  CellType = "original"
	CellTypeGenerated CellType = "generated"
)

// CellRecord is the linking record attached to both halves of a pair: the
// trigger cell points at its generated answer and vice versa. Both sides are
// stored independently and kept consistent, or both are absent.
type CellRecord struct {
	CellType     CellType `json:"cellType"`
	LinkedCellID string   `json:"linkedCellId,omitempty"`
}

// ReadRecord returns the cell's linking record. The second return is false
// when the cell never participated in a link. Both the typed in-memory shape
// and the generic map shape the record takes after a JSON round trip through
// the host document are accepted.
func ReadRecord(c *Cell) (CellRecord, bool) {
	if c == nil || c.Metadata == nil {
		return CellRecord{}, false
	}
	switch v := c.Metadata[MetadataKey].(type) {
	case CellRecord:
		return v, true
	case *CellRecord:
		if v != nil {
			return *v, true
		}
	case map[string]any:
		var rec CellRecord
		if s, ok := v["cellType"].(string); ok {
			rec.CellType = CellType(s)
		}
		if s, ok := v["linkedCellId"].(string); ok {
			rec.LinkedCellID = s
		}
		return rec, true
	}
	return CellRecord{}, false
}

// SetRecord tags a cell with a linking record and records the metadata write
// for the host.
func (nb *Notebook) SetRecord(c *Cell, rec CellRecord) {
	if c.Metadata == nil {
		c.Metadata = make(map[string]any)
	}
	c.Metadata[MetadataKey] = rec
	nb.record(Command{Kind: CmdSetMetadata, CellID: c.ID, Record: &rec})
}
