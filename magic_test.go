package cellsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMagicStrict(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"line magic", "%chat plot my data", true},
		{"cell magic", "%%chat\nplot my data", true},
		{"chatonly excluded", "%%chatonly\nexplain this", false},
		{"plain code", "print(1)", false},
		{"empty", "", false},
		{"magic not at start", "x = 1\n%chat y", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMagic(codeCell("c", tt.source), true))
		})
	}
}

// Non-strict classification accepts every cell, chat prefix or not. This is
// load-bearing for the scheduled handler, whose real gate is the linked-cell
// lookup; keep this pinned when touching IsMagic.
func TestIsMagicLooseAcceptsEverything(t *testing.T) {
	for _, source := range []string{"%chat q", "%%chatonly\nq", "print(1)", ""} {
		assert.True(t, IsMagic(codeCell("c", source), false), "source %q", source)
	}
	assert.False(t, IsMagic(nil, false))
}

func TestIsSafeMode(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"short flag", "%chat -s plot data", true},
		{"long flag", "%chat --safe plot data", true},
		{"no flag", "%chat plot data", false},
		// Substring probe, not a flag grammar: "-s" inside a word counts.
		{"false positive", "%chat top-selling items", true},
		{"flag on later line only", "%chat plot\n-s", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSafeMode(codeCell("c", tt.source)))
		})
	}
}

func TestIsGenerated(t *testing.T) {
	plain := codeCell("c", "print(1)")
	assert.False(t, IsGenerated(plain))

	gen := codeCell("g", MarkerFor(1)+"\nprint(2)")
	gen.Metadata[MetadataKey] = CellRecord{CellType: CellTypeGenerated, LinkedCellID: "c"}
	assert.True(t, IsGenerated(gen))

	trigger := codeCell("t", "%chat q")
	trigger.Metadata[MetadataKey] = CellRecord{CellType: CellTypeOriginal}
	assert.False(t, IsGenerated(trigger))

	md := NewCell("m", KindMarkdown, "")
	md.Metadata[MetadataKey] = CellRecord{CellType: CellTypeGenerated}
	assert.False(t, IsGenerated(md), "non-code cells never count as generated")

	assert.False(t, IsGenerated(nil))
}
