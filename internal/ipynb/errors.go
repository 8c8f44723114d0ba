package ipynb

import (
	"fmt"
	"strings"
)

// NotebookError represents a problem with a notebook file's structure.
type NotebookError struct {
	Path    string // Notebook file path
	Message string // Error message
	Hint    string // Helpful suggestion
}

// Error implements the error interface.
func (e *NotebookError) Error() string {
	var sb strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&sb, "%s: ", e.Path)
	}
	sb.WriteString(e.Message)
	if e.Hint != "" {
		fmt.Fprintf(&sb, "\n  hint: %s", e.Hint)
	}
	return sb.String()
}
