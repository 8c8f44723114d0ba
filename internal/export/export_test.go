package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chapyter/cellsync/internal/ipynb"
)

const linkedNotebook = `{
 "cells": [
  {
   "id": "intro",
   "cell_type": "markdown",
   "source": ["# Analysis\n"],
   "metadata": {}
  },
  {
   "id": "t1",
   "cell_type": "code",
   "source": ["%%chat\n", "plot the data"],
   "metadata": {
    "ChapyterCell": {"cellType": "original", "linkedCellId": "g1"}
   },
   "execution_count": 2,
   "outputs": []
  },
  {
   "id": "g1",
   "cell_type": "code",
   "source": ["# Assistant Code for Cell [2]:\n", "import matplotlib\n"],
   "metadata": {
    "ChapyterCell": {"cellType": "generated", "linkedCellId": "t1"}
   },
   "execution_count": null,
   "outputs": []
  }
 ],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 5
}`

func TestMarkdownExport(t *testing.T) {
	doc, err := ipynb.Parse([]byte(linkedNotebook))
	require.NoError(t, err)

	md := Markdown(doc)

	assert.Contains(t, md, "# Analysis")
	assert.Contains(t, md, "```python\n%%chat\nplot the data\n```")
	assert.Contains(t, md, "<!-- chat trigger, answered by cell g1 -->")
	assert.Contains(t, md, "<!-- assistant answer for cell t1 -->")
}

func TestMarkdownExportUnlinkedCells(t *testing.T) {
	doc, err := ipynb.Parse([]byte(`{
 "cells": [
  {"id": "c1", "cell_type": "code", "source": ["x = 1\n"], "metadata": {}, "execution_count": 1, "outputs": []}
 ],
 "nbformat": 4, "nbformat_minor": 5, "metadata": {}
}`))
	require.NoError(t, err)

	md := Markdown(doc)
	assert.Equal(t, "```python\nx = 1\n```\n", md)
}

func TestHTMLExport(t *testing.T) {
	doc, err := ipynb.Parse([]byte(linkedNotebook))
	require.NoError(t, err)

	html, err := HTML(doc)
	require.NoError(t, err)

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Analysis")
	assert.Contains(t, html, "<pre>")
}
