// Package grid renders export documents onto spreadsheet grids. A Grid wraps
// an excelize worksheet with a style cache, idempotent merges and edge-level
// border editing, so builders can lay out sections through a moving row
// cursor the way the documents are read: top to bottom.
package grid

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Borders is an edge bitmask.
type Borders uint8

const (
	BTop Borders = 1 << iota
	BBottom
	BLeft
	BRight
)

// BAll covers all four edges.
const BAll = BTop | BBottom | BLeft | BRight

// Style describes the full visual state of one cell. It is comparable so
// identical styles share one excelize style ID.
type Style struct {
	Font      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline bool
	HAlign    string
	VAlign    string
	Wrap      bool
	Fill      string // RGB hex, no leading #
	NumFmt    string
	Borders   Borders // thin edges
	Thick     Borders // medium edges, override thin
}

type cellKey struct{ row, col int }

type mergeSpan struct{ r1, c1, r2, c2 int }

// Grid accumulates values and styles for one worksheet. Styles are kept in
// memory until Flush so borders can be edited edge by edge; the first error
// sticks and turns later calls into no-ops.
type Grid struct {
	f      *excelize.File
	sheet  string
	cells  map[cellKey]Style
	merges []mergeSpan
	styles map[Style]int
	err    error
}

// New creates a workbook whose first sheet is named sheet.
func New(sheet string) *Grid {
	f := excelize.NewFile()
	g := &Grid{f: f, sheet: sheet, cells: map[cellKey]Style{}, styles: map[Style]int{}}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		g.err = fmt.Errorf("grid: rename sheet: %w", err)
	}
	return g
}

// File exposes the underlying workbook.
func (g *Grid) File() *excelize.File { return g.f }

// Err returns the first error encountered.
func (g *Grid) Err() error { return g.err }

func (g *Grid) cell(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && g.err == nil {
		g.err = fmt.Errorf("grid: cell %d,%d: %w", row, col, err)
	}
	return name
}

// Set writes a value and records the cell's style.
func (g *Grid) Set(row, col int, val interface{}, st Style) {
	if g.err != nil {
		return
	}
	if err := g.f.SetCellValue(g.sheet, g.cell(row, col), val); err != nil {
		g.err = fmt.Errorf("grid: set cell: %w", err)
		return
	}
	g.cells[cellKey{row, col}] = st
}

// Paint records a style without touching the cell value.
func (g *Grid) Paint(row, col int, st Style) {
	if g.err != nil {
		return
	}
	g.cells[cellKey{row, col}] = st
}

func overlaps(a, b mergeSpan) bool {
	return a.r1 <= b.r2 && b.r1 <= a.r2 && a.c1 <= b.c2 && b.c1 <= a.c2
}

// Merge joins a range. A range touching an existing merge is skipped, so
// builders can lay sections without tracking earlier merges.
func (g *Grid) Merge(r1, c1, r2, c2 int) {
	if g.err != nil {
		return
	}
	span := mergeSpan{r1, c1, r2, c2}
	for _, m := range g.merges {
		if overlaps(span, m) {
			return
		}
	}
	if err := g.f.MergeCell(g.sheet, g.cell(r1, c1), g.cell(r2, c2)); err != nil {
		g.err = fmt.Errorf("grid: merge: %w", err)
		return
	}
	g.merges = append(g.merges, span)
}

// MergeSet merges a range, writes the value into its top-left cell and
// paints every covered cell so borders survive the merge.
func (g *Grid) MergeSet(r1, c1, r2, c2 int, val interface{}, st Style) {
	g.Merge(r1, c1, r2, c2)
	g.Set(r1, c1, val, st)
	for r := r1; r <= r2; r++ {
		for c := c1; c <= c2; c++ {
			if r == r1 && c == c1 {
				continue
			}
			g.cells[cellKey{r, c}] = st
		}
	}
}

// AddEdges turns on edges across a cell range, preserving the rest of each
// cell's style.
func (g *Grid) AddEdges(r1, c1, r2, c2 int, edges Borders, thick bool) {
	for r := r1; r <= r2; r++ {
		for c := c1; c <= c2; c++ {
			st := g.cells[cellKey{r, c}]
			if thick {
				st.Thick |= edges
			} else {
				st.Borders |= edges
			}
			g.cells[cellKey{r, c}] = st
		}
	}
}

// ClearEdges turns off edges across a cell range.
func (g *Grid) ClearEdges(r1, c1, r2, c2 int, edges Borders) {
	for r := r1; r <= r2; r++ {
		for c := c1; c <= c2; c++ {
			st := g.cells[cellKey{r, c}]
			st.Borders &^= edges
			st.Thick &^= edges
			g.cells[cellKey{r, c}] = st
		}
	}
}

// BorderRow draws a thin bottom border under one row between two columns.
func (g *Grid) BorderRow(row, c1, c2 int) {
	g.AddEdges(row, c1, row, c2, BBottom, false)
}

// Outline draws a border around the perimeter of a range.
func (g *Grid) Outline(r1, c1, r2, c2 int, thick bool) {
	g.AddEdges(r1, c1, r1, c2, BTop, thick)
	g.AddEdges(r2, c1, r2, c2, BBottom, thick)
	g.AddEdges(r1, c1, r2, c1, BLeft, thick)
	g.AddEdges(r1, c2, r2, c2, BRight, thick)
}

// RowHeight sets one row's height.
func (g *Grid) RowHeight(row int, h float64) {
	if g.err != nil {
		return
	}
	if err := g.f.SetRowHeight(g.sheet, row, h); err != nil {
		g.err = fmt.Errorf("grid: row height: %w", err)
	}
}

// ColWidths sets column widths starting at column A.
func (g *Grid) ColWidths(widths ...float64) {
	if g.err != nil {
		return
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			g.err = fmt.Errorf("grid: column %d: %w", i+1, err)
			return
		}
		if err := g.f.SetColWidth(g.sheet, col, col, w); err != nil {
			g.err = fmt.Errorf("grid: col width: %w", err)
			return
		}
	}
}

// StyleAt reports the pending style of a cell. Used by border surgery that
// needs to branch on current state, and by tests.
func (g *Grid) StyleAt(row, col int) Style {
	return g.cells[cellKey{row, col}]
}

// Flush materializes all pending styles into the workbook and returns the
// first error of the whole build.
func (g *Grid) Flush() error {
	if g.err != nil {
		return g.err
	}
	for key, st := range g.cells {
		id, ok := g.styles[st]
		if !ok {
			var err error
			id, err = g.f.NewStyle(buildStyle(st))
			if err != nil {
				return fmt.Errorf("grid: new style: %w", err)
			}
			g.styles[st] = id
		}
		name := g.cell(key.row, key.col)
		if g.err != nil {
			return g.err
		}
		if err := g.f.SetCellStyle(g.sheet, name, name, id); err != nil {
			return fmt.Errorf("grid: apply style: %w", err)
		}
	}
	return nil
}

func buildStyle(st Style) *excelize.Style {
	x := &excelize.Style{}

	font := &excelize.Font{Bold: st.Bold, Italic: st.Italic}
	font.Family = st.Font
	if font.Family == "" {
		font.Family = "Arial"
	}
	if st.Size > 0 {
		font.Size = st.Size
	}
	if st.Underline {
		font.Underline = "single"
	}
	x.Font = font

	if st.HAlign != "" || st.VAlign != "" || st.Wrap {
		x.Alignment = &excelize.Alignment{
			Horizontal: st.HAlign,
			Vertical:   st.VAlign,
			WrapText:   st.Wrap,
		}
	}

	if st.Fill != "" {
		x.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{st.Fill}}
	}

	if st.NumFmt != "" {
		fmtStr := st.NumFmt
		x.CustomNumFmt = &fmtStr
	}

	x.Border = borderList(st.Borders, st.Thick)
	return x
}

func borderList(thin, thick Borders) []excelize.Border {
	var out []excelize.Border
	add := func(edge Borders, name string) {
		switch {
		case thick&edge != 0:
			out = append(out, excelize.Border{Type: name, Style: 2, Color: "000000"})
		case thin&edge != 0:
			out = append(out, excelize.Border{Type: name, Style: 1, Color: "000000"})
		}
	}
	add(BTop, "top")
	add(BBottom, "bottom")
	add(BLeft, "left")
	add(BRight, "right")
	return out
}
