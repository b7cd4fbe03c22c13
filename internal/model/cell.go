package model

import (
	"strconv"
	"strings"
)

// CellKind kind of a spreadsheet cell value
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellBool
)

// Cell loosely typed cell value, only used between the workbook reader and the normalizer
type Cell struct {
	Kind   CellKind
	Text   string  // display text
	Number float64 // CellNumber only
	Bool   bool    // CellBool only
}

// TextCell builds a text cell; blank text yields an empty cell
func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell builds a numeric cell
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// BoolCell builds a boolean cell
func BoolCell(v bool) Cell {
	text := "FALSE"
	if v {
		text = "TRUE"
	}
	return Cell{Kind: CellBool, Bool: v, Text: text}
}

// String display text of the cell
func (c Cell) String() string {
	return c.Text
}

// IsBlank reports whether the cell has no visible content
func (c Cell) IsBlank() bool {
	return c.Kind == CellEmpty || strings.TrimSpace(c.Text) == ""
}

// Truthy boolean-like flag: numeric 1 or TRUE
func (c Cell) Truthy() bool {
	switch c.Kind {
	case CellNumber:
		return c.Number == 1
	case CellBool:
		return c.Bool
	}
	return false
}

// RawRow one sheet row keyed by header text
type RawRow map[string]Cell
