package game

import (
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// MaxRows is the number of rows drawn on the board.
	MaxRows = 6

	// MaxCols is the number of letter cells per row.
	MaxCols = WordLength
)

// CellStatus is the colouring of one letter cell.
type CellStatus string

const (
	CellCorrect    CellStatus = "correct"
	CellPresent    CellStatus = "present"
	CellAbsent     CellStatus = "absent"
	CellEmpty      CellStatus = "empty"
	CellSubmitting CellStatus = "submitting"
)

// Cell is a single letter of the grid.
type Cell struct {
	Letter string
	Status CellStatus
}

// Row is one line of the grid.
type Row struct {
	Cells      []Cell
	Filled     bool
	Submitting bool
	AIResponse string
}

// Grid lays out board as display rows. Every guess becomes a filled row; empty rows pad
// the grid up to maxRows. A board longer than maxRows is drawn in full.
func Grid(board []BoardGuess, maxRows, maxCols int) []Row {
	rows := make([]Row, 0, max(len(board), maxRows))

	for _, g := range board {
		row := Row{Filled: true, Submitting: g.IsSubmitting, AIResponse: g.AIResponse}
		letters := strings.ToUpper(g.GuessedWord)

		for i := 0; i < maxCols; i++ {
			cell := Cell{Status: CellEmpty}
			if r, size := utf8.DecodeRuneInString(letters); size > 0 {
				cell.Letter = string(r)
				letters = letters[size:]
			}

			switch {
			case cell.Letter == "":
			case g.IsSubmitting:
				cell.Status = CellSubmitting
			case slices.Contains(g.CorrectPositions, i):
				cell.Status = CellCorrect
			case slices.Contains(g.MissedPositions, i):
				cell.Status = CellPresent
			default:
				cell.Status = CellAbsent
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}

	for len(rows) < maxRows {
		rows = append(rows, emptyRow(maxCols))
	}
	return rows
}

// FilledRows counts the rows of a grid that hold a guess.
func FilledRows(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.Filled {
			n++
		}
	}
	return n
}

func emptyRow(cols int) Row {
	cells := make([]Cell, cols)
	for i := range cells {
		cells[i].Status = CellEmpty
	}
	return Row{Cells: cells}
}
