// Package breakout implements a Breakout-style brick breaker: a ball bounces
// around a rectangular arena, clearing a grid of blocks while the paddle keeps
// it from falling past the bottom edge.
package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// GridPos addresses a block by row and column.
type GridPos struct {
	Row, Col int
}

// Block is a single destructible block.
type Block struct {
	Rect  core.RectF
	Alive bool
}

// BlockField is the fixed grid of blocks for one run. A block dies at most
// once and never comes back.
type BlockField struct {
	Rows   int
	Cols   int
	Blocks [][]Block // [row][col]
}

// NewBlockField creates a field with every block alive, laid out per l.
func NewBlockField(l Layout) *BlockField {
	f := &BlockField{
		Rows:   l.Grid.Rows,
		Cols:   l.Grid.Cols,
		Blocks: make([][]Block, l.Grid.Rows),
	}
	for row := range f.Rows {
		f.Blocks[row] = make([]Block, f.Cols)
		for col := range f.Cols {
			f.Blocks[row][col] = Block{
				Rect:  l.BlockRect(row, col),
				Alive: true,
			}
		}
	}
	return f
}

// CountAlive returns the number of remaining blocks.
func (f *BlockField) CountAlive() int {
	count := 0
	for _, row := range f.Blocks {
		for _, b := range row {
			if b.Alive {
				count++
			}
		}
	}
	return count
}

// Total returns the number of blocks the field started with.
func (f *BlockField) Total() int {
	return f.Rows * f.Cols
}

// HitTest returns the first alive block, in row-major order, whose rectangle
// strictly contains (x, y). Only the ball's center is tested, not its radius.
func (f *BlockField) HitTest(x, y float64) (GridPos, bool) {
	for row := range f.Rows {
		for col := range f.Cols {
			b := &f.Blocks[row][col]
			if b.Alive && b.Rect.ContainsStrict(x, y) {
				return GridPos{Row: row, Col: col}, true
			}
		}
	}
	return GridPos{}, false
}

// Kill marks a block dead. Returns false if it was already dead or out of range.
func (f *BlockField) Kill(pos GridPos) bool {
	if pos.Row < 0 || pos.Row >= f.Rows || pos.Col < 0 || pos.Col >= f.Cols {
		return false
	}
	b := &f.Blocks[pos.Row][pos.Col]
	if !b.Alive {
		return false
	}
	b.Alive = false
	return true
}
