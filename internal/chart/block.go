package chart

import "strconv"

// Block is the intersection of a row and a time cell.
type Block struct {
	Row  *Row
	Time TimeCell
}

// Key identifies the block across updates: same row, same cell start.
func (b Block) Key() string {
	return b.Row.ID + "@" + strconv.FormatInt(b.Time.LeftGlobal, 10)
}

// BlocksFor returns one block per cell for the row, in cell order.
func BlocksFor(row *Row, cells []TimeCell) []Block {
	blocks := make([]Block, len(cells))
	for i, c := range cells {
		blocks[i] = Block{Row: row, Time: c}
	}
	return blocks
}
