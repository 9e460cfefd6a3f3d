package vm

// DefaultTapeSize is the number of cells a tape starts with.
const DefaultTapeSize = 30000

// Tape is the growable memory of the machine: a sequence of byte cells,
// all zero initially. Its length only ever grows, by doubling.
type Tape struct {
	cells []byte
}

// NewTape returns a zeroed tape of the given size. Sizes below one use
// DefaultTapeSize.
func NewTape(size int) *Tape {
	if size < 1 {
		size = DefaultTapeSize
	}
	return &Tape{cells: make([]byte, size)}
}

// Len returns the current number of cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Get returns the value of cell i.
func (t *Tape) Get(i int) byte {
	return t.cells[i]
}

// Set stores v in cell i.
func (t *Tape) Set(i int, v byte) {
	t.cells[i] = v
}

// Cells returns a copy of the tape contents.
func (t *Tape) Cells() []byte {
	out := make([]byte, len(t.cells))
	copy(out, t.cells)
	return out
}

// grow doubles the tape length. Existing cells keep their index and value.
func (t *Tape) grow() {
	cells := make([]byte, len(t.cells)*2)
	copy(cells, t.cells)
	t.cells = cells
}
