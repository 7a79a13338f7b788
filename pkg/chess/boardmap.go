package chess

// Cell is the content of one board-map square: a piece of a given side.
type Cell struct {
	Piece Piece
	Side  Side
}

// BoardMap is a 64-cell mapping Square -> Cell, backed by a dense array rather
// than an actual hash table: the API reads like the hash-table origin this
// design was distilled from (get/insert/remove/len/iterate), but every
// operation here is O(1) array access, which is what the spec requires for
// a structure consulted on every legality check.
type BoardMap struct {
	cells    [NumSquares]Cell
	occupied [NumSquares]bool
	n        int
}

// Get returns the cell at sq, and false if empty.
func (m *BoardMap) Get(sq Square) (Cell, bool) {
	return m.cells[sq], m.occupied[sq]
}

// Insert places c at sq, returning whatever was displaced (if anything).
func (m *BoardMap) Insert(sq Square, c Cell) (Cell, bool) {
	prev, had := m.cells[sq], m.occupied[sq]
	m.cells[sq] = c
	if !had {
		m.n++
	}
	m.occupied[sq] = true
	return prev, had
}

// Remove clears sq, returning what was there (if anything).
func (m *BoardMap) Remove(sq Square) (Cell, bool) {
	prev, had := m.cells[sq], m.occupied[sq]
	if had {
		m.n--
	}
	m.cells[sq] = Cell{}
	m.occupied[sq] = false
	return prev, had
}

// Len returns the number of occupied squares.
func (m *BoardMap) Len() int {
	return m.n
}

// Each iterates all occupied squares in ascending order.
func (m *BoardMap) Each(fn func(sq Square, c Cell)) {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if m.occupied[sq] {
			fn(sq, m.cells[sq])
		}
	}
}

// Clone returns an independent copy of the map.
func (m *BoardMap) Clone() *BoardMap {
	cp := *m
	return &cp
}
