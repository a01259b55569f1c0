package logic

// GridNavigator moves a cursor over cards laid out in rows and keeps the cursor's row
// inside a scrolling viewport.
type GridNavigator struct {
	cursor      int
	count       int
	columns     int
	rowOffset   int
	visibleRows int
}

// NewGridNavigator creates a navigator for a grid of the given width
func NewGridNavigator(columns int) *GridNavigator {
	if columns < 1 {
		columns = 1
	}
	return &GridNavigator{columns: columns, visibleRows: 1}
}

// Reset points the cursor at the first of count cards
func (n *GridNavigator) Reset(count int) {
	n.count = count
	n.cursor = 0
	n.rowOffset = 0
}

// SetVisibleRows sets how many rows fit on screen
func (n *GridNavigator) SetVisibleRows(rows int) {
	if rows < 1 {
		rows = 1
	}
	n.visibleRows = rows
	n.ensureCursorVisible()
}

// Cursor returns the card index under the cursor
func (n *GridNavigator) Cursor() int {
	return n.cursor
}

// Left moves one card back within the grid
func (n *GridNavigator) Left() {
	if n.cursor > 0 {
		n.cursor--
		n.ensureCursorVisible()
	}
}

// Right moves one card forward within the grid
func (n *GridNavigator) Right() {
	if n.cursor < n.count-1 {
		n.cursor++
		n.ensureCursorVisible()
	}
}

// Up moves to the same column one row above
func (n *GridNavigator) Up() {
	if n.cursor-n.columns >= 0 {
		n.cursor -= n.columns
		n.ensureCursorVisible()
	}
}

// Down moves to the same column one row below, if that card exists
func (n *GridNavigator) Down() {
	if n.cursor+n.columns < n.count {
		n.cursor += n.columns
		n.ensureCursorVisible()
	}
}

// Rows returns the total number of rows
func (n *GridNavigator) Rows() int {
	return (n.count + n.columns - 1) / n.columns
}

// VisibleRows returns the first visible row and the number of rows shown
func (n *GridNavigator) VisibleRows() (first, rows int) {
	rows = n.visibleRows
	if remaining := n.Rows() - n.rowOffset; rows > remaining {
		rows = remaining
	}
	return n.rowOffset, rows
}

// ensureCursorVisible scrolls the viewport so the cursor's row is shown
func (n *GridNavigator) ensureCursorVisible() {
	row := n.cursor / n.columns
	if row < n.rowOffset {
		n.rowOffset = row
	}
	if row >= n.rowOffset+n.visibleRows {
		n.rowOffset = row - n.visibleRows + 1
	}

	maxOffset := n.Rows() - n.visibleRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.rowOffset > maxOffset {
		n.rowOffset = maxOffset
	}
	if n.rowOffset < 0 {
		n.rowOffset = 0
	}
}
