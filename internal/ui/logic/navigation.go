package logic

// Navigator tracks the selected row and the scroll offset of a flat list
// rendered in a viewport of fixed height
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	total          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 1}
}

// SetTotal updates the number of rows and clamps the selection into range
func (n *Navigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.total = total
	n.clamp()
}

// SetViewportHeight updates the number of visible rows
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.clamp()
}

// Reset moves the selection back to the first row
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
}

func (n *Navigator) Selected() int       { return n.selectedIndex }
func (n *Navigator) Offset() int         { return n.viewportOffset }
func (n *Navigator) ViewportHeight() int { return n.viewportHeight }
func (n *Navigator) Total() int          { return n.total }

// Visible returns the half-open range of rows currently on screen
func (n *Navigator) Visible() (start, end int) {
	start = n.viewportOffset
	end = start + n.viewportHeight
	if end > n.total {
		end = n.total
	}
	return start, end
}

// Select moves the selection to index and scrolls it into view
func (n *Navigator) Select(index int) {
	n.selectedIndex = index
	n.clamp()
}

func (n *Navigator) Up()       { n.Select(n.selectedIndex - 1) }
func (n *Navigator) Down()     { n.Select(n.selectedIndex + 1) }
func (n *Navigator) PageUp()   { n.Select(n.selectedIndex - n.viewportHeight) }
func (n *Navigator) PageDown() { n.Select(n.selectedIndex + n.viewportHeight) }
func (n *Navigator) Top()      { n.Select(0) }
func (n *Navigator) Bottom()   { n.Select(n.total - 1) }

// RowAt maps a line inside the viewport to a row index, -1 if none
func (n *Navigator) RowAt(line int) int {
	if line < 0 || line >= n.viewportHeight {
		return -1
	}
	row := n.viewportOffset + line
	if row >= n.total {
		return -1
	}
	return row
}

func (n *Navigator) clamp() {
	if n.selectedIndex >= n.total {
		n.selectedIndex = n.total - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}

	// don't leave empty space below the last row when the list shrinks
	if maxOffset := n.total - n.viewportHeight; n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
