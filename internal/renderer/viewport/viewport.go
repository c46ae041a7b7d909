// Package viewport maps the cursor onto the visible text window.
package viewport

// Viewport is the window of the document shown on the text rows of the
// screen. It keeps the cursor visible; it holds no other state.
type Viewport struct {
	// Position in the document (first visible line and display column)
	topLine    int
	leftColumn int

	// Size in screen cells
	width  int
	height int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func NewViewport(width, height int) *Viewport {
	v := &Viewport{}
	v.Resize(width, height)
	return v
}

// Width returns the number of visible columns.
func (v *Viewport) Width() int { return v.width }

// Height returns the number of visible text rows.
func (v *Viewport) Height() int { return v.height }

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int { return v.topLine }

// LeftColumn returns the first visible display column.
func (v *Viewport) LeftColumn() int { return v.leftColumn }

// Resize changes the viewport size.
func (v *Viewport) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
}

// Scroll adjusts the offsets so that (line, col) is visible, moving the
// window by the smallest amount.
func (v *Viewport) Scroll(line, col int) {
	if line < v.topLine {
		v.topLine = line
	} else if line >= v.topLine+v.height {
		v.topLine = line - v.height + 1
	}
	if col < v.leftColumn {
		v.leftColumn = col
	} else if col >= v.leftColumn+v.width {
		v.leftColumn = col - v.width + 1
	}
}

// CenterOn puts line in the middle row of the viewport.
func (v *Viewport) CenterOn(line int) {
	top := line - v.height/2
	if top < 0 {
		top = 0
	}
	v.topLine = top
}

// ScrollTo sets the offsets directly. Negative values are clamped to zero.
func (v *Viewport) ScrollTo(line, col int) {
	v.topLine = max(line, 0)
	v.leftColumn = max(col, 0)
}

// Contains reports whether (line, col) is inside the window.
func (v *Viewport) Contains(line, col int) bool {
	return line >= v.topLine && line < v.topLine+v.height &&
		col >= v.leftColumn && col < v.leftColumn+v.width
}

// BufferToScreen converts a document position to a screen position.
func (v *Viewport) BufferToScreen(line, col int) (screenRow, screenCol int) {
	return line - v.topLine, col - v.leftColumn
}

// State is a saved viewport position.
type State struct {
	TopLine    int
	LeftColumn int
}

// Save returns the current position.
func (v *Viewport) Save() State {
	return State{TopLine: v.topLine, LeftColumn: v.leftColumn}
}

// Restore returns to a saved position.
func (v *Viewport) Restore(s State) {
	v.ScrollTo(s.TopLine, s.LeftColumn)
}
