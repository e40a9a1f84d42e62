package widget

import "github.com/san-kum/attractors/internal/viz"

const (
	editorTop    = 300
	editorBottom = 100 // from the bottom edge
	columnWidth  = 50
	handleSize   = 20
)

// Channel names in column order.
var Channels = [4]string{"r", "g", "b", "a"}

// Handle is one end of one channel column.
type Handle struct {
	Channel int
	Final   bool
}

// Editor edits the eight channel endpoints of a gradient. Each channel is
// a column with the initial value's handle on its left edge and the final
// value's on its right.
type Editor struct {
	Gradient viz.Gradient

	width, height float64
	grabbed       [4][2]bool
}

func NewEditor(g viz.Gradient, width, height float64) *Editor {
	return &Editor{Gradient: g.Clamp(), width: width, height: height}
}

func (e *Editor) Top() float64    { return editorTop }
func (e *Editor) Bottom() float64 { return e.height - editorBottom }

// ColumnX returns the centre of channel i's column.
func (e *Editor) ColumnX(i int) float64 { return e.width / 5 * float64(i+1) }

func (e *Editor) ColumnWidth() float64 { return columnWidth }
func (e *Editor) HandleSize() float64  { return handleSize }

// HandleY returns the screen y of a channel value in [0, 255].
func (e *Editor) HandleY(v int) float64 {
	return (e.Top()-e.Bottom())/255*float64(v) + e.Bottom()
}

// Value returns the channel value a handle currently points at.
func (e *Editor) Value(h Handle) int {
	c := e.Gradient.Initial
	if h.Final {
		c = e.Gradient.Final
	}
	return channel(c, h.Channel)
}

// Drag follows the pointer and reports whether the gradient changed.
func (e *Editor) Drag(p Pointer) bool {
	if !p.Down {
		e.grabbed = [4][2]bool{}
		return false
	}

	onTrack := p.DownY >= e.Top() && p.DownY <= e.Bottom()
	changed := false
	for i := range Channels {
		x := e.ColumnX(i)
		left := x - columnWidth/2
		right := x + columnWidth/2

		if onTrack && p.DownX >= left-handleSize && p.DownX <= left {
			e.grabbed[i][0] = true
		}
		if onTrack && p.DownX >= right && p.DownX <= right+handleSize {
			e.grabbed[i][1] = true
		}
		if p.Y > e.Bottom() || p.Y < e.Top() {
			continue
		}
		v := int(255 / (e.Top() - e.Bottom()) * (p.Y - e.Bottom()))
		if e.grabbed[i][0] {
			e.Gradient.Initial = setChannel(e.Gradient.Initial, i, v)
			changed = true
		}
		if e.grabbed[i][1] {
			e.Gradient.Final = setChannel(e.Gradient.Final, i, v)
			changed = true
		}
	}
	return changed
}

func channel(c viz.RGBA, i int) int {
	switch i {
	case 0:
		return c.R
	case 1:
		return c.G
	case 2:
		return c.B
	default:
		return c.A
	}
}

func setChannel(c viz.RGBA, i, v int) viz.RGBA {
	switch i {
	case 0:
		c.R = v
	case 1:
		c.G = v
	case 2:
		c.B = v
	default:
		c.A = v
	}
	return c
}
