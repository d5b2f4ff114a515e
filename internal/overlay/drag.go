package overlay

import (
	"math"
	"sync"
)

// DragThreshold is the displacement, in either axis, past which a
// pointer sequence counts as a drag rather than a click.
const DragThreshold = 5.0

// DocBinder registers document-level move/up tracking for one drag
// session, so motion is followed even after the pointer leaves the
// control. The returned function removes both handlers.
type DocBinder func(move func(x, y float64), up func()) (unbind func())

// Dragger disambiguates a pointer-down/move/up sequence on the floating
// control into either a drag (reposition) or a click. A drag never fires
// the click action.
type Dragger struct {
	bind DocBinder

	mu             sync.Mutex
	active         bool
	moved          bool
	startX, startY float64
	baseX, baseY   float64
	unbind         func()

	onDragStart func()
	onMove      func(x, y float64)
	onClick     func()
}

func NewDragger(bind DocBinder) *Dragger {
	return &Dragger{bind: bind}
}

// SetHandlers wires the gesture outcomes: onDragStart fires once when
// the threshold is first crossed (the control switches its positioning
// anchor), onMove carries the control's new offset, onClick fires for a
// sequence that never crossed the threshold.
func (d *Dragger) SetHandlers(onDragStart func(), onMove func(x, y float64), onClick func()) {
	d.mu.Lock()
	d.onDragStart = onDragStart
	d.onMove = onMove
	d.onClick = onClick
	d.mu.Unlock()
}

// PointerDown opens a drag session at pointer (x, y) with the control
// currently offset at (baseX, baseY), and registers the document-level
// trackers.
func (d *Dragger) PointerDown(x, y, baseX, baseY float64) {
	d.mu.Lock()
	if d.active {
		d.mu.Unlock()
		return
	}
	d.active = true
	d.moved = false
	d.startX, d.startY = x, y
	d.baseX, d.baseY = baseX, baseY
	bind := d.bind
	d.mu.Unlock()

	if bind == nil {
		return
	}
	unbind := bind(d.pointerMove, d.pointerUp)
	d.mu.Lock()
	if d.active {
		d.unbind = unbind
		unbind = nil
	}
	d.mu.Unlock()
	if unbind != nil {
		unbind()
	}
}

func (d *Dragger) pointerMove(x, y float64) {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	dx, dy := x-d.startX, y-d.startY
	first := false
	if !d.moved && (math.Abs(dx) > DragThreshold || math.Abs(dy) > DragThreshold) {
		d.moved = true
		first = true
	}
	if !d.moved {
		d.mu.Unlock()
		return
	}
	onStart, onMove := d.onDragStart, d.onMove
	nx, ny := d.baseX+dx, d.baseY+dy
	d.mu.Unlock()

	if first && onStart != nil {
		onStart()
	}
	if onMove != nil {
		onMove(nx, ny)
	}
}

func (d *Dragger) pointerUp() {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	d.active = false
	moved := d.moved
	unbind := d.unbind
	d.unbind = nil
	onClick := d.onClick
	d.mu.Unlock()

	if unbind != nil {
		unbind()
	}
	if !moved && onClick != nil {
		onClick()
	}
}
