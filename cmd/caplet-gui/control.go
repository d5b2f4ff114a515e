package main

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/caplet/internal/overlay"
)

// floatingControl is the draggable launcher button. Raw pointer events
// go to the dragger, which decides whether the sequence repositions the
// control or toggles the panel.
type floatingControl struct {
	widget.BaseWidget
	dragger   *overlay.Dragger
	icon      *canvas.Image
	isHovered bool

	mu     sync.Mutex
	onMove func(x, y float64)
	onUp   func()
}

func newFloatingControl() *floatingControl {
	icon := canvas.NewImageFromResource(theme.NewThemedResource(theme.MediaVideoIcon()))
	icon.FillMode = canvas.ImageFillContain

	c := &floatingControl{icon: icon}
	c.dragger = overlay.NewDragger(c.bindTracking)
	c.ExtendBaseWidget(c)
	return c
}

// bindTracking hands the drag session's move/up callbacks to the
// control, which forwards its own pointer events for the session's
// duration. Fyne keeps delivering drag events to the pressed widget
// even after the pointer leaves it, which is exactly the tracking the
// dragger needs.
func (c *floatingControl) bindTracking(move func(x, y float64), up func()) func() {
	c.mu.Lock()
	c.onMove = move
	c.onUp = up
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.onMove = nil
		c.onUp = nil
		c.mu.Unlock()
	}
}

func (c *floatingControl) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pos := c.Position()
	c.dragger.PointerDown(
		float64(ev.AbsolutePosition.X), float64(ev.AbsolutePosition.Y),
		float64(pos.X), float64(pos.Y),
	)
}

func (c *floatingControl) MouseUp(_ *desktop.MouseEvent) {
	c.mu.Lock()
	up := c.onUp
	c.mu.Unlock()
	if up != nil {
		up()
	}
}

func (c *floatingControl) Dragged(ev *fyne.DragEvent) {
	c.mu.Lock()
	move := c.onMove
	c.mu.Unlock()
	if move != nil {
		move(float64(ev.AbsolutePosition.X), float64(ev.AbsolutePosition.Y))
	}
}

func (c *floatingControl) DragEnd() {
	c.mu.Lock()
	up := c.onUp
	c.mu.Unlock()
	if up != nil {
		up()
	}
}

func (c *floatingControl) MouseIn(_ *desktop.MouseEvent) {
	c.setHover(true)
}

func (c *floatingControl) MouseMoved(_ *desktop.MouseEvent) {
	c.setHover(true)
}

func (c *floatingControl) MouseOut() {
	c.setHover(false)
}

func (c *floatingControl) setHover(on bool) {
	safeDo("ui.control.hover", func() {
		c.isHovered = on
		if on {
			c.icon.Translucency = 0.4
		} else {
			c.icon.Translucency = 0.0
		}
		c.icon.Refresh()
	})
}

func (c *floatingControl) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (c *floatingControl) MinSize() fyne.Size {
	return fyne.NewSize(48, 48)
}

func (c *floatingControl) CreateRenderer() fyne.WidgetRenderer {
	return &floatingControlRenderer{c: c, icon: c.icon}
}

type floatingControlRenderer struct {
	c    *floatingControl
	icon *canvas.Image
}

func (r *floatingControlRenderer) Layout(s fyne.Size) {
	r.icon.Resize(s)
	r.icon.Move(fyne.NewPos(0, 0))
}

func (r *floatingControlRenderer) MinSize() fyne.Size {
	return r.c.MinSize()
}

func (r *floatingControlRenderer) Refresh() {
	canvas.Refresh(r.icon)
}

func (r *floatingControlRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.icon}
}

func (r *floatingControlRenderer) Destroy() {}

// backdrop is the invisible full-window layer shown while the panel is
// open; a press on it dismisses the panel. It stands in for a
// document-level outside-press handler.
type backdrop struct {
	widget.BaseWidget

	mu      sync.Mutex
	onPress func()
}

func newBackdrop() *backdrop {
	b := &backdrop{}
	b.ExtendBaseWidget(b)
	b.Hide()
	return b
}

// bindOutside is the panel coordinator's OutsideBinder: showing the
// backdrop arms outside-press dismissal, unbinding hides it again.
func (b *backdrop) bindOutside(onPress func()) func() {
	b.mu.Lock()
	b.onPress = onPress
	b.mu.Unlock()
	safeDo("ui.backdrop.show", func() { b.Show() })
	return func() {
		b.mu.Lock()
		b.onPress = nil
		b.mu.Unlock()
		safeDo("ui.backdrop.hide", func() { b.Hide() })
	}
}

func (b *backdrop) Tapped(_ *fyne.PointEvent) {
	b.mu.Lock()
	fn := b.onPress
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (b *backdrop) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}
