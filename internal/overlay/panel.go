package overlay

import (
	"sync"
	"time"
)

// AutoCloseDelay is how long an open panel survives without pointer
// activity before closing itself.
const AutoCloseDelay = 5 * time.Second

// PanelState is the transient visibility state of the settings panel.
// SettingsOpen is only ever true while Open is.
type PanelState struct {
	Open         bool
	SettingsOpen bool
}

// OutsideBinder registers a document-level primary-press handler that
// fires for presses outside both the panel and the floating control.
// The returned function removes the handler. The binder is only invoked
// while the panel is open, so no global handler leaks when it is closed.
type OutsideBinder func(onPress func()) (unbind func())

// Panel coordinates the floating panel's visibility: open/closed,
// settings expanded, the inactivity auto-close timer, and the
// outside-press dismissal handler.
type Panel struct {
	clock       Clock
	delay       time.Duration
	bindOutside OutsideBinder

	mu            sync.Mutex
	state         PanelState
	closeTimer    Timer
	unbindOutside func()
	onChange      func(PanelState)
}

func NewPanel(clock Clock, bindOutside OutsideBinder) *Panel {
	return &Panel{clock: clock, delay: AutoCloseDelay, bindOutside: bindOutside}
}

// SetOnChange registers the render callback, invoked outside the lock
// after every state transition.
func (p *Panel) SetOnChange(fn func(PanelState)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// State returns the current visibility state.
func (p *Panel) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Open presents the panel and arms the auto-close timer.
func (p *Panel) Open() {
	p.setOpen(true)
}

// Close hides the panel and collapses settings. Also cancels the pending
// auto-close and removes the outside-press handler.
func (p *Panel) Close() {
	p.setOpen(false)
}

// ToggleOpen flips the panel.
func (p *Panel) ToggleOpen() {
	p.mu.Lock()
	open := p.state.Open
	p.mu.Unlock()
	p.setOpen(!open)
}

// ToggleSettings expands or collapses the settings section. No-op while
// the panel is closed; settings can never be open on a closed panel.
func (p *Panel) ToggleSettings() {
	p.mu.Lock()
	if !p.state.Open {
		p.mu.Unlock()
		return
	}
	p.state.SettingsOpen = !p.state.SettingsOpen
	state, fn := p.state, p.onChange
	p.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}

// PointerEnter cancels the pending auto-close while the pointer is over
// the panel.
func (p *Panel) PointerEnter() {
	p.mu.Lock()
	p.stopTimerLocked()
	p.mu.Unlock()
}

// PointerLeave re-arms the auto-close when the pointer leaves an open
// panel.
func (p *Panel) PointerLeave() {
	p.mu.Lock()
	if p.state.Open {
		p.armTimerLocked()
	}
	p.mu.Unlock()
}

func (p *Panel) setOpen(open bool) {
	p.mu.Lock()
	if p.state.Open == open {
		p.mu.Unlock()
		return
	}
	p.state.Open = open

	var unbind func()
	if open {
		p.armTimerLocked()
	} else {
		p.state.SettingsOpen = false
		p.stopTimerLocked()
		unbind = p.unbindOutside
		p.unbindOutside = nil
	}
	state, fn := p.state, p.onChange
	bind := open && p.bindOutside != nil
	p.mu.Unlock()

	if unbind != nil {
		unbind()
	}
	if bind {
		u := p.bindOutside(p.Close)
		p.mu.Lock()
		if p.state.Open {
			p.unbindOutside = u
			u = nil
		}
		p.mu.Unlock()
		if u != nil {
			// Closed again before the binder returned.
			u()
		}
	}
	if fn != nil {
		fn(state)
	}
}

// armTimerLocked cancels any previously scheduled close before
// scheduling a new one; at most one pending auto-close exists.
func (p *Panel) armTimerLocked() {
	p.stopTimerLocked()
	p.closeTimer = p.clock.AfterFunc(p.delay, p.Close)
}

func (p *Panel) stopTimerLocked() {
	if p.closeTimer != nil {
		p.closeTimer.Stop()
		p.closeTimer = nil
	}
}
