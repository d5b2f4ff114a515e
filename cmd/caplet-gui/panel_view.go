package main

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/caplet/internal/apperrors"
	"github.com/oukeidos/caplet/internal/catalog"
	"github.com/oukeidos/caplet/internal/language"
	"github.com/oukeidos/caplet/internal/logger"
	"github.com/oukeidos/caplet/internal/overlay"
)

// hoverablePanel forwards pointer enter/leave to the panel coordinator
// so the auto-close timer pauses while the user hovers the panel.
type hoverablePanel struct {
	widget.BaseWidget
	content fyne.CanvasObject
	panel   *overlay.Panel
}

func newHoverablePanel(content fyne.CanvasObject, panel *overlay.Panel) *hoverablePanel {
	h := &hoverablePanel{content: content, panel: panel}
	h.ExtendBaseWidget(h)
	return h
}

func (h *hoverablePanel) MouseIn(_ *desktop.MouseEvent) {
	h.panel.PointerEnter()
}

func (h *hoverablePanel) MouseMoved(_ *desktop.MouseEvent) {}

func (h *hoverablePanel) MouseOut() {
	h.panel.PointerLeave()
}

func (h *hoverablePanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.content)
}

var sizeOptions = []string{overlay.SizeSmall, overlay.SizeMedium, overlay.SizeLarge}

func (a *capletApp) buildPanelView() fyne.CanvasObject {
	names := make([]string, 0, len(language.Languages))
	a.nameToCode = make(map[string]language.Code, len(language.Languages))
	for _, l := range language.Sorted() {
		names = append(names, l.Name)
		a.nameToCode[l.Name] = l.Code
	}

	a.titleLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	a.langSelect = widget.NewSelect(names, func(name string) {
		if a.syncing {
			return
		}
		code, ok := a.nameToCode[name]
		if !ok {
			return
		}
		a.safeGo("panel.set_language", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := a.resolver.SetLanguage(ctx, a.tracker.Identity(), code); err != nil {
				logger.Warn("Durable language save failed", "error", err)
				a.showStatus(apperrors.PublicMessage(err))
			}
		})
	})

	a.subsCheck = widget.NewCheck("", func(on bool) {
		if a.syncing {
			return
		}
		a.updatePlayback(func(p *overlay.PlaybackState) { p.SubtitlesEnabled = on })
	})
	a.audioCheck = widget.NewCheck("", func(on bool) {
		if a.syncing {
			return
		}
		a.updatePlayback(func(p *overlay.PlaybackState) { p.AudioEnabled = on })
	})
	a.sizeSelect = widget.NewSelect(sizeOptions, func(size string) {
		if a.syncing {
			return
		}
		a.updatePlayback(func(p *overlay.PlaybackState) { p.SubtitleSize = size })
		a.safeDo("panel.caption_size", a.applyCaptionSize)
	})

	a.settingsBtn = widget.NewButton("", func() {
		a.panel.ToggleSettings()
	})
	a.signOutBtn = widget.NewButton("", func() {
		a.safeGo("panel.sign_out", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			a.watcher.SignOut(ctx)
		})
	})
	a.statusLabel = widget.NewLabel("")
	a.statusLabel.Wrapping = fyne.TextWrapWord

	a.settingsBox = container.NewVBox(
		a.audioCheck,
		a.sizeSelect,
		a.signOutBtn,
	)
	a.settingsBox.Hide()

	controls := container.NewVBox(
		a.titleLabel,
		a.langSelect,
		a.subsCheck,
		a.settingsBtn,
		a.settingsBox,
		a.statusLabel,
	)

	a.controlsView = controls
	a.authView = a.buildAuthView()

	stack := container.NewStack(a.controlsView, a.authView)
	card := widget.NewCard("", "", container.NewPadded(stack))
	return newHoverablePanel(card, a.panel)
}

// syncPanel re-renders the panel from coordinator state. Runs on the UI
// thread.
func (a *capletApp) syncPanel(state overlay.PanelState) {
	if state.Open {
		a.panelBox.Show()
	} else {
		a.panelBox.Hide()
	}
	if state.SettingsOpen {
		a.settingsBox.Show()
	} else {
		a.settingsBox.Hide()
	}

	if a.tracker.Identity() != nil {
		a.authView.Hide()
		a.controlsView.Show()
	} else {
		a.controlsView.Hide()
		a.authView.Show()
	}
	a.panelBox.Refresh()
}

// applyStrings updates every panel label for the effective language.
// Runs on the UI thread.
func (a *capletApp) applyStrings(code language.Code) {
	a.titleLabel.SetText(catalog.String(code, catalog.KeyPanelTitle))
	a.subsCheck.Text = catalog.String(code, catalog.KeySubtitles)
	a.subsCheck.Refresh()
	a.audioCheck.Text = catalog.String(code, catalog.KeyAudio)
	a.audioCheck.Refresh()
	a.sizeSelect.PlaceHolder = catalog.String(code, catalog.KeySubtitleSize)
	a.sizeSelect.Refresh()
	a.settingsBtn.SetText(catalog.String(code, catalog.KeySettings))
	a.signOutBtn.SetText(catalog.String(code, catalog.KeySignOut))

	a.emailEntry.SetPlaceHolder(catalog.String(code, catalog.KeyEmail))
	a.passwordEntry.SetPlaceHolder(catalog.String(code, catalog.KeyPassword))
	a.loginBtn.SetText(catalog.String(code, catalog.KeyLogin))
	a.registerBtn.SetText(catalog.String(code, catalog.KeyRegister))

	a.syncing = true
	if lang, ok := language.Get(code); ok {
		a.langSelect.SetSelected(lang.Name)
	}
	a.syncing = false
}

func (a *capletApp) updatePlayback(mutate func(*overlay.PlaybackState)) {
	state := a.feed.Playback()
	mutate(&state)
	a.feed.SetPlayback(state)
}

func (a *capletApp) showStatus(msg string) {
	a.safeDo("panel.status", func() {
		a.statusLabel.SetText(msg)
		a.authStatus.SetText(msg)
	})
}
