package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/caplet/internal/config"
	"github.com/oukeidos/caplet/internal/docstore"
	"github.com/oukeidos/caplet/internal/geoip"
	"github.com/oukeidos/caplet/internal/identity"
	"github.com/oukeidos/caplet/internal/language"
	"github.com/oukeidos/caplet/internal/localstore"
	"github.com/oukeidos/caplet/internal/logger"
	"github.com/oukeidos/caplet/internal/overlay"
	"github.com/oukeidos/caplet/internal/prefs"
	"github.com/oukeidos/caplet/internal/session"
)

const (
	windowWidth  = 720
	windowHeight = 480
	panelWidth   = 280
	panelHeight  = 340
)

type capletApp struct {
	window fyne.Window
	cfg    config.Config

	watcher  *identity.Watcher
	tracker  *session.Tracker
	resolver *prefs.Resolver
	panel    *overlay.Panel
	feed     *overlay.Feed

	control     *floatingControl
	shade       *backdrop
	panelBox    *fyne.Container
	captionText *canvas.Text

	titleLabel   *widget.Label
	langSelect   *widget.Select
	subsCheck    *widget.Check
	audioCheck   *widget.Check
	sizeSelect   *widget.Select
	settingsBtn  *widget.Button
	signOutBtn   *widget.Button
	settingsBox  *fyne.Container
	statusLabel  *widget.Label
	controlsView *fyne.Container

	authView      *fyne.Container
	emailEntry    *widget.Entry
	passwordEntry *widget.Entry
	loginBtn      *widget.Button
	registerBtn   *widget.Button
	authStatus    *widget.Label

	nameToCode      map[string]language.Code
	syncing         bool
	panicNoticeOnce sync.Once
}

func newCapletApp(w fyne.Window, cfg config.Config) *capletApp {
	a := &capletApp{window: w, cfg: cfg}

	client := identity.NewClient(cfg.IdentityURL)
	a.watcher = identity.NewWatcher(client)

	localPath, err := localstore.DefaultPath()
	if err != nil {
		logger.Warn("Local store unavailable, preferences will not persist", "error", err)
	}
	a.resolver = prefs.NewResolver(
		docstore.NewClient(cfg.DocstoreURL, a.watcher.Token),
		localstore.Open(localPath),
		localeProbe,
		geoip.NewClient(cfg.GeoipURL),
		cfg.CountryTable(),
		language.Code(cfg.DefaultLanguage),
	)

	clock := overlay.SystemClock()
	a.shade = newBackdrop()
	a.panel = overlay.NewPanel(clock, a.shade.bindOutside)
	a.feed = overlay.NewFeed(clock)

	a.tracker = session.NewTracker(a.watcher)
	a.tracker.BindPanel(a.panel)

	a.setupUI()
	a.wire()
	return a
}

func (a *capletApp) setupUI() {
	a.control = newFloatingControl()
	a.control.Resize(a.control.MinSize())
	a.control.Move(fyne.NewPos(windowWidth-72, windowHeight-96))

	panelView := a.buildPanelView()
	a.panelBox = container.NewWithoutLayout(panelView)
	panelView.Resize(fyne.NewSize(panelWidth, panelHeight))
	a.panelBox.Move(fyne.NewPos(windowWidth-panelWidth-16, 16))
	a.panelBox.Hide()

	a.shade.Resize(fyne.NewSize(windowWidth, windowHeight))

	a.captionText = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	a.captionText.Alignment = fyne.TextAlignCenter
	a.captionText.TextStyle = fyne.TextStyle{Bold: true}
	a.applyCaptionSize()

	free := container.NewWithoutLayout(a.shade, a.panelBox, a.control)
	captionBar := container.NewBorder(nil, container.NewPadded(a.captionText), nil, nil)

	a.window.SetContent(container.NewStack(captionBar, free))

	a.applyStrings(a.resolver.Current())
	a.syncPanel(a.panel.State())
}

func (a *capletApp) wire() {
	a.control.dragger.SetHandlers(
		nil,
		func(x, y float64) {
			a.safeDo("control.move", func() {
				cx, cy := clampPosition(float32(x), float32(y),
					a.control.Size().Width, a.control.Size().Height,
					windowWidth, windowHeight)
				a.control.Move(fyne.NewPos(cx, cy))
			})
		},
		a.panel.ToggleOpen,
	)

	a.panel.SetOnChange(func(state overlay.PanelState) {
		a.safeDo("panel.sync", func() { a.syncPanel(state) })
	})

	a.resolver.SetOnChange(func(code language.Code) {
		a.feed.SetLanguage(code)
		a.safeDo("panel.strings", func() { a.applyStrings(code) })
	})

	a.feed.SetOnCaption(func(caption string) {
		a.safeDo("caption.render", func() {
			a.captionText.Text = caption
			a.captionText.Refresh()
		})
	})

	a.tracker.AddListener(func(prev, cur *identity.Identity) {
		a.feed.SetIdentityPresent(cur != nil)
		a.safeDo("panel.identity", func() { a.syncPanel(a.panel.State()) })
		a.safeGo("prefs.resolve", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			code, source := a.resolver.Resolve(ctx, cur)
			logger.Info("Display language resolved", "language", string(code), "source", string(source))
		})
	})

	a.tracker.Start()
	a.safeGo("session.restore", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.watcher.Start(ctx)
	})
}

func (a *capletApp) applyCaptionSize() {
	a.captionText.TextSize = captionTextSize(a.feed.Playback().SubtitleSize)
	a.captionText.Refresh()
}

func captionTextSize(size string) float32 {
	switch size {
	case overlay.SizeSmall:
		return 14
	case overlay.SizeLarge:
		return 26
	default:
		return 18
	}
}

// clampPosition keeps the control inside the window.
func clampPosition(x, y, w, h, maxW, maxH float32) (float32, float32) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > maxW-w {
		x = maxW - w
	}
	if y > maxH-h {
		y = maxH - h
	}
	return x, y
}

// localeProbe reads the runtime locale the way POSIX tools do.
func localeProbe() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			os.Exit(1)
		}
	}()

	path, err := config.DefaultPath()
	var cfg config.Config
	if err == nil {
		cfg, err = config.Load(path)
	}
	if err != nil {
		logger.Warn("Config load failed, using defaults", "error", err)
		cfg = config.Default()
	}

	level := logger.LevelInfo
	if cfg.LogLevel == "debug" {
		level = logger.LevelDebug
	}
	logger.Init(level, nil)

	myApp := app.NewWithID("com.caplet.app")
	myApp.SetIcon(appIcon())

	w := myApp.NewWindow("caplet")
	w.SetIcon(appIcon())
	w.SetMaster()
	w.Resize(fyne.NewSize(windowWidth, windowHeight))
	w.SetFixedSize(true)
	w.CenterOnScreen()

	ca := newCapletApp(w, cfg)
	w.SetCloseIntercept(func() {
		ca.tracker.Stop()
		w.SetCloseIntercept(nil)
		w.Close()
	})

	w.ShowAndRun()
}
