package main

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/oukeidos/caplet/internal/apperrors"
	"github.com/oukeidos/caplet/internal/catalog"
	"github.com/oukeidos/caplet/internal/identity"
)

func (a *capletApp) buildAuthView() *fyne.Container {
	a.emailEntry = widget.NewEntry()
	a.passwordEntry = widget.NewPasswordEntry()
	a.authStatus = widget.NewLabel("")
	a.authStatus.Wrapping = fyne.TextWrapWord

	a.loginBtn = widget.NewButton("", func() {
		a.submitCredentials(identity.ActionLogin)
	})
	a.registerBtn = widget.NewButton("", func() {
		a.submitCredentials(identity.ActionRegister)
	})

	return container.NewVBox(
		a.emailEntry,
		a.passwordEntry,
		a.loginBtn,
		a.registerBtn,
		a.authStatus,
	)
}

// submitCredentials sends the form to the identity provider. Empty
// fields fail locally; provider failures surface their safe message.
func (a *capletApp) submitCredentials(action identity.Action) {
	email := a.emailEntry.Text
	password := a.passwordEntry.Text

	lang := a.resolver.Current()
	loadingKey := catalog.KeyLoggingIn
	if action == identity.ActionRegister {
		loadingKey = catalog.KeyRegistering
	}
	a.authStatus.SetText(catalog.String(lang, loadingKey))
	a.loginBtn.Disable()
	a.registerBtn.Disable()

	a.safeGo("auth.submit", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := a.watcher.Submit(ctx, action, email, password)

		a.safeDo("auth.submit_done", func() {
			a.loginBtn.Enable()
			a.registerBtn.Enable()
			if err != nil {
				a.authStatus.SetText(apperrors.PublicMessage(err))
				return
			}
			a.authStatus.SetText("")
			a.passwordEntry.SetText("")
		})
	})
}
