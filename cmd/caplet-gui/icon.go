package main

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed assets/icon.png
var appIconBytes []byte

func appIcon() fyne.Resource {
	return fyne.NewStaticResource("caplet-icon.png", appIconBytes)
}
