// SpritePack - Texture Atlas Packer
//
// A cross-platform desktop application that packs a folder of sprites
// row by row into a single fixed-size texture atlas.
//
// Build:
//   go build -o spritepack ./cmd/spritepack
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o spritepack.exe ./cmd/spritepack
//   GOOS=darwin  GOARCH=amd64 go build -o spritepack-darwin ./cmd/spritepack
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/SpritePack/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.spritepack")
	window := application.NewWindow("SpritePack")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}
