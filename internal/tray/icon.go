package tray

import (
	_ "embed"
	"runtime"
)

//go:embed icon.ico
var iconICO []byte

//go:embed icon.png
var iconPNG []byte

// GetIcon returns the embedded tray icon in the format the platform's tray
// expects: ICO on Windows, PNG elsewhere.
func GetIcon() []byte {
	if runtime.GOOS == "windows" {
		return iconICO
	}
	return iconPNG
}
