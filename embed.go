package main

import (
	"embed"
	"io/fs"
)

// The overlay page served at "/".
//
//go:embed frontend/*.html frontend/*.css frontend/*.js
var overlayFiles embed.FS

func overlayFS() (fs.FS, error) {
	return fs.Sub(overlayFiles, "frontend")
}
