// Package assets embeds the palette picker page served at "/".
package assets

import (
	"embed"
	"io/fs"
)

//go:embed web
var embedded embed.FS

// WebUI holds the picker page with index.html at its root.
var WebUI = mustSub(embedded, "web")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
