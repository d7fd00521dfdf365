// Package web carries the portal's browser assets and views. Static files
// are compiled into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var assets embed.FS

// Static returns the files served under /static, rooted at web/static.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// Only reachable if the embed directive above changes.
		panic(err)
	}
	return sub
}
