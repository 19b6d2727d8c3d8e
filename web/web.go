// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html static/*
var FS embed.FS

// StaticFS returns the static assets rooted at the static directory, so they
// can be served under /static without the extra path segment.
func StaticFS() fs.FS {
	static, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return static
}
