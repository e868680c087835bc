// Package web holds the embedded HTML templates for the admin panel.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
