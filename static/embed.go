// Package static embeds the stylesheet, scripts and images served under
// /static and copied by the exporter.
package static

import "embed"

// FS holds every asset at its top level.
//
//go:embed *.css *.js *.svg
var FS embed.FS
