// Package static exposes web static assets for HTTP serving.
package static

import "embed"

// FS exposes web static assets for HTTP serving.
//
//go:embed *.css
var FS embed.FS
