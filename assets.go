// Package frontdesk provides embedded assets for the console.
package frontdesk

import "embed"

// TemplateFS holds the console's HTML templates.
//
//go:embed web/templates/*.tmpl
var TemplateFS embed.FS
