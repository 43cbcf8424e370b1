// Package view holds the embedded HTML pages served by the handlers.
package view

import (
	"embed"
	"html/template"
)

//go:embed html/*.html
var htmlFS embed.FS

// Templates parses the embedded pages into a single template set for gin.
func Templates() (*template.Template, error) {
	return template.ParseFS(htmlFS, "html/*.html")
}
