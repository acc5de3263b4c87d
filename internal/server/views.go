package server

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

// The view layer is deliberately thin: each page is a small standalone
// template, parsed once at startup.

//go:embed templates/*.html
var templatesFS embed.FS

var views = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

func render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}
