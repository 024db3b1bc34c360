package view

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"smart-pdf-assistant/internal/constant"
	"smart-pdf-assistant/internal/dto"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// PageData is everything the single page needs for its first paint; the
// websocket keeps it current afterwards.
type PageData struct {
	Title         string
	Tagline       string
	UploadLabel   string
	UploadBusy    string
	EmptyMessage  string
	TypingMessage string
	Session       dto.SessionResponse
}

type Page struct {
	tmpl *template.Template
}

func NewPage() (*Page, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Page{tmpl: tmpl}, nil
}

func (p *Page) Render(w io.Writer, session dto.SessionResponse) error {
	return p.tmpl.ExecuteTemplate(w, "index.html", PageData{
		Title:         constant.AppTitle,
		Tagline:       constant.AppTagline,
		UploadLabel:   constant.UploadLabel,
		UploadBusy:    constant.UploadBusy,
		EmptyMessage:  constant.ChatEmptyTranscriptMsg,
		TypingMessage: constant.ChatTypingMessage,
		Session:       session,
	})
}

// Static holds the stylesheet and the page script.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
