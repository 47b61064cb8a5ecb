package handler

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type formData struct {
	Title string
	Token string
}

// FormHandler serves the single-page form.
type FormHandler struct {
	tmpl *template.Template
}

// NewFormHandler creates a new handler instance.
func NewFormHandler() *FormHandler {
	return &FormHandler{tmpl: indexTemplate}
}

// Show handles GET / requests. The session token that unlocked the page is
// embedded so the page can call the run API.
func (h *FormHandler) Show(c echo.Context) error {
	var buf bytes.Buffer
	data := formData{Title: "LeadStorm", Token: c.QueryParam("token")}
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return Error(c, http.StatusInternalServerError, "failed to render form")
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
