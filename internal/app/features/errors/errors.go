// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/meditrip/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the basic view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Message string
	BackURL string
	BackTo  string
}

// Handler is the errors feature handler.
// No dependencies; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound is the router's fallback for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r, "", "")
}

// RenderNotFound writes a 404 and a friendly page. Empty arguments use a
// generic message and a link home.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if msg == "" {
		msg = "We couldn't find the page you were looking for."
	}
	backTo := "home"
	if backURL == "" {
		backURL = "/"
	} else if backURL == "/blog" {
		backTo = "the blog"
	}

	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Page not found"),
		Message: msg,
		BackURL: backURL,
		BackTo:  backTo,
	}

	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_not_found", data)
}
