// internal/app/resources/resources.go
//
// Package resources holds the layout partials shared by every page:
// document head, site header with navigation, flash messages and footer.
package resources

import (
	"embed"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

// SharedSet is the template set name of the layout partials.
const SharedSet = "shared"

//go:embed templates/*.gohtml
var FS embed.FS

var registerOnce sync.Once

// LoadSharedTemplates registers the layout partials. It must run before
// the template engine boots; later calls do nothing.
func LoadSharedTemplates() {
	registerOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     SharedSet,
			FS:       FS,
			Patterns: []string{"templates/*.gohtml"},
		})
	})
}
