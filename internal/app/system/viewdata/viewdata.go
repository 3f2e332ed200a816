// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync"
	"time"

	"github.com/dalemusser/meditrip/internal/app/system/flash"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is used until Init is called.
const DefaultSiteName = "MediTrip"

// NavItem is one entry of the main navigation.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

var navItems = []NavItem{
	{Label: "Home", Path: "/"},
	{Label: "About", Path: "/about"},
	{Label: "Services", Path: "/services"},
	{Label: "Blog", Path: "/blog"},
	{Label: "Gallery", Path: "/gallery"},
	{Label: "Contact", Path: "/contact"},
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title"),
//	}
type BaseVM struct {
	SiteName    string
	Title       string
	Description string
	CurrentPath string
	Nav         []NavItem
	Year        int
	Flashes     []flash.Message

	// CSRF protection
	CSRFToken string // empty on routes without the csrf middleware
}

var (
	mu       sync.RWMutex
	siteName = DefaultSiteName
)

// Init sets the site name shown in titles and the footer.
func Init(name string) {
	if name == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	siteName = name
}

// SiteName returns the configured site name.
func SiteName() string {
	mu.RLock()
	defer mu.RUnlock()
	return siteName
}

// NewBaseVM builds the shared view model for r.
func NewBaseVM(r *http.Request, title string) BaseVM {
	path := r.URL.Path
	nav := make([]NavItem, len(navItems))
	for i, item := range navItems {
		item.Active = item.Path == path || (item.Path != "/" && len(path) > len(item.Path) && path[:len(item.Path)+1] == item.Path+"/")
		nav[i] = item
	}
	return BaseVM{
		SiteName:    SiteName(),
		Title:       title,
		CurrentPath: httpnav.CurrentPath(r),
		Nav:         nav,
		Year:        time.Now().Year(),
		CSRFToken:   csrf.Token(r),
	}
}
