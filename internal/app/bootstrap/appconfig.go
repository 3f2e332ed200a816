// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and request body limits. AppConfig carries
// everything specific to the site: the CMS credentials, the contact form's
// destinations and the optional submissions journal.
type AppConfig struct {
	// MongoDB journal (optional; blank URI disables it)
	MongoURI      string
	MongoDatabase string

	// Headless CMS
	CMSBaseURL      string
	CMSSiteID       string
	CMSClientID     string
	CMSClientSecret string
	CMSTokenURL     string
	CMSAPIKey       string
	CMSPostLookup   string // "both", "slug" or "query"
	CMSTimeout      time.Duration

	// CMS collections behind each listing
	GalleryID               string
	TeamCollection          string
	AdvisorsCollection      string
	TestimonialsCollection  string
	TreatmentsCollection    string
	MomentsCollection       string
	ContactCollectionID     string
	ContactRateLimit        int    // submissions per client IP per hour
	TrustedProxies          string // proxies allowed to set X-Forwarded-For
	ContactNotificationTo   string
	ContactNotificationFrom string

	// Transactional email API
	MailAPIURL   string
	MailAPIKey   string
	MailFromName string

	// Site
	SiteName string

	// Flash message cookie
	SessionKey    string // 32+ chars; blank uses a random per-process key
	SessionName   string
	SessionDomain string
}

// journalEnabled reports whether contact submissions are journaled in Mongo.
func (c AppConfig) journalEnabled() bool {
	return c.MongoURI != ""
}
