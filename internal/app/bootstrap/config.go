// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/meditrip/internal/app/content"
	"github.com/dalemusser/meditrip/internal/app/features/contact"
	"github.com/dalemusser/meditrip/internal/app/system/cms"
	"github.com/dalemusser/meditrip/internal/app/system/flash"
	"github.com/dalemusser/meditrip/internal/app/system/mailer"
	"github.com/dalemusser/meditrip/internal/app/system/ratelimit"
	"github.com/dalemusser/meditrip/internal/app/system/timeouts"
	"github.com/dalemusser/meditrip/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for MediTrip.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: cms_base_url, contact_collection_id, etc.
//   - Environment variables: MEDITRIP_CMS_BASE_URL, MEDITRIP_MAIL_API_KEY, etc.
//   - Command-line flags: --cms_base_url, --mail_api_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "", Desc: "MongoDB URI for the contact journal (blank disables it)"},
	{Name: "mongo_database", Default: "meditrip", Desc: "MongoDB database name"},

	// Headless CMS
	{Name: "cms_base_url", Default: "https://www.wixapis.com", Desc: "CMS REST API base URL"},
	{Name: "cms_site_id", Default: "", Desc: "CMS site identifier"},
	{Name: "cms_client_id", Default: "", Desc: "CMS OAuth2 client ID"},
	{Name: "cms_client_secret", Default: "", Desc: "CMS OAuth2 client secret"},
	{Name: "cms_token_url", Default: "", Desc: "CMS OAuth2 token URL (blank derives it from the base URL)"},
	{Name: "cms_api_key", Default: "", Desc: "CMS API key (used when no OAuth2 client is set)"},
	{Name: "cms_post_lookup", Default: "both", Desc: "Single post lookup: 'both', 'slug' or 'query'"},
	{Name: "cms_timeout", Default: "8s", Desc: "Per-request CMS timeout"},

	// Collections
	{Name: "gallery_id", Default: "", Desc: "CMS media gallery shown on /gallery"},
	{Name: "team_collection", Default: "Team", Desc: "CMS collection of staff members"},
	{Name: "advisors_collection", Default: "Advisors", Desc: "CMS collection of medical advisors"},
	{Name: "testimonials_collection", Default: "Testimonials", Desc: "CMS collection of patient reviews"},
	{Name: "treatments_collection", Default: "Treatments", Desc: "CMS collection of treatments"},
	{Name: "moments_collection", Default: "Moments", Desc: "CMS collection used when no gallery is set"},

	// Contact form
	{Name: "contact_collection_id", Default: contact.DefaultCollection, Desc: "CMS collection receiving contact submissions"},
	{Name: "contact_rate_limit", Default: 5, Desc: "Contact submissions allowed per client IP per hour"},
	{Name: "trusted_proxies", Default: "", Desc: "Comma-separated proxy IPs/CIDRs whose X-Forwarded-For is believed"},
	{Name: "mail_to", Default: "", Desc: "Mailbox notified of new enquiries (blank disables email)"},
	{Name: "mail_from", Default: "", Desc: "From address for notifications"},
	{Name: "mail_from_name", Default: "MediTrip", Desc: "From display name"},
	{Name: "mail_api_url", Default: mailer.DefaultAPIURL, Desc: "Transactional email API endpoint"},
	{Name: "mail_api_key", Default: "", Desc: "Transactional email API key"},

	// Site
	{Name: "site_name", Default: viewdata.DefaultSiteName, Desc: "Site name shown in titles and emails"},
	{Name: "session_key", Default: "", Desc: "Flash cookie signing key (32+ chars; blank uses a random key)"},
	{Name: "session_name", Default: flash.DefaultSessionName, Desc: "Flash cookie name"},
	{Name: "session_domain", Default: "", Desc: "Flash cookie domain (blank means current host)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, MEDITRIP_* for the app) and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MEDITRIP", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		CMSBaseURL:      appValues.String("cms_base_url"),
		CMSSiteID:       appValues.String("cms_site_id"),
		CMSClientID:     appValues.String("cms_client_id"),
		CMSClientSecret: appValues.String("cms_client_secret"),
		CMSTokenURL:     appValues.String("cms_token_url"),
		CMSAPIKey:       appValues.String("cms_api_key"),
		CMSPostLookup:   appValues.String("cms_post_lookup"),
		CMSTimeout:      appValues.Duration("cms_timeout", 8*time.Second),

		GalleryID:              appValues.String("gallery_id"),
		TeamCollection:         appValues.String("team_collection"),
		AdvisorsCollection:     appValues.String("advisors_collection"),
		TestimonialsCollection: appValues.String("testimonials_collection"),
		TreatmentsCollection:   appValues.String("treatments_collection"),
		MomentsCollection:      appValues.String("moments_collection"),

		ContactCollectionID:     appValues.String("contact_collection_id"),
		ContactRateLimit:        appValues.Int("contact_rate_limit"),
		TrustedProxies:          appValues.String("trusted_proxies"),
		ContactNotificationTo:   appValues.String("mail_to"),
		ContactNotificationFrom: appValues.String("mail_from"),

		MailAPIURL:   appValues.String("mail_api_url"),
		MailAPIKey:   appValues.String("mail_api_key"),
		MailFromName: appValues.String("mail_from_name"),

		SiteName:      appValues.String("site_name"),
		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
	}

	// Timeout overrides apply before ConnectDB so the Mongo ping honors them.
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeout overrides applied", zap.Int("count", n), zap.Any("timeouts", timeouts.Current()))
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Missing CMS or mail credentials are not errors: the site then serves its
// static dataset and skips notification email. Malformed values are.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.journalEnabled() {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
	}

	if appCfg.CMSBaseURL != "" && !urlutil.IsValidAbsHTTPURL(appCfg.CMSBaseURL) {
		return fmt.Errorf("cms_base_url must be an absolute http(s) URL, got %q", appCfg.CMSBaseURL)
	}
	if appCfg.CMSTokenURL != "" && !urlutil.IsValidAbsHTTPURL(appCfg.CMSTokenURL) {
		return fmt.Errorf("cms_token_url must be an absolute http(s) URL, got %q", appCfg.CMSTokenURL)
	}
	if _, err := cms.ParseLookupStrategy(appCfg.CMSPostLookup); err != nil {
		return err
	}
	if appCfg.CMSTimeout <= 0 {
		return fmt.Errorf("cms_timeout must be positive, got %s", appCfg.CMSTimeout)
	}

	if appCfg.MailAPIURL != "" && !urlutil.IsValidAbsHTTPURL(appCfg.MailAPIURL) {
		return fmt.Errorf("mail_api_url must be an absolute http(s) URL, got %q", appCfg.MailAPIURL)
	}
	if appCfg.ContactRateLimit < 0 {
		return fmt.Errorf("contact_rate_limit must not be negative, got %d", appCfg.ContactRateLimit)
	}
	if _, err := ratelimit.ParseTrustedProxies(appCfg.TrustedProxies); err != nil {
		return fmt.Errorf("trusted_proxies: %w", err)
	}
	if n := len(appCfg.SessionKey); n > 0 && n < 32 {
		return fmt.Errorf("session_key must be at least 32 characters (got %d)", n)
	}

	if appCfg.ContactNotificationTo != "" && appCfg.MailAPIKey == "" {
		logger.Warn("mail_to is set but mail_api_key is empty; enquiry emails will be skipped")
	}
	return nil
}

// cmsConfig maps AppConfig onto the CMS client's configuration.
func (c AppConfig) cmsConfig() cms.Config {
	lookup, _ := cms.ParseLookupStrategy(c.CMSPostLookup)
	return cms.Config{
		BaseURL:      c.CMSBaseURL,
		SiteID:       c.CMSSiteID,
		ClientID:     c.CMSClientID,
		ClientSecret: c.CMSClientSecret,
		TokenURL:     c.CMSTokenURL,
		APIKey:       c.CMSAPIKey,
		PostLookup:   lookup,
		Timeout:      c.CMSTimeout,
	}
}

// collections maps AppConfig onto the content service's collection names.
func (c AppConfig) collections() content.Collections {
	cols := content.DefaultCollections()
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cols.Team, c.TeamCollection)
	set(&cols.Advisors, c.AdvisorsCollection)
	set(&cols.Testimonials, c.TestimonialsCollection)
	set(&cols.Treatments, c.TreatmentsCollection)
	set(&cols.Moments, c.MomentsCollection)
	cols.GalleryID = c.GalleryID
	return cols
}

// mailerConfig maps AppConfig onto the mailer's configuration.
func (c AppConfig) mailerConfig() mailer.Config {
	return mailer.Config{
		APIURL:   c.MailAPIURL,
		APIKey:   c.MailAPIKey,
		From:     c.ContactNotificationFrom,
		FromName: c.MailFromName,
	}
}
