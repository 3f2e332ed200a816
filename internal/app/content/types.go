// Package content is the site's read model. It fetches posts, people and
// listings from the CMS through ordered fallback chains and normalizes
// them into display values that never need nil checks.
package content

import (
	"errors"
	"html/template"
	"time"
)

// ErrPostNotFound is the only error page code ever sees for a post.
var ErrPostNotFound = errors.New("content: post not found")

// Where a result came from.
const (
	SourceCMS    = "cms"
	SourceQuery  = "cms-query"
	SourceSlug   = "cms-slug"
	SourceStatic = "static"
	SourceNone   = "none"
)

// DefaultAuthor is shown on posts without an author.
const DefaultAuthor = "MediTrip Team"

// Post is a normalized blog post.
type Post struct {
	ID             string        `json:"id"`
	Slug           string        `json:"slug"`
	Title          string        `json:"title"`
	Excerpt        string        `json:"excerpt"`
	BodyHTML       template.HTML `json:"bodyHtml,omitempty"`
	Headings       []string      `json:"headings,omitempty"`
	Image          string        `json:"image"`
	HeroImage      string        `json:"heroImage"`
	Author         string        `json:"author"`
	Published      time.Time     `json:"publishedAt"`
	Date           string        `json:"date"`
	ReadingMinutes int           `json:"readingMinutes"`
	Categories     []string      `json:"categories"`
	Featured       bool          `json:"featured"`
}

// PostPage is one page of posts.
type PostPage struct {
	Posts   []Post `json:"posts"`
	Total   int    `json:"total"`
	HasMore bool   `json:"hasMore"`
	Source  string `json:"source"`
}

// Category is a blog category.
type Category struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Label     string `json:"label"`
	PostCount int    `json:"postCount"`
}

// TeamMember is a staff member or medical advisor.
type TeamMember struct {
	ID    string
	Name  string
	Role  string
	Bio   string
	Image string
}

// Testimonial is a patient review.
type Testimonial struct {
	ID        string
	Name      string
	Location  string
	Treatment string
	Quote     string
	Rating    int
	Image     string
	Date      string
}

// Moment is a gallery photo or video.
type Moment struct {
	ID          string
	Kind        string // "image" or "video"
	Title       string
	Description string
	Location    string
	Image       string
	VideoURL    string
	Date        string
}

// Treatment is a service listing.
type Treatment struct {
	ID          string
	Slug        string
	Title       string
	Description string
	Image       string
	PriceFrom   string
	Duration    string
	Location    string
	Savings     string
}
