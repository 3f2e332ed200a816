package content

import (
	"html/template"
	"strconv"
	"strings"

	norm "github.com/dalemusser/meditrip/internal/app/system/content"
	"github.com/dalemusser/meditrip/internal/app/system/htmlsanitize"
)

// Image sizes requested from the media host.
const (
	cardW, cardH           = 800, 450
	heroW, heroH           = 1600, 900
	portraitW, portraitH   = 400, 400
	galleryW, galleryH     = 600, 600
	treatmentW, treatmentH = 600, 400
)

// Excerpt caps, in runes.
const (
	postExcerptLen   = 160
	bioLen           = 300
	quoteLen         = 280
	descriptionLen   = 200
	wordsPerMinute   = 200
	defaultRating    = 5
	untitled         = "Untitled"
	defaultTreatment = "Treatment"
	defaultMember    = "MediTrip Team Member"
	defaultRole      = "Patient Care"
	defaultMoment    = "MediTrip Moment"
)

var postFields = norm.FieldTable{
	"id":     {"_id", "id"},
	"slug":   {"slug", "seoSlug", "url.path"},
	"title":  {"title", "name"},
	"author": {"author.name", "authorName", "memberName", "author"},
}

var postDateFields = []string{"firstPublishedDate", "publishedDate", "lastPublishedDate", "_createdDate", "createdDate", "date"}

var postExcerptFields = []string{"excerpt", "description", "summary", "richContent", "contentText", "content"}

// postBodyFields hold the article itself, richest form first.
var postBodyFields = []string{"contentHtml", "html", "richContent", "contentText", "content"}

var memberFields = norm.FieldTable{
	"id":   {"_id", "id"},
	"name": {"name", "fullName", "title"},
	"role": {"role", "position", "jobTitle", "specialty"},
}

var testimonialFields = norm.FieldTable{
	"id":        {"_id", "id"},
	"name":      {"name", "clientName", "patientName", "author"},
	"location":  {"location", "country", "city"},
	"treatment": {"treatment", "procedure", "service"},
	"rating":    {"rating", "stars"},
}

var momentFields = norm.FieldTable{
	"id":       {"_id", "id"},
	"title":    {"title", "name", "caption"},
	"location": {"location", "place", "city"},
	"video":    {"video.url", "video.videoInfo", "videoInfo.url", "videoUrl", "video"},
	"type":     {"type", "mediaType"},
}

var treatmentFields = norm.FieldTable{
	"id":        {"_id", "id"},
	"slug":      {"slug"},
	"title":     {"title", "name"},
	"priceFrom": {"priceFrom", "startingPrice", "price"},
	"duration":  {"duration", "stayLength"},
	"location":  {"location", "destination", "city"},
	"savings":   {"savings", "savingsPercent"},
}

var categoryFields = norm.FieldTable{
	"id":    {"_id", "id"},
	"slug":  {"slug"},
	"label": {"label", "title", "name"},
	"count": {"postCount", "count"},
}

var itemDateFields = []string{"date", "_createdDate", "createdDate"}

// NormalizePost maps a raw post to a Post. withBody also renders the
// article HTML, which list views do not need. A post without a slug is
// addressed by its ID.
func NormalizePost(rec norm.Record, withBody bool) Post {
	id := postFields.Get(rec, "id")
	p := Post{
		ID:         id,
		Slug:       norm.FirstOr(rec, id, postFields["slug"]...),
		Title:      norm.FirstOr(rec, untitled, postFields["title"]...),
		Excerpt:    norm.DescriptionOr(rec, postExcerptLen, postExcerptFields...),
		Author:     norm.FirstOr(rec, DefaultAuthor, postFields["author"]...),
		Categories: norm.Strings(rec, "categoryIds"),
	}
	if p.Categories == nil {
		p.Categories = norm.Strings(rec, "categories")
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	if v, ok := norm.Lookup(rec, "featured"); ok {
		if b, ok := v.(bool); ok {
			p.Featured = b
		}
	}
	if t, ok := norm.ParseDate(rec, postDateFields...); ok {
		p.Published = t
		p.Date = t.Format(norm.DisplayDateLayout)
	}

	body, plain := postBody(rec)
	p.ReadingMinutes = readingMinutes(rec, plain)

	p.Image = norm.ImageOrPlaceholder(rec, cardW, cardH)
	p.HeroImage = norm.ImageOrPlaceholder(rec, heroW, heroH)
	if p.Image == norm.PlaceholderImage && body != "" {
		if src, ok := norm.FirstImageInHTML(body); ok {
			if u, ok := norm.ResolveImage(src, cardW, cardH); ok {
				p.Image, p.HeroImage = u, u
			}
		}
	}

	if withBody {
		if body == "" {
			body = "<p>" + template.HTMLEscapeString(p.Excerpt) + "</p>"
		}
		p.BodyHTML = htmlsanitize.PrepareForDisplay(body)
		p.Headings = norm.HeadingsInHTML(string(p.BodyHTML))
	}
	return p
}

// postBody returns the article as HTML (unsanitized) plus its plain text.
func postBody(rec norm.Record) (string, string) {
	for _, field := range postBodyFields {
		v, ok := norm.Lookup(rec, field)
		if !ok {
			continue
		}
		switch doc := norm.Classify(v).(type) {
		case norm.HTMLDoc:
			return string(doc), norm.PlainText(v)
		case norm.HTMLFieldDoc:
			return string(doc), norm.PlainText(v)
		case norm.PlainDoc:
			if s := strings.TrimSpace(string(doc)); s != "" {
				return htmlsanitize.PlainTextToHTML(s), norm.PlainText(v)
			}
		case norm.NodeDoc:
			if html := renderNodes(doc.Nodes); html != "" {
				return html, norm.PlainText(v)
			}
		case norm.BlocksDoc:
			if plain := norm.PlainText(v); plain != "" {
				return "<p>" + template.HTMLEscapeString(plain) + "</p>", plain
			}
		}
	}
	return "", ""
}

// renderNodes turns the top level of a rich-text node tree into paragraphs
// and headings. Inline decoration is flattened.
func renderNodes(nodes []any) string {
	var b strings.Builder
	for _, n := range nodes {
		m, ok := n.(map[string]any)
		if !ok {
			continue
		}
		text := norm.PlainText(m)
		if text == "" {
			if s, ok := m["text"].(string); ok {
				text = norm.Clean(s)
			}
		}
		if text == "" {
			continue
		}
		esc := template.HTMLEscapeString(text)
		switch t, _ := m["type"].(string); t {
		case "HEADING":
			b.WriteString("<h2>" + esc + "</h2>")
		case "BLOCKQUOTE":
			b.WriteString("<blockquote>" + esc + "</blockquote>")
		default:
			b.WriteString("<p>" + esc + "</p>")
		}
	}
	return b.String()
}

// readingMinutes prefers the CMS's own estimate.
func readingMinutes(rec norm.Record, plain string) int {
	if n, err := strconv.Atoi(norm.First(rec, "minutesToRead", "timeToRead")); err == nil && n > 0 {
		return n
	}
	words := len(strings.Fields(plain))
	if words == 0 {
		return 1
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// NormalizeCategory maps a raw category.
func NormalizeCategory(rec norm.Record) Category {
	n, _ := strconv.Atoi(categoryFields.Get(rec, "count"))
	return Category{
		ID:        categoryFields.Get(rec, "id"),
		Slug:      categoryFields.Get(rec, "slug"),
		Label:     norm.FirstOr(rec, untitled, categoryFields["label"]...),
		PostCount: n,
	}
}

// NormalizeMember maps a team member or advisor.
func NormalizeMember(rec norm.Record) TeamMember {
	return TeamMember{
		ID:    memberFields.Get(rec, "id"),
		Name:  norm.FirstOr(rec, defaultMember, memberFields["name"]...),
		Role:  norm.FirstOr(rec, defaultRole, memberFields["role"]...),
		Bio:   norm.DescriptionOr(rec, bioLen, "bio", "biography", "description", "about"),
		Image: norm.ImageOrPlaceholder(rec, portraitW, portraitH),
	}
}

// NormalizeTestimonial maps a patient review. Ratings are clamped to 1..5.
func NormalizeTestimonial(rec norm.Record) Testimonial {
	rating := defaultRating
	if f, err := strconv.ParseFloat(testimonialFields.Get(rec, "rating"), 64); err == nil {
		rating = int(f + 0.5)
	}
	rating = min(max(rating, 1), 5)

	return Testimonial{
		ID:        testimonialFields.Get(rec, "id"),
		Name:      norm.FirstOr(rec, "Anonymous", testimonialFields["name"]...),
		Location:  testimonialFields.Get(rec, "location"),
		Treatment: testimonialFields.Get(rec, "treatment"),
		Quote:     norm.DescriptionOr(rec, quoteLen, "quote", "testimonial", "review", "text", "content"),
		Rating:    rating,
		Image:     norm.ImageOrPlaceholder(rec, portraitW, portraitH),
		Date:      norm.FormatDate(rec, itemDateFields...),
	}
}

// NormalizeMoment maps a gallery item. Items with a playable video are
// videos; everything else is an image.
func NormalizeMoment(rec norm.Record) Moment {
	m := Moment{
		ID:          momentFields.Get(rec, "id"),
		Kind:        norm.KindImage,
		Title:       norm.FirstOr(rec, defaultMoment, momentFields["title"]...),
		Description: norm.DescriptionOr(rec, descriptionLen, "description", "caption", "text"),
		Location:    momentFields.Get(rec, "location"),
		Image:       norm.ImageOrPlaceholder(rec, galleryW, galleryH),
		Date:        norm.FormatDate(rec, itemDateFields...),
	}
	if u, ok := norm.VideoURL(momentFields.Get(rec, "video")); ok {
		m.Kind = norm.KindVideo
		m.VideoURL = u
	} else if strings.EqualFold(momentFields.Get(rec, "type"), norm.KindVideo) {
		m.Kind = norm.KindVideo
	}
	return m
}

// NormalizeTreatment maps a service listing.
func NormalizeTreatment(rec norm.Record) Treatment {
	return Treatment{
		ID:          treatmentFields.Get(rec, "id"),
		Slug:        treatmentFields.Get(rec, "slug"),
		Title:       norm.FirstOr(rec, defaultTreatment, treatmentFields["title"]...),
		Description: norm.DescriptionOr(rec, descriptionLen, "description", "summary", "details"),
		Image:       norm.ImageOrPlaceholder(rec, treatmentW, treatmentH),
		PriceFrom:   treatmentFields.Get(rec, "priceFrom"),
		Duration:    treatmentFields.Get(rec, "duration"),
		Location:    treatmentFields.Get(rec, "location"),
		Savings:     treatmentFields.Get(rec, "savings"),
	}
}

// linkablePosts drops posts that have neither a slug nor an ID, since no
// detail page can be addressed for them.
func linkablePosts(posts []Post) []Post {
	out := posts[:0]
	for _, p := range posts {
		if p.Slug != "" {
			out = append(out, p)
		}
	}
	return out
}

func mapRecords[T any](recs []norm.Record, fn func(norm.Record) T) []T {
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		out = append(out, fn(r))
	}
	return out
}
