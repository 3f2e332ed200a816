// Package htmlsanitize cleans CMS-authored HTML before it is rendered in a
// page. Post bodies and long-form descriptions pass through here.
package htmlsanitize

import (
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowElements("u", "s", "sub", "sup", "mark", "figure", "figcaption")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[\w\- ]+$`)).
		OnElements("table", "thead", "tbody", "tr", "th", "td", "figure", "img", "p")
	p.AllowAttrs("style").Matching(regexp.MustCompile(`^[\w\-:;%#., ]+$`)).
		OnElements("table", "tr", "th", "td")
	p.AllowAttrs("colspan", "rowspan").Matching(bluemonday.Integer).OnElements("th", "td")
	p.AllowAttrs("loading").Matching(regexp.MustCompile(`^(lazy|eager)$`)).OnElements("img")
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return p
}

// Sanitize removes scripts, event handlers, unsafe URLs, and any element
// not in the allow-list.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeToHTML is Sanitize typed for templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no tag-like markup.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML escapes s and wraps it in paragraphs. Blank lines start
// a new paragraph; single newlines become <br>.
func PlainTextToHTML(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, para := range strings.Split(s, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(para), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}

// PrepareForDisplay sanitizes HTML input and converts plain text to HTML.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
