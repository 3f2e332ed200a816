package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FirstImageInHTML returns the src of the first <img> in an HTML body.
// Post bodies often embed their only image inline.
func FirstImageInHTML(body string) (string, bool) {
	if !strings.Contains(body, "<img") {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", false
	}
	src, ok := doc.Find("img[src]").First().Attr("src")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(src), strings.TrimSpace(src) != ""
}

// HeadingsInHTML returns the text of h2/h3 headings in document order,
// used to build a post's table of contents.
func HeadingsInHTML(body string) []string {
	if body == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	var out []string
	doc.Find("h2, h3").Each(func(_ int, s *goquery.Selection) {
		if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
			out = append(out, t)
		}
	})
	return out
}
