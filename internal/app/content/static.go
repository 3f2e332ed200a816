package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dalemusser/meditrip/internal/app/system/cms"
	norm "github.com/dalemusser/meditrip/internal/app/system/content"
)

//go:embed static/*.json
var staticFS embed.FS

// Static is the last-resort dataset served when the CMS is unreachable.
// Records use the CMS's own shapes so they pass through the same
// normalizers.
type Static struct {
	Posts        []norm.Record
	Categories   []norm.Record
	Team         []norm.Record
	Advisors     []norm.Record
	Testimonials []norm.Record
	Moments      []norm.Record
	Treatments   []norm.Record
}

// LoadStatic decodes the embedded dataset.
func LoadStatic() (*Static, error) {
	s := &Static{}
	for name, dst := range map[string]*[]norm.Record{
		"posts":        &s.Posts,
		"categories":   &s.Categories,
		"team":         &s.Team,
		"advisors":     &s.Advisors,
		"testimonials": &s.Testimonials,
		"moments":      &s.Moments,
		"treatments":   &s.Treatments,
	} {
		b, err := staticFS.ReadFile("static/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("read static %s: %w", name, err)
		}
		if err := json.Unmarshal(b, dst); err != nil {
			return nil, fmt.Errorf("decode static %s: %w", name, err)
		}
	}
	return s, nil
}

// PostPage sorts a copy of the static posts and slices one page.
func (s *Static) PostPage(limit, offset int, order string) cms.PostList {
	posts := make([]norm.Record, len(s.Posts))
	copy(posts, s.Posts)
	sortPosts(posts, order)

	total := len(posts)
	start := min(max(offset, 0), total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}
	return cms.PostList{Posts: posts[start:end], Total: total, HasMore: end < total}
}

// FindPost returns the static post with slug, or with that ID when the
// post has no slug of its own.
func (s *Static) FindPost(slug string) (norm.Record, bool) {
	for _, p := range s.Posts {
		if strings.EqualFold(norm.FirstOr(p, postFields.Get(p, "id"), postFields["slug"]...), slug) {
			return p, true
		}
	}
	return nil, false
}

func sortPosts(posts []norm.Record, order string) {
	switch order {
	case cms.SortTitle:
		sort.SliceStable(posts, func(i, j int) bool {
			return strings.ToLower(postFields.Get(posts[i], "title")) < strings.ToLower(postFields.Get(posts[j], "title"))
		})
	case cms.SortOldest:
		sort.SliceStable(posts, func(i, j int) bool {
			ti, _ := norm.ParseDate(posts[i], postDateFields...)
			tj, _ := norm.ParseDate(posts[j], postDateFields...)
			return ti.Before(tj)
		})
	default:
		sort.SliceStable(posts, func(i, j int) bool {
			ti, _ := norm.ParseDate(posts[i], postDateFields...)
			tj, _ := norm.ParseDate(posts[j], postDateFields...)
			return ti.After(tj)
		})
	}
}
