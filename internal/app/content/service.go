package content

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/dalemusser/meditrip/internal/app/system/cms"
	norm "github.com/dalemusser/meditrip/internal/app/system/content"
	"github.com/dalemusser/meditrip/internal/app/system/fallback"
	"go.uber.org/zap"
)

// Page size limits for post lists.
const (
	DefaultPageSize = 9
	MaxPageSize     = 50
	collectionLimit = 100
	galleryLimit    = 60
)

// Source is the remote content API. *cms.Client satisfies it.
type Source interface {
	Configured() bool
	PostLookup() cms.LookupStrategy
	ListPosts(ctx context.Context, p cms.ListParams) (cms.PostList, error)
	GetPostBySlug(ctx context.Context, slug string) (norm.Record, error)
	QueryPosts(ctx context.Context, q cms.Query) (cms.PostList, error)
	ListCategories(ctx context.Context) ([]norm.Record, error)
	QueryCollection(ctx context.Context, collectionID string, q cms.Query) (cms.ItemList, error)
	ListGalleryItems(ctx context.Context, galleryID string, limit int) ([]norm.Record, error)
}

// Collections names the CMS data collections behind each listing.
type Collections struct {
	Team         string
	Advisors     string
	Testimonials string
	Treatments   string
	Moments      string
	GalleryID    string // optional; gallery items are tried before Moments
}

// DefaultCollections returns the collection IDs used by the live site.
func DefaultCollections() Collections {
	return Collections{
		Team:         "Team",
		Advisors:     "Advisors",
		Testimonials: "Testimonials",
		Treatments:   "Treatments",
		Moments:      "Moments",
	}
}

// Service serves normalized content. It never returns remote errors: a
// failed chain yields an empty result or ErrPostNotFound.
type Service struct {
	src    Source
	static *Static
	cols   Collections
	log    *zap.Logger
}

// NewService builds a Service over src. A nil src serves only static content.
func NewService(src Source, cols Collections, logger *zap.Logger) (*Service, error) {
	static, err := LoadStatic()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{src: src, static: static, cols: cols, log: logger}, nil
}

// remote adapts a CMS call to a fallback step function. Missing or
// unconfigured clients skip the step instead of failing it.
func remote[T any](src Source, fn func(ctx context.Context) (T, error)) func(context.Context) (T, error) {
	if src == nil || !src.Configured() {
		return nil
	}
	return func(ctx context.Context) (T, error) {
		v, err := fn(ctx)
		if errors.Is(err, cms.ErrNotConfigured) {
			return v, fallback.ErrSkipped
		}
		return v, err
	}
}

func (s *Service) lookup() cms.LookupStrategy {
	if s.src == nil {
		return cms.LookupBoth
	}
	return s.src.PostLookup()
}

// NormalizeSort maps unknown sort names to newest.
func NormalizeSort(order string) string {
	switch order {
	case cms.SortOldest, cms.SortTitle:
		return order
	}
	return cms.SortNewest
}

// ClampLimit keeps a page size within 1..MaxPageSize, defaulting to
// DefaultPageSize.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	return min(limit, MaxPageSize)
}

// ListPosts returns one page of posts: CMS list, then CMS query, then the
// static dataset.
func (s *Service) ListPosts(ctx context.Context, limit, offset int, order string) PostPage {
	limit = ClampLimit(limit)
	offset = max(offset, 0)
	order = NormalizeSort(order)

	steps := []fallback.Step[cms.PostList]{
		{Name: SourceCMS, Fn: remote(s.src, func(ctx context.Context) (cms.PostList, error) {
			return s.src.ListPosts(ctx, cms.ListParams{Limit: limit, Offset: offset, Sort: order})
		})},
	}
	if s.lookup().UsesQuery() {
		steps = append(steps, fallback.Step[cms.PostList]{Name: SourceQuery, Fn: remote(s.src, func(ctx context.Context) (cms.PostList, error) {
			return s.src.QueryPosts(ctx, cms.Query{Sort: cms.PostSort(order), Limit: limit, Offset: offset})
		})})
	}
	steps = append(steps, fallback.Step[cms.PostList]{Name: SourceStatic, Local: true, Fn: func(context.Context) (cms.PostList, error) {
		return s.static.PostPage(limit, offset, order), nil
	}})

	list, source, err := fallback.Run(ctx, s.log, "posts", steps...)
	if err != nil {
		return PostPage{Posts: []Post{}, Source: SourceNone}
	}

	posts := linkablePosts(mapRecords(list.Posts, func(r norm.Record) Post { return NormalizePost(r, false) }))
	return PostPage{
		Posts:   posts,
		Total:   list.Total,
		HasMore: list.HasMore || offset+len(list.Posts) < list.Total,
		Source:  source,
	}
}

// PostBySlug finds one post: direct slug lookup, then a filtered query,
// then the static dataset. Which remote strategies run depends on the
// client's configured lookup strategy.
func (s *Service) PostBySlug(ctx context.Context, slug string) (Post, string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Post{}, SourceNone, ErrPostNotFound
	}

	lookup := s.lookup()
	var steps []fallback.Step[norm.Record]
	if lookup.UsesSlug() {
		steps = append(steps, fallback.Step[norm.Record]{Name: SourceSlug, Fn: remote(s.src, func(ctx context.Context) (norm.Record, error) {
			return s.src.GetPostBySlug(ctx, slug)
		})})
	}
	if lookup.UsesQuery() {
		steps = append(steps, fallback.Step[norm.Record]{Name: SourceQuery, Fn: remote(s.src, func(ctx context.Context) (norm.Record, error) {
			list, err := s.src.QueryPosts(ctx, cms.Query{
				Filter: map[string]any{"slug": map[string]any{"$eq": slug}},
				Limit:  1,
			})
			if err != nil {
				return nil, err
			}
			if len(list.Posts) == 0 {
				return nil, cms.ErrNotFound
			}
			return list.Posts[0], nil
		})})
	}
	steps = append(steps, fallback.Step[norm.Record]{Name: SourceStatic, Local: true, Fn: func(context.Context) (norm.Record, error) {
		if rec, ok := s.static.FindPost(slug); ok {
			return rec, nil
		}
		return nil, ErrPostNotFound
	}})

	rec, source, err := fallback.Run(ctx, s.log, "post", steps...)
	if err != nil {
		return Post{}, SourceNone, ErrPostNotFound
	}
	return NormalizePost(rec, true), source, nil
}

// RelatedPosts returns up to n other posts, those sharing a category with
// p first, newest first within each group.
func (s *Service) RelatedPosts(ctx context.Context, p Post, n int) []Post {
	if n <= 0 {
		return []Post{}
	}
	page := s.ListPosts(ctx, MaxPageSize/4, 0, cms.SortNewest)

	cats := make(map[string]bool, len(p.Categories))
	for _, c := range p.Categories {
		cats[c] = true
	}
	shared := func(q Post) bool {
		for _, c := range q.Categories {
			if cats[c] {
				return true
			}
		}
		return false
	}

	out := make([]Post, 0, n)
	for _, q := range page.Posts {
		if q.Slug != p.Slug {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return shared(out[i]) && !shared(out[j]) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Categories lists blog categories.
func (s *Service) Categories(ctx context.Context) []Category {
	recs, _, err := fallback.Run(ctx, s.log, "categories",
		fallback.Step[[]norm.Record]{Name: SourceCMS, Fn: remote(s.src, func(ctx context.Context) ([]norm.Record, error) {
			return s.src.ListCategories(ctx)
		})},
		fallback.Step[[]norm.Record]{Name: SourceStatic, Local: true, Fn: staticList(s.static.Categories)},
	)
	if err != nil {
		return []Category{}
	}
	return mapRecords(recs, NormalizeCategory)
}

// Team lists staff members.
func (s *Service) Team(ctx context.Context) []TeamMember {
	return mapRecords(s.collection(ctx, "team", s.cols.Team, s.static.Team), NormalizeMember)
}

// Advisors lists the medical advisory board.
func (s *Service) Advisors(ctx context.Context) []TeamMember {
	return mapRecords(s.collection(ctx, "advisors", s.cols.Advisors, s.static.Advisors), NormalizeMember)
}

// Testimonials lists patient reviews.
func (s *Service) Testimonials(ctx context.Context) []Testimonial {
	return mapRecords(s.collection(ctx, "testimonials", s.cols.Testimonials, s.static.Testimonials), NormalizeTestimonial)
}

// Treatments lists service offerings.
func (s *Service) Treatments(ctx context.Context) []Treatment {
	return mapRecords(s.collection(ctx, "treatments", s.cols.Treatments, s.static.Treatments), NormalizeTreatment)
}

// Moments lists gallery items: the configured gallery, then the Moments
// collection, then the static dataset.
func (s *Service) Moments(ctx context.Context) []Moment {
	var steps []fallback.Step[[]norm.Record]
	if s.cols.GalleryID != "" {
		steps = append(steps, fallback.Step[[]norm.Record]{Name: "gallery", Fn: remote(s.src, func(ctx context.Context) ([]norm.Record, error) {
			return nonEmpty(s.src.ListGalleryItems(ctx, s.cols.GalleryID, galleryLimit))
		})})
	}
	steps = append(steps,
		fallback.Step[[]norm.Record]{Name: SourceCMS, Fn: s.collectionFn(s.cols.Moments)},
		fallback.Step[[]norm.Record]{Name: SourceStatic, Local: true, Fn: staticList(s.static.Moments)},
	)
	recs, _, err := fallback.Run(ctx, s.log, "moments", steps...)
	if err != nil {
		return []Moment{}
	}
	return mapRecords(recs, NormalizeMoment)
}

func (s *Service) collection(ctx context.Context, resource, id string, static []norm.Record) []norm.Record {
	recs, _, err := fallback.Run(ctx, s.log, resource,
		fallback.Step[[]norm.Record]{Name: SourceCMS, Fn: s.collectionFn(id)},
		fallback.Step[[]norm.Record]{Name: SourceStatic, Local: true, Fn: staticList(static)},
	)
	if err != nil {
		return nil
	}
	return recs
}

// collectionFn queries a data collection in its stored order. An empty
// collection counts as a failure so the static dataset fills the page.
func (s *Service) collectionFn(id string) func(context.Context) ([]norm.Record, error) {
	if id == "" {
		return nil
	}
	return remote(s.src, func(ctx context.Context) ([]norm.Record, error) {
		list, err := s.src.QueryCollection(ctx, id, cms.Query{
			Sort:  []cms.SortField{{FieldName: "_createdDate", Order: "ASC"}},
			Limit: collectionLimit,
		})
		if err != nil {
			return nil, err
		}
		return nonEmpty(list.Items, nil)
	})
}

var errEmpty = errors.New("content: empty result")

func nonEmpty(recs []norm.Record, err error) ([]norm.Record, error) {
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errEmpty
	}
	return recs, nil
}

func staticList(recs []norm.Record) func(context.Context) ([]norm.Record, error) {
	return func(context.Context) ([]norm.Record, error) {
		return recs, nil
	}
}
