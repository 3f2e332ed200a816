package cms

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/meditrip/internal/app/system/content"
)

const postFieldsets = "RICH_CONTENT"

// listSorts maps ListParams.Sort to the blog API's enum.
var listSorts = map[string]string{
	SortNewest: "PUBLISHED_DATE_DESC",
	SortOldest: "PUBLISHED_DATE_ASC",
	SortTitle:  "TITLE_ASC",
}

// PostSort returns query sort fields equivalent to a ListParams sort.
func PostSort(sort string) []SortField {
	switch sort {
	case SortOldest:
		return []SortField{{FieldName: "firstPublishedDate", Order: "ASC"}}
	case SortTitle:
		return []SortField{{FieldName: "title", Order: "ASC"}}
	}
	return []SortField{{FieldName: "firstPublishedDate", Order: "DESC"}}
}

type postsResponse struct {
	Posts          []content.Record `json:"posts"`
	MetaData       pagingMetadata   `json:"metaData"`
	PagingMetadata pagingMetadata   `json:"pagingMetadata"`
}

func (r postsResponse) list(limit int) PostList {
	meta := r.MetaData
	if meta.Count == 0 && meta.Offset == 0 && meta.Total == 0 && meta.HasNext == nil {
		meta = r.PagingMetadata
	}
	total, more := meta.page(len(r.Posts), limit)
	return PostList{Posts: r.Posts, Total: total, HasMore: more}
}

// ListPosts returns one page of published posts.
func (c *Client) ListPosts(ctx context.Context, p ListParams) (PostList, error) {
	q := url.Values{}
	q.Set("fieldsets", postFieldsets)
	if p.Limit > 0 {
		q.Set("paging.limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("paging.offset", strconv.Itoa(p.Offset))
	}
	if s, ok := listSorts[p.Sort]; ok {
		q.Set("sort", s)
	}

	var resp postsResponse
	if err := c.do(ctx, http.MethodGet, "/blog/v3/posts", q, nil, &resp); err != nil {
		return PostList{}, err
	}
	return resp.list(p.Limit), nil
}

// GetPostBySlug fetches one post by its URL slug.
func (c *Client) GetPostBySlug(ctx context.Context, slug string) (content.Record, error) {
	q := url.Values{"fieldsets": {postFieldsets}}
	var resp struct {
		Post content.Record `json:"post"`
	}
	if err := c.do(ctx, http.MethodGet, "/blog/v3/posts/slugs/"+url.PathEscape(slug), q, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Post == nil {
		return nil, ErrNotFound
	}
	return resp.Post, nil
}

// QueryPosts runs a filtered, sorted, paged post query.
func (c *Client) QueryPosts(ctx context.Context, query Query) (PostList, error) {
	in := struct {
		Query     queryBody `json:"query"`
		Fieldsets []string  `json:"fieldsets"`
	}{Query: query.body(), Fieldsets: []string{postFieldsets}}

	var resp postsResponse
	if err := c.do(ctx, http.MethodPost, "/blog/v3/posts/query", nil, in, &resp); err != nil {
		return PostList{}, err
	}
	return resp.list(query.Limit), nil
}

// ListCategories returns every blog category.
func (c *Client) ListCategories(ctx context.Context) ([]content.Record, error) {
	var resp struct {
		Categories []content.Record `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/blog/v3/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}
