package cms

import (
	"errors"
	"fmt"

	"github.com/dalemusser/meditrip/internal/app/system/content"
)

var (
	// ErrNotFound is returned (wrapped in *APIError) for 404 responses and
	// for queries that matched nothing when exactly one item was expected.
	ErrNotFound = errors.New("cms: not found")

	// ErrNotConfigured is returned by every call on a client built without
	// credentials.
	ErrNotConfigured = errors.New("cms: client not configured")
)

// APIError is a non-2xx response from the CMS.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cms: %s returned %d: %s", e.Path, e.Status, e.Body)
}

// Unwrap maps 404 to ErrNotFound.
func (e *APIError) Unwrap() error {
	if e.Status == 404 {
		return ErrNotFound
	}
	return nil
}

// Post sort orders accepted by ListPosts.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortTitle  = "title"
)

// ListParams pages through blog posts.
type ListParams struct {
	Limit  int
	Offset int
	Sort   string // SortNewest, SortOldest, SortTitle
}

// PostList is one page of raw posts plus the total the CMS reports.
// HasMore is set from the total when one is reported, otherwise from
// whether the page came back full.
type PostList struct {
	Posts   []content.Record
	Total   int
	HasMore bool
}

// SortField orders a query.
type SortField struct {
	FieldName string `json:"fieldName"`
	Order     string `json:"order"` // ASC or DESC
}

// Query is the generic query shape shared by posts and data collections.
type Query struct {
	Filter map[string]any
	Sort   []SortField
	Limit  int
	Offset int
}

// ItemList is one page of data-collection items.
type ItemList struct {
	Items []content.Record
	Total int
}

type paging struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

type queryBody struct {
	Filter map[string]any `json:"filter,omitempty"`
	Sort   []SortField    `json:"sort,omitempty"`
	Paging *paging        `json:"paging,omitempty"`
}

func (q Query) body() queryBody {
	b := queryBody{Filter: q.Filter, Sort: q.Sort}
	if q.Limit > 0 || q.Offset > 0 {
		b.Paging = &paging{Limit: q.Limit, Offset: q.Offset}
	}
	return b
}

type pagingMetadata struct {
	Count   int   `json:"count"`
	Offset  int   `json:"offset"`
	Total   int   `json:"total"`
	HasNext *bool `json:"hasNext,omitempty"`
}

// page reports the total and whether another page exists for a response
// of n items requested with limit. Without a total, a full page implies
// more, and the total is a lower bound.
func (p pagingMetadata) page(n, limit int) (int, bool) {
	if p.Total > 0 {
		return p.Total, p.Offset+n < p.Total
	}
	more := limit > 0 && n >= limit
	if p.HasNext != nil {
		more = *p.HasNext
	}
	total := p.Offset + n
	if more {
		total++
	}
	return total, more
}
