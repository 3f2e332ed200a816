// internal/app/system/paging/paging.go
package paging

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of cards shown per listing page.
const PageSize = 9

// MaxPage caps page numbers so offsets stay far from integer overflow.
const MaxPage = 10000

// ParsePage extracts the 1-based "page" query parameter.
// Returns 1 if not present or invalid, and at most MaxPage.
func ParsePage(r *http.Request) int {
	s := query.Get(r, "page")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(s, "-") {
			return MaxPage
		}
		return 1
	}
	if n < 1 {
		return 1
	}
	return min(n, MaxPage)
}

// Offset converts a 1-based page number to a row offset.
func Offset(page, size int) int {
	if page < 1 || size < 1 {
		return 0
	}
	return (min(page, MaxPage) - 1) * size
}

// Pager holds the values a listing template needs for prev/next links.
type Pager struct {
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
	Start      int // 1-based index of the first item shown (0 if none)
	End        int // 1-based index of the last item shown (0 if none)
	Total      int
}

// Compute builds a Pager for page given the number of items shown on it,
// the total reported by the source and whether the source has more rows.
// hasMore wins over total when the source cannot count exactly.
func Compute(page, size, shown, total int, hasMore bool) Pager {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = PageSize
	}
	p := Pager{Page: page, Total: total, PrevPage: 1, NextPage: page + 1}

	if total > 0 {
		p.TotalPages = (total + size - 1) / size
	}
	if p.TotalPages < page && shown > 0 {
		p.TotalPages = page
	}

	p.HasPrev = page > 1
	if p.HasPrev {
		p.PrevPage = page - 1
	}
	p.HasNext = hasMore || page < p.TotalPages

	if shown > 0 {
		p.Start = Offset(page, size) + 1
		p.End = p.Start + shown - 1
	}
	return p
}
