// internal/app/features/blog/list.go
package blog

import (
	"net/http"

	"github.com/dalemusser/meditrip/internal/app/content"
	"github.com/dalemusser/meditrip/internal/app/system/paging"
	"github.com/dalemusser/meditrip/internal/app/system/timeouts"
	"github.com/dalemusser/meditrip/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type listData struct {
	viewdata.BaseVM
	Posts  []content.Post
	Pager  paging.Pager
	Source string
}

// ServeList renders /blog?page=N.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Page(), h.Log, "blog list")
	defer cancel()

	page := paging.ParsePage(r)
	res := h.Content.ListPosts(ctx, paging.PageSize, paging.Offset(page, paging.PageSize), "newest")
	h.Log.Debug("blog list",
		zap.Int("page", page),
		zap.Int("shown", len(res.Posts)),
		zap.String("source", res.Source))

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Blog"),
		Posts:  res.Posts,
		Pager:  paging.Compute(page, paging.PageSize, len(res.Posts), res.Total, res.HasMore),
		Source: res.Source,
	}
	data.Description = "Guides and stories about treatment abroad."

	templates.Render(w, r, "blog_list", data)
}
