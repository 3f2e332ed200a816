package cms_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/meditrip/internal/app/system/cms"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *cms.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := cms.New(cms.Config{BaseURL: srv.URL, SiteID: "site-1", APIKey: "key-1"}, zap.NewNop())
	if err != nil {
		t.Fatalf("cms.New: %v", err)
	}
	return c
}

func TestListPosts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blog/v3/posts" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("paging.limit") != "6" || q.Get("paging.offset") != "12" {
			t.Errorf("paging = %s", r.URL.RawQuery)
		}
		if q.Get("sort") != "PUBLISHED_DATE_ASC" {
			t.Errorf("sort = %q", q.Get("sort"))
		}
		if r.Header.Get("Authorization") != "key-1" || r.Header.Get("wix-site-id") != "site-1" {
			t.Errorf("missing auth headers: %v", r.Header)
		}
		_, _ = io.WriteString(w, `{"posts":[{"title":"A"},{"title":"B"}],"metaData":{"count":2,"offset":12,"total":40}}`)
	})

	got, err := c.ListPosts(context.Background(), cms.ListParams{Limit: 6, Offset: 12, Sort: cms.SortOldest})
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if len(got.Posts) != 2 || got.Total != 40 || !got.HasMore {
		t.Errorf("got %d posts, total %d, hasMore %v", len(got.Posts), got.Total, got.HasMore)
	}
	if got.Posts[0]["title"] != "A" {
		t.Errorf("first post = %v", got.Posts[0])
	}
}

func TestGetPostBySlug_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/blog/v3/posts/slugs/dental-care-istanbul" {
			t.Errorf("path = %s", r.URL.Path)
		}
		http.Error(w, `{"message":"post not found"}`, http.StatusNotFound)
	})

	_, err := c.GetPostBySlug(context.Background(), "dental-care-istanbul")
	if !errors.Is(err, cms.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var apiErr *cms.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
		t.Errorf("expected *APIError with 404, got %v", err)
	}
}

func TestGetPostBySlug(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"post":{"slug":"hip-replacement","title":"Hip replacement abroad"}}`)
	})

	got, err := c.GetPostBySlug(context.Background(), "hip-replacement")
	if err != nil {
		t.Fatalf("GetPostBySlug: %v", err)
	}
	if got["title"] != "Hip replacement abroad" {
		t.Errorf("post = %v", got)
	}
}

func TestQueryPosts_SendsFilter(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/blog/v3/posts/query" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Query struct {
				Filter map[string]any `json:"filter"`
				Paging struct {
					Limit int `json:"limit"`
				} `json:"paging"`
			} `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Query.Filter["slug"] != "knee-surgery" || body.Query.Paging.Limit != 1 {
			t.Errorf("query = %+v", body.Query)
		}
		_, _ = io.WriteString(w, `{"posts":[{"slug":"knee-surgery"}],"pagingMetadata":{"count":1}}`)
	})

	got, err := c.QueryPosts(context.Background(), cms.Query{Filter: map[string]any{"slug": "knee-surgery"}, Limit: 1})
	if err != nil {
		t.Fatalf("QueryPosts: %v", err)
	}
	if len(got.Posts) != 1 || got.Posts[0]["slug"] != "knee-surgery" {
		t.Errorf("got %+v", got)
	}
}

func TestQueryPosts_PagingWithoutTotal(t *testing.T) {
	nine := strings.Repeat(`{"title":"P"},`, 8) + `{"title":"P"}`
	tests := []struct {
		name      string
		body      string
		limit     int
		wantTotal int
		wantMore  bool
	}{
		{"full page implies more", `{"posts":[` + nine + `],"pagingMetadata":{"count":9,"offset":0}}`, 9, 10, true},
		{"short page is the last", `{"posts":[{"title":"P"}],"pagingMetadata":{"count":1,"offset":9}}`, 9, 10, false},
		{"hasNext wins", `{"posts":[{"title":"P"}],"pagingMetadata":{"count":1,"offset":0,"hasNext":true}}`, 9, 2, true},
		{"total reported", `{"posts":[` + nine + `],"pagingMetadata":{"count":9,"offset":0,"total":9}}`, 9, 9, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tc.body)
			})
			got, err := c.QueryPosts(context.Background(), cms.Query{Limit: tc.limit})
			if err != nil {
				t.Fatalf("QueryPosts: %v", err)
			}
			if got.Total != tc.wantTotal || got.HasMore != tc.wantMore {
				t.Errorf("total=%d hasMore=%v, want total=%d hasMore=%v", got.Total, got.HasMore, tc.wantTotal, tc.wantMore)
			}
		})
	}
}

func TestQueryCollection_FillsID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["dataCollectionId"] != "Team" {
			t.Errorf("collection = %v", body["dataCollectionId"])
		}
		_, _ = io.WriteString(w, `{"dataItems":[{"id":"t1","data":{"name":"Leyla"}},{"id":"t2","data":{"_id":"own","name":"Omar"}}],"pagingMetadata":{"total":2}}`)
	})

	got, err := c.QueryCollection(context.Background(), "Team", cms.Query{})
	if err != nil {
		t.Fatalf("QueryCollection: %v", err)
	}
	if len(got.Items) != 2 || got.Total != 2 {
		t.Fatalf("got %+v", got)
	}
	if got.Items[0]["_id"] != "t1" || got.Items[1]["_id"] != "own" {
		t.Errorf("ids = %v, %v", got.Items[0]["_id"], got.Items[1]["_id"])
	}
}

func TestInsertItem(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wix-data/v2/items" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body struct {
			DataCollectionID string `json:"dataCollectionId"`
			DataItem         struct {
				Data map[string]any `json:"data"`
			} `json:"dataItem"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.DataCollectionID != "ContactSubmissions" || body.DataItem.Data["email"] != "a@b.co" {
			t.Errorf("body = %+v", body)
		}
		_, _ = io.WriteString(w, `{"dataItem":{"id":"new-1","data":{}}}`)
	})

	id, err := c.InsertItem(context.Background(), "ContactSubmissions", map[string]any{"email": "a@b.co"})
	if err != nil || id != "new-1" {
		t.Errorf("InsertItem = %q, %v", id, err)
	}
}

func TestServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := c.ListCategories(context.Background())
	var apiErr *cms.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway {
		t.Fatalf("expected 502 APIError, got %v", err)
	}
	if errors.Is(err, cms.ErrNotFound) {
		t.Error("502 should not match ErrNotFound")
	}
}

func TestUnconfiguredClient(t *testing.T) {
	c, err := cms.New(cms.Config{}, nil)
	if err != nil {
		t.Fatalf("cms.New: %v", err)
	}
	if c.Configured() {
		t.Error("expected unconfigured client")
	}
	if _, err := c.ListPosts(context.Background(), cms.ListParams{}); !errors.Is(err, cms.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	if _, err := cms.New(cms.Config{BaseURL: "not a url", APIKey: "k"}, nil); err == nil {
		t.Error("expected error for invalid base url")
	}
}

func TestOAuthClientCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth2/token":
			_ = r.ParseForm()
			if r.Form.Get("grant_type") != "client_credentials" || r.Form.Get("client_id") != "cid" {
				t.Errorf("token form = %v", r.Form)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"access_token":"tok-123","token_type":"Bearer","expires_in":3600}`)
		case "/blog/v3/categories":
			if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
				t.Errorf("Authorization = %q", got)
			}
			_, _ = io.WriteString(w, `{"categories":[{"label":"Dental"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := cms.New(cms.Config{BaseURL: srv.URL, ClientID: "cid", ClientSecret: "secret"}, zap.NewNop())
	if err != nil {
		t.Fatalf("cms.New: %v", err)
	}
	cats, err := c.ListCategories(context.Background())
	if err != nil || len(cats) != 1 {
		t.Errorf("ListCategories = %v, %v", cats, err)
	}
}

func TestParseLookupStrategy(t *testing.T) {
	tests := []struct {
		in        string
		want      cms.LookupStrategy
		slug, qry bool
		wantErr   bool
	}{
		{"", cms.LookupBoth, true, true, false},
		{"Both", cms.LookupBoth, true, true, false},
		{"slug", cms.LookupBySlug, true, false, false},
		{" query ", cms.LookupByQuery, false, true, false},
		{"graphql", cms.LookupBoth, true, true, true},
	}

	for _, tt := range tests {
		got, err := cms.ParseLookupStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLookupStrategy(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want || got.UsesSlug() != tt.slug || got.UsesQuery() != tt.qry {
			t.Errorf("ParseLookupStrategy(%q) = %v", tt.in, got)
		}
	}
}
