package content_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/meditrip/internal/app/system/content"
)

const beachURI = "wix:image://v1/abc123_def~mv2.jpg/beach.jpg#originWidth=1920&originHeight=1080"

func TestImageURL_CoverMediaScaled(t *testing.T) {
	rec := content.Record{
		"coverMedia": map[string]any{"image": beachURI},
	}

	got, ok := content.ImageURL(rec, 400, 300)
	if !ok {
		t.Fatal("expected an image URL")
	}
	want := "https://static.wixstatic.com/media/abc123_def~mv2.jpg/v1/fill/w_400,h_300,al_c,q_80,enc_auto/beach.jpg"
	if got != want {
		t.Errorf("ImageURL = %q, want %q", got, want)
	}
	if !strings.Contains(got, "w_400") || !strings.Contains(got, "h_300") {
		t.Errorf("expected requested dimensions in %q", got)
	}
}

func TestImageOrPlaceholder_NoCandidate(t *testing.T) {
	rec := content.Record{
		"title": "No pictures here",
		"photo": 42,
		"image": "not a media uri",
	}
	if got := content.ImageOrPlaceholder(rec, 400, 300); got != content.PlaceholderImage {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestImageURL_PriorityOrder(t *testing.T) {
	rec := content.Record{
		"photo":      "wix:image://v1/photo_id/photo.jpg",
		"coverMedia": map[string]any{"image": "wix:image://v1/cover_id/cover.jpg"},
	}

	got, ok := content.ImageURL(rec, 100, 100)
	if !ok {
		t.Fatal("expected an image URL")
	}
	if !strings.Contains(got, "cover_id") {
		t.Errorf("expected coverMedia.image to win, got %q", got)
	}
}

func TestImageURL_NestedForms(t *testing.T) {
	tests := []struct {
		name string
		rec  content.Record
		want string
	}{
		{
			name: "url key",
			rec:  content.Record{"image": map[string]any{"url": "wix:image://v1/u1/a.jpg"}},
			want: "u1",
		},
		{
			name: "src key",
			rec:  content.Record{"photo": map[string]any{"src": "wix:image://v1/s1/b.jpg"}},
			want: "s1",
		},
		{
			name: "imageInfo string",
			rec:  content.Record{"mainMedia": map[string]any{"imageInfo": "wix:image://v1/i1/c.jpg"}},
			want: "i1",
		},
		{
			name: "imageInfo object",
			rec: content.Record{"media": map[string]any{
				"imageInfo": map[string]any{"url": "wix:image://v1/i2/d.jpg"},
			}},
			want: "i2",
		},
		{
			name: "url before src",
			rec: content.Record{"image": map[string]any{
				"src": "wix:image://v1/second/e.jpg",
				"url": "wix:image://v1/first/e.jpg",
			}},
			want: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := content.ImageURL(tt.rec, 640, 480)
			if !ok {
				t.Fatal("expected an image URL")
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("ImageURL = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestImageURL_MalformedFallsThrough(t *testing.T) {
	rec := content.Record{
		"coverImage": "wix:image://v1/",
		"photo":      "wix:image://v1/good_id/good.jpg",
	}

	got, ok := content.ImageURL(rec, 200, 200)
	if !ok {
		t.Fatal("expected the next candidate to resolve")
	}
	if !strings.Contains(got, "good_id") {
		t.Errorf("expected photo to be used, got %q", got)
	}
}

func TestImageURL_DegradesToUnscaled(t *testing.T) {
	rec := content.Record{"image": "wix:image://v1/bare_id"}

	got, ok := content.ImageURL(rec, 400, 300)
	if !ok {
		t.Fatal("expected an unscaled URL")
	}
	if got != "https://static.wixstatic.com/media/bare_id" {
		t.Errorf("ImageURL = %q", got)
	}
}

func TestImageURL_HTTPPassthrough(t *testing.T) {
	rec := content.Record{"image": "https://cdn.example.com/a.png"}

	got, ok := content.ImageURL(rec, 400, 300)
	if !ok || got != "https://cdn.example.com/a.png" {
		t.Errorf("ImageURL = %q, %v", got, ok)
	}
}

func TestImageURL_DoesNotMutateRecord(t *testing.T) {
	inner := map[string]any{"image": beachURI}
	rec := content.Record{"coverMedia": inner}

	content.ImageURL(rec, 400, 300)

	if inner["image"] != beachURI || len(rec) != 1 {
		t.Error("record was modified")
	}
}

func TestParseMediaURI(t *testing.T) {
	m, err := content.ParseMediaURI(beachURI)
	if err != nil {
		t.Fatalf("ParseMediaURI: %v", err)
	}
	if m.Kind != content.KindImage || m.ID != "abc123_def~mv2.jpg" || m.FileName != "beach.jpg" {
		t.Errorf("unexpected parse: %+v", m)
	}
	if m.OriginWidth != 1920 || m.OriginHeight != 1080 {
		t.Errorf("origin size = %dx%d", m.OriginWidth, m.OriginHeight)
	}

	for _, bad := range []string{"", "wix:image://v1/", "http://x/y.jpg", "wix:image://v1/ space/x.jpg"} {
		if _, err := content.ParseMediaURI(bad); err == nil {
			t.Errorf("ParseMediaURI(%q) expected error", bad)
		}
	}
}

func TestVideoURL(t *testing.T) {
	got, ok := content.VideoURL("wix:video://v1/vid_1/clip.mp4#posterUri=p.jpg")
	if !ok || got != "https://video.wixstatic.com/video/vid_1/file" {
		t.Errorf("VideoURL = %q, %v", got, ok)
	}
	if _, ok := content.VideoURL(beachURI); ok {
		t.Error("image URI should not resolve as video")
	}
}

func TestMediaRef_ResolveIdempotent(t *testing.T) {
	ref := content.NewMediaRef(beachURI)
	if ref.Resolved() {
		t.Fatal("new ref should not be resolved")
	}

	first := ref.Resolve(400, 300)
	if !first.Resolved() {
		t.Fatal("expected ref to resolve")
	}
	second := first.Resolve(10, 10)
	if second.URL() != first.URL() {
		t.Errorf("second resolve changed URL: %q -> %q", first.URL(), second.URL())
	}
	if ref.Resolved() {
		t.Error("original value should be unchanged")
	}
}
