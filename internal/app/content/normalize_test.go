package content

import (
	"testing"

	norm "github.com/dalemusser/meditrip/internal/app/system/content"
)

func TestNormalize_EmptyRecordsGetDefaults(t *testing.T) {
	member := NormalizeMember(norm.Record{"_id": "x"})
	moment := NormalizeMoment(norm.Record{"_id": "y"})
	post := NormalizePost(norm.Record{"title": "T"}, false)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"member name", member.Name, defaultMember},
		{"member role", member.Role, defaultRole},
		{"member image", member.Image, norm.PlaceholderImage},
		{"moment title", moment.Title, defaultMoment},
		{"moment image", moment.Image, norm.PlaceholderImage},
		{"post slug", post.Slug, ""},
		{"post author", post.Author, DefaultAuthor},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestNormalizePost_SlugFallsBackToID(t *testing.T) {
	tests := []struct {
		name string
		rec  norm.Record
		want string
	}{
		{"slug wins", norm.Record{"_id": "p1", "slug": "knee-surgery"}, "knee-surgery"},
		{"seo slug", norm.Record{"_id": "p1", "seoSlug": "seo"}, "seo"},
		{"id when no slug", norm.Record{"_id": "p1"}, "p1"},
		{"blank slug uses id", norm.Record{"id": "p2", "slug": "  "}, "p2"},
	}
	for _, tc := range tests {
		if got := NormalizePost(tc.rec, false).Slug; got != tc.want {
			t.Errorf("%s: Slug = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeMember_KeepsRealValues(t *testing.T) {
	m := NormalizeMember(norm.Record{"fullName": "Dr. Leyla Kaya", "jobTitle": "Dental Surgeon"})
	if m.Name != "Dr. Leyla Kaya" || m.Role != "Dental Surgeon" {
		t.Errorf("member = %+v", m)
	}
}

func TestLinkablePosts(t *testing.T) {
	got := linkablePosts([]Post{{Slug: "a"}, {}, {Slug: "b"}})
	if len(got) != 2 || got[0].Slug != "a" || got[1].Slug != "b" {
		t.Errorf("linkablePosts = %+v", got)
	}
}
