package content

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PlaceholderImage is served when a record carries no usable image.
const PlaceholderImage = "/static/images/placeholder.svg"

const (
	imageScheme = "wix:image://v1/"
	videoScheme = "wix:video://v1/"
	mediaHost   = "https://static.wixstatic.com/media/"
	videoHost   = "https://video.wixstatic.com/video/"
)

// Media URI kinds.
const (
	KindImage = "image"
	KindVideo = "video"
)

var (
	// ErrMalformedURI is returned for strings that look like platform media
	// URIs but cannot be decoded.
	ErrMalformedURI = errors.New("content: malformed media uri")

	// ErrNoScaledVariant means the URI lacks what a dimension-specific URL
	// needs (file name or a positive size). Callers fall back to UnscaledURL.
	ErrNoScaledVariant = errors.New("content: no scaled variant")
)

// ImageFields lists record fields that may hold an image, highest priority
// first. Cover media outranks generic image fields, and portrait-style
// fields (avatar, thumbnail) come last.
var ImageFields = []string{
	"coverMedia.image",
	"coverImage",
	"heroImage",
	"mainMedia",
	"image",
	"media",
	"photo",
	"picture",
	"profileImage",
	"avatar",
	"thumbnail",
}

// nestedImageKeys are checked, in order, when a candidate field holds an
// object instead of a string.
var nestedImageKeys = []string{"url", "src", "imageInfo"}

// MediaURI is a decoded platform media identifier.
type MediaURI struct {
	Kind         string
	ID           string
	FileName     string
	OriginWidth  int
	OriginHeight int
	Poster       string
}

// ParseMediaURI decodes wix:image://v1/<id>/<file>#originWidth=..&originHeight=..
// and wix:video://v1/<id>/<file>#posterUri=.. identifiers.
func ParseMediaURI(s string) (MediaURI, error) {
	s = strings.TrimSpace(s)
	var m MediaURI
	var rest string
	switch {
	case strings.HasPrefix(s, imageScheme):
		m.Kind = KindImage
		rest = strings.TrimPrefix(s, imageScheme)
	case strings.HasPrefix(s, videoScheme):
		m.Kind = KindVideo
		rest = strings.TrimPrefix(s, videoScheme)
	default:
		return MediaURI{}, fmt.Errorf("%w: unknown scheme in %q", ErrMalformedURI, s)
	}

	path, fragment, _ := strings.Cut(rest, "#")
	id, file, _ := strings.Cut(path, "/")
	if id == "" || strings.ContainsAny(id, " ?") {
		return MediaURI{}, fmt.Errorf("%w: missing media id in %q", ErrMalformedURI, s)
	}
	m.ID = id
	m.FileName = strings.Trim(file, "/")

	if fragment != "" {
		q, err := url.ParseQuery(fragment)
		if err != nil {
			return MediaURI{}, fmt.Errorf("%w: %v", ErrMalformedURI, err)
		}
		m.OriginWidth, _ = strconv.Atoi(q.Get("originWidth"))
		m.OriginHeight, _ = strconv.Atoi(q.Get("originHeight"))
		m.Poster = q.Get("posterUri")
	}
	return m, nil
}

// ScaledURL returns a fill-cropped URL of exactly w x h pixels.
func ScaledURL(m MediaURI, w, h int) (string, error) {
	if m.Kind != KindImage {
		return "", fmt.Errorf("%w: %s is not an image", ErrNoScaledVariant, m.ID)
	}
	if w <= 0 || h <= 0 || m.FileName == "" {
		return "", ErrNoScaledVariant
	}
	return fmt.Sprintf("%s%s/v1/fill/w_%d,h_%d,al_c,q_80,enc_auto/%s", mediaHost, m.ID, w, h, m.FileName), nil
}

// UnscaledURL returns the original upload.
func UnscaledURL(m MediaURI) (string, error) {
	if m.ID == "" {
		return "", ErrMalformedURI
	}
	if m.Kind == KindVideo {
		return videoHost + m.ID + "/file", nil
	}
	return mediaHost + m.ID, nil
}

// ResolveImage turns one candidate string into a fetchable URL. Plain
// http(s) URLs pass through; platform URIs are scaled when possible and
// unscaled otherwise.
func ResolveImage(s string, w, h int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://") {
		return s, true
	}
	if strings.HasPrefix(s, "//") {
		return "https:" + s, true
	}

	m, err := ParseMediaURI(s)
	if err != nil || m.Kind != KindImage {
		return "", false
	}
	if u, err := ScaledURL(m, w, h); err == nil {
		return u, true
	}
	u, err := UnscaledURL(m)
	if err != nil {
		return "", false
	}
	return u, true
}

// ImageURL searches ImageFields and returns the first resolvable image.
func ImageURL(rec Record, w, h int) (string, bool) {
	return ImageURLFrom(rec, ImageFields, w, h)
}

// ImageURLFrom is ImageURL over a caller-supplied candidate list.
func ImageURLFrom(rec Record, fields []string, w, h int) (string, bool) {
	for _, field := range fields {
		v, ok := Lookup(rec, field)
		if !ok {
			continue
		}
		if u, ok := imageFromValue(v, w, h); ok {
			return u, true
		}
	}
	return "", false
}

// ImageOrPlaceholder never returns an empty string.
func ImageOrPlaceholder(rec Record, w, h int) string {
	if u, ok := ImageURL(rec, w, h); ok {
		return u
	}
	return PlaceholderImage
}

func imageFromValue(v any, w, h int) (string, bool) {
	if s, ok := v.(string); ok {
		return ResolveImage(s, w, h)
	}
	m, ok := asMap(v)
	if !ok {
		return "", false
	}
	for _, key := range nestedImageKeys {
		inner, ok := m[key]
		if !ok || inner == nil {
			continue
		}
		if s, ok := inner.(string); ok {
			if u, ok := ResolveImage(s, w, h); ok {
				return u, true
			}
			continue
		}
		// imageInfo may itself wrap the URI.
		if key == "imageInfo" {
			if im, ok := asMap(inner); ok {
				if s, ok := im["url"].(string); ok {
					if u, ok := ResolveImage(s, w, h); ok {
						return u, true
					}
				}
			}
		}
	}
	return "", false
}

// VideoURL resolves a platform video URI (or passes through an http URL).
func VideoURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://") {
		return s, true
	}
	m, err := ParseMediaURI(s)
	if err != nil || m.Kind != KindVideo {
		return "", false
	}
	u, err := UnscaledURL(m)
	return u, err == nil
}

// MediaRef is either an opaque platform identifier or a resolved URL.
// Resolving caches the URL on the value; resolving again is a no-op.
type MediaRef struct {
	Raw string
	url string
}

// NewMediaRef wraps a raw field value.
func NewMediaRef(raw string) MediaRef {
	return MediaRef{Raw: strings.TrimSpace(raw)}
}

// Resolve returns a copy with the URL filled in, or the receiver unchanged
// if it is already resolved or cannot be resolved.
func (r MediaRef) Resolve(w, h int) MediaRef {
	if r.url != "" {
		return r
	}
	if u, ok := ResolveImage(r.Raw, w, h); ok {
		r.url = u
		return r
	}
	if u, ok := VideoURL(r.Raw); ok {
		r.url = u
	}
	return r
}

// Resolved reports whether a URL is available.
func (r MediaRef) Resolved() bool { return r.url != "" }

// URL returns the resolved URL or "".
func (r MediaRef) URL() string { return r.url }
