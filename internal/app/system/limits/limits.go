// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxContactBodySize caps a JSON contact submission. The form's own
	// field limits (200 chars of name, 5000 of message) fit well inside it.
	MaxContactBodySize = 64 << 10 // 64 KB

	// MaxContactFormSize caps a url-encoded contact form post.
	MaxContactFormSize = 64 << 10 // 64 KB
)
