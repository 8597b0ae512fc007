package imagegen

import "strings"

// MIMETypeFor maps an output format identifier to its MIME type. Lookups are
// case-insensitive and total: anything unrecognized falls back to image/webp,
// the system-wide default format.
func MIMETypeFor(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "png":
		return "image/png"
	case "jpeg", "jpg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	default:
		return "image/webp"
	}
}

// ExtensionFor maps a declared content type to a file extension. Parameter
// suffixes ("; charset=...") are stripped before the lookup. Total: unknown
// content types map to .bin.
func ExtensionFor(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	switch strings.ToLower(strings.TrimSpace(base)) {
	case "image/webp":
		return ".webp"
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "application/octet-stream":
		return ".bin"
	default:
		return ".bin"
	}
}
