package imagegen

import "testing"

func TestMIMETypeFor(t *testing.T) {
	cases := map[string]string{
		"webp": "image/webp",
		"WEBP": "image/webp",
		"png":  "image/png",
		"PNG":  "image/png",
		"jpeg": "image/jpeg",
		"jpg":  "image/jpeg",
		"":     "image/webp",
		"gif":  "image/webp",
	}
	for input, want := range cases {
		if got := MIMETypeFor(input); got != want {
			t.Fatalf("MIMETypeFor(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"image/webp":                ".webp",
		"image/png":                 ".png",
		"image/jpeg":                ".jpg",
		"image/jpg":                 ".jpg",
		"IMAGE/PNG":                 ".png",
		"image/png; charset=binary": ".png",
		"application/octet-stream":  ".bin",
		"text/html":                 ".bin",
		"":                          ".bin",
	}
	for input, want := range cases {
		if got := ExtensionFor(input); got != want {
			t.Fatalf("ExtensionFor(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, format := range []string{"webp", "png", "jpeg"} {
		ext := ExtensionFor(MIMETypeFor(format))
		if ext == ".bin" || ext == "" {
			t.Fatalf("round trip for %q produced %q", format, ext)
		}
	}
}
