package imagegen

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"
)

// BuildForm assembles the multipart payload for the upstream API from an
// already-validated parameter record and, for enhancement, a fetched source
// image. Returns the encoded body and its content type (with boundary).
func BuildForm(p *Params, img *FetchedImage) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"prompt":        p.Prompt,
		"aspect_ratio":  p.AspectRatio,
		"output_format": p.OutputFormat,
	}
	if p.Strength != nil {
		fields["strength"] = strconv.FormatFloat(*p.Strength, 'f', -1, 64)
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if img != nil {
		part, err := w.CreatePart(imagePartHeader(img.ContentType))
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize form: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// imagePartHeader names the binary part input<ext> and carries the source
// image's declared content type instead of the octet-stream default that
// CreateFormFile would assign.
func imagePartHeader(contentType string) textproto.MIMEHeader {
	filename := "input" + ExtensionFor(contentType)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
