package imagegen

import "time"

// MaxImageBytes caps the size of a source image accepted for enhancement.
const MaxImageBytes = 10 * 1024 * 1024

// Params is a normalized, validated parameter record for one generation or
// enhancement traversal. Strength is a pointer so "not provided" stays
// distinguishable from an explicit zero.
type Params struct {
	Prompt       string
	AspectRatio  string
	OutputFormat string
	Strength     *float64
}

// FetchedImage is a source image pulled into memory for one enhancement
// traversal. It is consumed once by the form builder and never persisted.
type FetchedImage struct {
	Data        []byte
	ContentType string
	SourceURL   string
}

// Metadata echoes the validated inputs back to the caller alongside the
// generated image.
type Metadata struct {
	Prompt              string    `json:"prompt"`
	AspectRatio         string    `json:"aspect_ratio"`
	OutputFormat        string    `json:"output_format"`
	Strength            *float64  `json:"strength,omitempty"`
	InputImageURL       string    `json:"input_image_url,omitempty"`
	InputImageType      string    `json:"input_image_type,omitempty"`
	InputImageSizeBytes int       `json:"input_image_size_bytes,omitempty"`
	GeneratedAt         time.Time `json:"generated_at,omitzero"`
	EnhancedAt          time.Time `json:"enhanced_at,omitzero"`
}

// Result is the external success shape shared by both operations.
type Result struct {
	ImageURL string   `json:"image_url"`
	Metadata Metadata `json:"metadata"`
}
